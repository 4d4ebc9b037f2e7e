package dto

type StopRequest struct {
	Address string `json:"address"`
	Colli   *int   `json:"colli,omitempty"`
}

type OptimizeRequest struct {
	Date           string        `json:"date"`
	MaxStopsPerBus int           `json:"max_stops_per_bus"`
	Buses          []string      `json:"buses"`
	Stops          []StopRequest `json:"stops"`
}

type OptimizeResponse struct {
	BusRoutes map[string][]string `json:"bus_routes"`
}

// ErrorResponse is the uniform error body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
