package domain

// Stop is one physical location within a reconstructed route.
//
// FromLeg and ToLeg are mutually exclusive: the first stop of a route has
// ToLeg set (the leg that departs from it) and FromLeg nil; every later stop
// has FromLeg set (the leg that arrived at it) and ToLeg nil. The first stop
// carries no incoming distance or duration.
type Stop struct {
	Index            int    `json:"index"`
	Address          string `json:"address"`
	FromLeg          *int   `json:"from_leg"`
	ToLeg            *int   `json:"to_leg"`
	DistanceFromPrev *int   `json:"distance_from_prev"`
	DurationFromPrev *int   `json:"duration_from_prev"`
}

// Route is an ordered itinerary for one bus on one date, derived purely from
// its legs. Routes are created once during reconstruction, never mutated,
// and persisted as read-only training examples for later assignment runs.
//
// Consecutive stops never repeat the same address; a non-adjacent repeat of
// an address elsewhere in the route is permitted.
type Route struct {
	Date     string `json:"date"`
	RouteID  string `json:"route_id"`
	BusName  string `json:"bus_name"`
	NumStops int    `json:"num_stops"`
	Stops    []Stop `json:"stops"`
}
