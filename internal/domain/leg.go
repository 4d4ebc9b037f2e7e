package domain

import "time"

// Leg is one directed movement segment from one address to the next within a
// single vehicle run on a single date. Legs are the canonical form of one
// row of a raw tracking export; numeric fields that failed to parse are nil
// and string fields that failed to parse are empty.
//
// A leg with no parsable date never becomes a Leg: the converter drops the
// row entirely before grouping.
type Leg struct {
	Date            time.Time
	RouteID         string
	LegNumber       *int
	StartSeconds    *int
	EndSeconds      *int
	DurationSeconds *int
	DistanceMeters  *int
	DeviationPct    *float64
	FromCity        string
	ToCity          string
	FromAddress     string
	ToAddress       string
	FromCoords      Coordinates
	ToCoords        Coordinates
	DriverID        string
	VehiclePlate    string
	BusName         string
	Administration  string
	SourceFile      string
}

// DateString returns the leg date in the YYYY-MM-DD form used by route
// identifiers and persisted artifacts.
func (l Leg) DateString() string { return l.Date.Format("2006-01-02") }

// RouteIDFor derives the route identifier for a date and bus name. Two legs
// on the same date with the same (or missing) bus name collapse into the
// same route even when they come from different vehicles.
func RouteIDFor(date time.Time, busName string) string {
	if busName == "" {
		busName = "Bus"
	}
	return date.Format("2006-01-02") + "-" + busName
}
