package domain

import (
	"fmt"
	"time"
)

// RequestedStop is one address to be served, with an optional parcel count.
type RequestedStop struct {
	Address string
	Colli   *int
}

// AssignmentRequest is an externally supplied delivery specification:
// which buses are available on a date, how many stops each may take, and
// the ordered list of addresses to serve.
type AssignmentRequest struct {
	Date           string
	MaxStopsPerBus int
	Buses          []string
	Stops          []RequestedStop
}

// Addresses returns the requested stop addresses in request order.
func (r AssignmentRequest) Addresses() []string {
	out := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		out = append(out, s.Address)
	}
	return out
}

// Weekday returns the request date's weekday. Monday is 0, matching the
// day-of-week business rules.
func (r AssignmentRequest) Weekday() (int, error) {
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return 0, fmt.Errorf("assignment request: parse date %q: %w", r.Date, err)
	}
	// time.Weekday counts Sunday as 0.
	return (int(t.Weekday()) + 6) % 7, nil
}

// AssignmentResult maps bus name to an ordered list of addresses. A valid
// result covers every requested address exactly once across all buses.
//
// BusRoutes is nil when the collaborator's response did not contain a
// bus_routes object of the right shape; the validator treats that as
// structurally invalid.
type AssignmentResult struct {
	BusRoutes map[string][]string
}
