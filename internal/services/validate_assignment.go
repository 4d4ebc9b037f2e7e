package services

import (
	"fleet-route-service/internal/domain"
)

// Business thresholds for splitting a day across two buses. Below 16 total
// stops a day is never split, and a two-bus split must give each bus at
// least 8 stops.
const (
	minStopsForSplit = 16
	minStopsPerSplit = 8
	defaultMaxStops  = 18
)

// ValidateAssignment deterministically verifies a proposed assignment
// against its originating request and the day-of-week business rules,
// repairing to the fallback single-bus assignment on any violation.
//
// Checks run in order: structural shape, duplicate or missing addresses,
// per-bus overflow, Monday single-route policy, the minimum-total threshold
// for splitting, and the minimum-per-bus threshold for a two-bus split.
// Rejection never surfaces as an error; the repair is the result.
func ValidateAssignment(req domain.AssignmentRequest, proposal domain.AssignmentResult, primaryBus string) domain.AssignmentResult {
	required := req.Addresses()

	maxStops := req.MaxStopsPerBus
	if maxStops <= 0 {
		maxStops = defaultMaxStops
	}

	if proposal.BusRoutes == nil {
		return Fallback(req, primaryBus)
	}

	var planned []string
	for _, addrs := range proposal.BusRoutes {
		planned = append(planned, addrs...)
	}

	plannedSet := make(map[string]struct{}, len(planned))
	for _, a := range planned {
		plannedSet[a] = struct{}{}
	}
	if len(planned) != len(plannedSet) {
		return Fallback(req, primaryBus)
	}

	requiredSet := make(map[string]struct{}, len(required))
	for _, a := range required {
		requiredSet[a] = struct{}{}
	}
	if !sameSet(plannedSet, requiredSet) {
		return Fallback(req, primaryBus)
	}

	for _, addrs := range proposal.BusRoutes {
		if len(addrs) > maxStops {
			return Fallback(req, primaryBus)
		}
	}

	// Monday runs as a single route regardless of the proposal.
	weekday, err := req.Weekday()
	if err != nil {
		return Fallback(req, primaryBus)
	}
	if weekday == 0 {
		return Fallback(req, primaryBus)
	}

	if len(required) < minStopsForSplit {
		return Fallback(req, primaryBus)
	}

	var filled [][]string
	for _, addrs := range proposal.BusRoutes {
		if len(addrs) > 0 {
			filled = append(filled, addrs)
		}
	}
	if len(filled) == 2 {
		if len(filled[0]) < minStopsPerSplit || len(filled[1]) < minStopsPerSplit {
			return Fallback(req, primaryBus)
		}
	}

	return proposal
}

// Fallback is the deterministic conservative repair: every requested
// address, in request order, goes to the first bus in the request (or the
// configured primary bus when the request names none); all other requested
// buses stay empty. Partial groupings from a rejected proposal are never
// reused.
func Fallback(req domain.AssignmentRequest, primaryBus string) domain.AssignmentResult {
	target := primaryBus
	if len(req.Buses) > 0 {
		target = req.Buses[0]
	}

	routes := map[string][]string{target: req.Addresses()}
	for _, bus := range req.Buses {
		if bus != target {
			routes[bus] = []string{}
		}
	}
	return domain.AssignmentResult{BusRoutes: routes}
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
