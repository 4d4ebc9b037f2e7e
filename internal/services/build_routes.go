package services

import (
	"sort"

	"fleet-route-service/internal/domain"
)

// Sentinel ordering legs with no parsable leg number after all numbered
// legs in a run.
const unnumberedLeg = 999999

// BuildRoutes collapses normalized legs into ordered, deduplicated routes.
//
// Legs are grouped by route identifier (legs without one are discarded) and
// walked in (date, leg number) order. The first leg's departure address
// seeds the stop sequence; each leg's destination appends a stop unless it
// repeats the immediately preceding stop's address. Idling or re-confirming
// at an address produces spurious repeated legs, and those must not appear
// as repeated stops. Routes with fewer than 2 surviving stops carry no
// sequencing information and are dropped.
//
// Routes are emitted in first-seen group order, so output is deterministic
// for a given leg ordering.
func BuildRoutes(legs []domain.Leg) []domain.Route {
	groups := make(map[string][]domain.Leg)
	var order []string
	for _, leg := range legs {
		if leg.RouteID == "" {
			continue
		}
		if _, seen := groups[leg.RouteID]; !seen {
			order = append(order, leg.RouteID)
		}
		groups[leg.RouteID] = append(groups[leg.RouteID], leg)
	}

	routes := make([]domain.Route, 0, len(order))
	for _, rid := range order {
		items := groups[rid]
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return legOrdinal(a) < legOrdinal(b)
		})

		stops := reconstructStops(items)
		if len(stops) < 2 {
			continue
		}

		routes = append(routes, domain.Route{
			Date:     items[0].DateString(),
			RouteID:  rid,
			BusName:  items[0].BusName,
			NumStops: len(stops),
			Stops:    stops,
		})
	}

	return routes
}

func legOrdinal(l domain.Leg) int {
	if l.LegNumber == nil {
		return unnumberedLeg
	}
	return *l.LegNumber
}

func reconstructStops(items []domain.Leg) []domain.Stop {
	var stops []domain.Stop

	prevAddr := items[0].FromAddress
	if prevAddr != "" {
		stops = append(stops, domain.Stop{
			Index:   0,
			Address: prevAddr,
			ToLeg:   items[0].LegNumber,
		})
	}

	idx := len(stops)
	for _, leg := range items {
		addr := leg.ToAddress
		if addr == "" || addr == prevAddr {
			continue
		}
		stops = append(stops, domain.Stop{
			Index:            idx,
			Address:          addr,
			FromLeg:          leg.LegNumber,
			DistanceFromPrev: leg.DistanceMeters,
			DurationFromPrev: leg.DurationSeconds,
		})
		prevAddr = addr
		idx++
	}

	return stops
}
