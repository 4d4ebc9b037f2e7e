package services

import (
	"reflect"
	"testing"

	"fleet-route-service/internal/domain"
)

func leg(t *testing.T, date string, num int, from, to string) domain.Leg {
	t.Helper()
	d := mustDate(t, date)
	n := num
	dist := 1000 * num
	dur := 60 * num
	return domain.Leg{
		Date:            d,
		RouteID:         domain.RouteIDFor(d, "Ocho"),
		LegNumber:       &n,
		BusName:         "Ocho",
		FromAddress:     from,
		ToAddress:       to,
		DistanceMeters:  &dist,
		DurationSeconds: &dur,
	}
}

func TestBuildRoutesReconstructsStops(t *testing.T) {
	legs := []domain.Leg{
		leg(t, "2025-03-18", 1, "Depot, Amsterdam, NL", "A, Amsterdam, NL"),
		leg(t, "2025-03-18", 2, "A, Amsterdam, NL", "B, Amsterdam, NL"),
		leg(t, "2025-03-18", 3, "B, Amsterdam, NL", "C, Utrecht, NL"),
	}

	routes := BuildRoutes(legs)
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	r := routes[0]
	if r.RouteID != "2025-03-18-Ocho" || r.Date != "2025-03-18" || r.BusName != "Ocho" {
		t.Fatalf("route header wrong: %+v", r)
	}
	if r.NumStops != 4 || len(r.Stops) != 4 {
		t.Fatalf("expected 4 stops, got %d", len(r.Stops))
	}

	first := r.Stops[0]
	if first.Index != 0 || first.Address != "Depot, Amsterdam, NL" {
		t.Fatalf("first stop wrong: %+v", first)
	}
	if first.FromLeg != nil || first.ToLeg == nil || *first.ToLeg != 1 {
		t.Fatalf("first stop leg bounds wrong: %+v", first)
	}
	if first.DistanceFromPrev != nil || first.DurationFromPrev != nil {
		t.Fatalf("first stop must carry no incoming metrics: %+v", first)
	}

	second := r.Stops[1]
	if second.FromLeg == nil || *second.FromLeg != 1 || second.ToLeg != nil {
		t.Fatalf("second stop leg bounds wrong: %+v", second)
	}
	if second.DistanceFromPrev == nil || *second.DistanceFromPrev != 1000 {
		t.Fatalf("second stop distance wrong: %+v", second)
	}
}

func TestBuildRoutesCollapsesAdjacentDuplicates(t *testing.T) {
	// The vehicle re-confirms at B: legs 2 and 3 both end there.
	legs := []domain.Leg{
		leg(t, "2025-03-18", 1, "A", "B"),
		leg(t, "2025-03-18", 2, "B", "B"),
		leg(t, "2025-03-18", 3, "B", "C"),
		leg(t, "2025-03-18", 4, "C", "A"),
	}

	routes := BuildRoutes(legs)
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	var addrs []string
	for _, s := range routes[0].Stops {
		addrs = append(addrs, s.Address)
	}
	// A repeats non-adjacently and stays; the adjacent B repeat is gone.
	want := []string{"A", "B", "C", "A"}
	if !reflect.DeepEqual(addrs, want) {
		t.Fatalf("stops = %v, want %v", addrs, want)
	}
}

func TestBuildRoutesRoundTrip(t *testing.T) {
	// Flattening the stops back into from->to pairs reproduces the
	// original leg sequence once adjacent duplicates are removed.
	legs := []domain.Leg{
		leg(t, "2025-03-18", 1, "A", "B"),
		leg(t, "2025-03-18", 2, "B", "C"),
		leg(t, "2025-03-18", 3, "C", "D"),
	}

	routes := BuildRoutes(legs)
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	stops := routes[0].Stops
	var pairs [][2]string
	for i := 1; i < len(stops); i++ {
		pairs = append(pairs, [2]string{stops[i-1].Address, stops[i].Address})
	}

	want := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("pairs = %v, want %v", pairs, want)
	}
}

func TestBuildRoutesDiscardsShortRoutes(t *testing.T) {
	tests := []struct {
		name string
		legs []domain.Leg
	}{
		{
			"single resolvable stop",
			[]domain.Leg{leg(t, "2025-03-18", 1, "A", "A")},
		},
		{
			"no addresses at all",
			[]domain.Leg{leg(t, "2025-03-18", 1, "", "")},
		},
		{
			"only destination",
			[]domain.Leg{leg(t, "2025-03-18", 1, "", "B")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if routes := BuildRoutes(tt.legs); len(routes) != 0 {
				t.Fatalf("expected route to be discarded, got %d", len(routes))
			}
		})
	}
}

func TestBuildRoutesDropsEmptyRouteID(t *testing.T) {
	l := leg(t, "2025-03-18", 1, "A", "B")
	l.RouteID = ""

	if routes := BuildRoutes([]domain.Leg{l}); len(routes) != 0 {
		t.Fatalf("legs without a route id must be discarded")
	}
}

func TestBuildRoutesSortsUnnumberedLegsLast(t *testing.T) {
	numbered := leg(t, "2025-03-18", 2, "B", "C")
	unnumbered := leg(t, "2025-03-18", 0, "C", "D")
	unnumbered.LegNumber = nil
	first := leg(t, "2025-03-18", 1, "A", "B")

	// Deliberately out of order: the unnumbered leg is walked last.
	routes := BuildRoutes([]domain.Leg{unnumbered, numbered, first})
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	var addrs []string
	for _, s := range routes[0].Stops {
		addrs = append(addrs, s.Address)
	}
	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(addrs, want) {
		t.Fatalf("stops = %v, want %v", addrs, want)
	}
}

func TestBuildRoutesGroupsByRouteID(t *testing.T) {
	ocho := leg(t, "2025-03-18", 1, "A", "B")
	rebelFirst := leg(t, "2025-03-18", 1, "X", "Y")
	rebelFirst.RouteID = "2025-03-18-Rebel"
	rebelFirst.BusName = "Rebel"
	ochoSecond := leg(t, "2025-03-18", 2, "B", "C")

	routes := BuildRoutes([]domain.Leg{ocho, rebelFirst, ochoSecond})
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	// First-seen group order.
	if routes[0].RouteID != "2025-03-18-Ocho" || routes[1].RouteID != "2025-03-18-Rebel" {
		t.Fatalf("route order wrong: %s, %s", routes[0].RouteID, routes[1].RouteID)
	}
	if routes[0].NumStops != 3 || routes[1].NumStops != 2 {
		t.Fatalf("stop counts wrong: %d, %d", routes[0].NumStops, routes[1].NumStops)
	}
}
