package repositories

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fleet-route-service/internal/domain"
)

func TestJSONRouteStoreRoundTrip(t *testing.T) {
	store := NewJSONRouteStore(filepath.Join(t.TempDir(), "out", "training_routes.json"))

	legNum := 1
	routes := []domain.Route{
		{
			Date:     "2025-03-18",
			RouteID:  "2025-03-18-Ocho",
			BusName:  "Ocho",
			NumStops: 2,
			Stops: []domain.Stop{
				{Index: 0, Address: "Keizersgracht 516, Amsterdam, NL", ToLeg: &legNum},
				{Index: 1, Address: "Willemstraat 9, Utrecht, NL", FromLeg: &legNum},
			},
		},
	}

	if err := store.Save(routes); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, routes) {
		t.Fatalf("got %+v, want %+v", got, routes)
	}
}

func TestJSONRouteStoreMissingFile(t *testing.T) {
	store := NewJSONRouteStore(filepath.Join(t.TempDir(), "training_routes.json"))

	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "run buildroutes first") {
		t.Fatalf("error = %v", err)
	}
}
