package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet-route-service/internal/domain"
)

type memCache struct {
	entries map[string]domain.Coordinates
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]domain.Coordinates{}}
}

func (c *memCache) Get(address string) (domain.Coordinates, bool) {
	e, ok := c.entries[address]
	return e, ok
}

func (c *memCache) Put(address string, coords domain.Coordinates) error {
	c.entries[address] = coords
	c.puts++
	return nil
}

func coords(lat, lon float64) domain.Coordinates {
	return domain.Coordinates{Lat: &lat, Lon: &lon}
}

func TestResolverDisabled(t *testing.T) {
	lookups := 0
	r := &Resolver{
		Lookup: func(ctx context.Context, address string) (domain.Coordinates, error) {
			lookups++
			return coords(1, 2), nil
		},
	}

	got := r.Resolve(context.Background(), "Keizersgracht 516, Amsterdam, NL")
	if got.Resolved() {
		t.Fatal("disabled resolver must return unknown coordinates")
	}
	if lookups != 0 {
		t.Fatalf("lookups = %d, want 0", lookups)
	}
}

func TestResolverStaticIndex(t *testing.T) {
	lookups := 0
	r := &Resolver{
		Static: map[string]domain.Coordinates{"A": coords(52.36, 4.88)},
		Lookup: func(ctx context.Context, address string) (domain.Coordinates, error) {
			lookups++
			return domain.Coordinates{}, nil
		},
	}

	// Known customers resolve even with online geocoding disabled.
	got := r.Resolve(context.Background(), "A")
	if got.Lat == nil || *got.Lat != 52.36 {
		t.Fatalf("coords = %v", got)
	}
	if lookups != 0 {
		t.Fatalf("static hit must not trigger a lookup, lookups = %d", lookups)
	}

	if r.Resolve(context.Background(), "B").Resolved() {
		t.Fatal("unknown address must stay unresolved while disabled")
	}
}

func TestResolverCacheHit(t *testing.T) {
	c := newMemCache()
	c.entries["A"] = coords(52.36, 4.88)

	lookups := 0
	r := &Resolver{
		Cache:   c,
		Enabled: true,
		Lookup: func(ctx context.Context, address string) (domain.Coordinates, error) {
			lookups++
			return coords(1, 2), nil
		},
		Sleep: func(time.Duration) {},
	}

	got := r.Resolve(context.Background(), "A")
	if got.Lat == nil || *got.Lat != 52.36 {
		t.Fatalf("coords = %v", got)
	}
	if lookups != 0 {
		t.Fatalf("cache hit must not trigger a lookup, lookups = %d", lookups)
	}
}

func TestResolverNegativeEntryRetries(t *testing.T) {
	c := newMemCache()
	c.entries["A"] = domain.Coordinates{} // stale negative entry

	slept := time.Duration(0)
	r := &Resolver{
		Cache:   c,
		Enabled: true,
		Lookup: func(ctx context.Context, address string) (domain.Coordinates, error) {
			return coords(52.36, 4.88), nil
		},
		Sleep: func(d time.Duration) { slept += d },
	}

	got := r.Resolve(context.Background(), "A")
	if !got.Resolved() {
		t.Fatalf("negative entry must trigger re-lookup, got %v", got)
	}
	if stored := c.entries["A"]; !stored.Resolved() {
		t.Fatal("re-lookup result must be stored")
	}
	if slept < lookupInterval {
		t.Fatalf("slept %v, want at least %v after a lookup", slept, lookupInterval)
	}
}

func TestResolverLookupFailureStoresNegative(t *testing.T) {
	c := newMemCache()
	r := &Resolver{
		Cache:   c,
		Enabled: true,
		Lookup: func(ctx context.Context, address string) (domain.Coordinates, error) {
			return domain.Coordinates{}, errors.New("timeout")
		},
		Sleep: func(time.Duration) {},
	}

	got := r.Resolve(context.Background(), "A")
	if got.Resolved() {
		t.Fatalf("failed lookup must return unknown coordinates, got %v", got)
	}
	stored, ok := c.entries["A"]
	if !ok || stored.Resolved() {
		t.Fatalf("failed lookup must store a negative entry, got %v %v", stored, ok)
	}
}

func TestResolverEmptyAddress(t *testing.T) {
	r := &Resolver{Enabled: true, Cache: newMemCache()}
	if got := r.Resolve(context.Background(), ""); got.Resolved() {
		t.Fatal("empty address must resolve to unknown coordinates")
	}
}
