package ports

import (
	"context"

	"fleet-route-service/internal/domain"
)

// GeocodeLookup resolves a single address to coordinates using an external
// service. Implementations return the service's first result only; a lookup
// that finds nothing returns empty coordinates and no error.
type GeocodeLookup func(ctx context.Context, address string) (domain.Coordinates, error)

// Port: coordinate resolution for canonical address strings. The production
// resolver combines the persisted cache with an online lookup; the current
// operating mode disables resolution entirely and always returns empty
// coordinates.
type CoordinateResolver interface {
	Resolve(ctx context.Context, address string) domain.Coordinates
}

// Port: persisted address -> coordinates store backing the geocode resolver.
type GeocodeCache interface {
	// Get returns the stored entry and whether the key is present. Presence
	// does not imply usability: entries with nil components are stored too.
	Get(address string) (domain.Coordinates, bool)
	// Put stores an entry (including negative results) and flushes the
	// cache to its backing file immediately.
	Put(address string, c domain.Coordinates) error
}
