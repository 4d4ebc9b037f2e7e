// Package geocode resolves canonical address strings to coordinates through
// a persisted cache with an online-lookup fallback.
package geocode

import (
	"context"
	"log"
	"time"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

// External services throttle anonymous geocoding to roughly one request per
// second; lookups sleep at least this long afterwards.
const lookupInterval = 1100 * time.Millisecond

// Resolver answers from the static index first, then the persisted cache,
// then the online lookup.
//
// A cache hit counts only when both coordinate components are present; a
// present key with nil components is a stale or negative entry and triggers
// re-lookup. Lookup outcomes are stored either way. With Enabled false only
// the static index is consulted; unknown addresses resolve to unknown
// coordinates without going online.
type Resolver struct {
	// Static holds addresses with known coordinates, typically from the
	// customer reference table. Consulted even when Enabled is false.
	Static map[string]domain.Coordinates

	Cache   ports.GeocodeCache
	Lookup  ports.GeocodeLookup
	Enabled bool

	// Sleep is replaceable in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

func (r *Resolver) Resolve(ctx context.Context, address string) domain.Coordinates {
	if address == "" {
		return domain.Coordinates{}
	}

	if known, ok := r.Static[address]; ok && known.Resolved() {
		return known
	}

	if !r.Enabled {
		return domain.Coordinates{}
	}

	if cached, ok := r.Cache.Get(address); ok && cached.Resolved() {
		return cached
	}

	coords, err := r.Lookup(ctx, address)
	if err != nil {
		// Failed lookups become negative cache entries.
		log.Printf("op=geocode address=%q err=%v", address, err)
		coords = domain.Coordinates{}
	}

	if err := r.Cache.Put(address, coords); err != nil {
		log.Printf("op=geocode.cache.put address=%q err=%v", address, err)
	}

	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(lookupInterval)

	return coords
}
