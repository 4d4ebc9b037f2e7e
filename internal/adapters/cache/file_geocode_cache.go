// Package cache holds persisted lookup caches backing the pipeline.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"fleet-route-service/internal/domain"
)

type cacheEntry struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// FileGeocodeCache is a JSON-file cache mapping canonical address strings to
// coordinates. Negative lookups are stored too, with nil components, so that
// presence of a key does not imply a usable coordinate.
//
// Every Put rewrites the whole file. That read-modify-write discipline is
// only safe with a single writer; concurrent pipeline runs must share one
// cache handle or serialize access externally.
type FileGeocodeCache struct {
	path string

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewFileGeocodeCache loads the cache at path. A missing or unreadable file
// starts an empty cache rather than failing.
func NewFileGeocodeCache(path string) *FileGeocodeCache {
	c := &FileGeocodeCache{path: path, entries: map[string]cacheEntry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return c
	}
	c.entries = entries
	return c
}

// Get returns the stored entry and whether the key is present.
func (c *FileGeocodeCache) Get(address string) (domain.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[address]
	if !ok {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: e.Lat, Lon: e.Lon}, true
}

// Put stores an entry and flushes the full cache to disk immediately.
func (c *FileGeocodeCache) Put(address string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[address] = cacheEntry{Lat: coords.Lat, Lon: coords.Lon}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("geocode cache: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("geocode cache: write %s: %w", c.path, err)
	}
	return nil
}

// Len reports the number of stored entries.
func (c *FileGeocodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
