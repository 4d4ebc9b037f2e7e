package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimLookup returns a GeocodeLookup backed by a Nominatim-style
// search endpoint. Only the first result is used; an empty result set is a
// negative outcome (empty coordinates), not an error.
func NewNominatimLookup(client *http.Client, endpoint, userAgent string) ports.GeocodeLookup {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context, address string) (domain.Coordinates, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: create request: %w", err)
		}

		q := url.Values{}
		q.Set("q", address)
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("addressdetails", "0")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: unexpected status %d", resp.StatusCode)
		}

		var results []nominatimResult
		if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: decode response: %w", err)
		}
		if len(results) == 0 {
			return domain.Coordinates{}, nil
		}

		lat, err := strconv.ParseFloat(results[0].Lat, 64)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: parse lat %q: %w", results[0].Lat, err)
		}
		lon, err := strconv.ParseFloat(results[0].Lon, 64)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode lookup: parse lon %q: %w", results[0].Lon, err)
		}

		return domain.Coordinates{Lat: &lat, Lon: &lon}, nil
	}
}
