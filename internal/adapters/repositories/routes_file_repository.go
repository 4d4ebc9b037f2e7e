package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fleet-route-service/internal/domain"
)

// JSONRouteStore implements the TrainingRouteStore port on a JSON file: a
// flat array of reconstructed routes, written once by the build step and
// read-only afterwards.
type JSONRouteStore struct {
	Path string
}

func NewJSONRouteStore(path string) *JSONRouteStore {
	return &JSONRouteStore{Path: path}
}

// Save replaces the training-routes file with the given routes.
func (s *JSONRouteStore) Save(routes []domain.Route) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("save training routes: %w", err)
	}

	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return fmt.Errorf("save training routes: marshal: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("save training routes: write %s: %w", s.Path, err)
	}
	return nil
}

// Load returns all training routes. A missing file is an explicit error;
// assignment runs require built routes.
func (s *JSONRouteStore) Load() ([]domain.Route, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("training routes not found at %s (run buildroutes first)", s.Path)
		}
		return nil, fmt.Errorf("load training routes: %w", err)
	}

	var routes []domain.Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("load training routes %s: %w", s.Path, err)
	}
	return routes, nil
}
