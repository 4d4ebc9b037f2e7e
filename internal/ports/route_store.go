package ports

import "fleet-route-service/internal/domain"

// Port: a boundary for persisting and retrieving reconstructed routes.
// Reconstructed routes are written once by the build step and read as
// historical examples by assignment runs.
type TrainingRouteStore interface {
	// Save replaces the full set of training routes.
	Save(routes []domain.Route) error
	// Load returns all training routes. A missing store is an explicit,
	// named error; assignment runs cannot proceed without it.
	Load() ([]domain.Route, error)
}
