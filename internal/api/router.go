package api

import (
	"net/http"

	"fleet-route-service/internal/api/handlers"
	"fleet-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(optimizer *services.Optimizer) http.Handler {
	mux := http.NewServeMux()

	optHandler := &handlers.OptimizeHandler{Optimizer: optimizer}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize-route", optHandler.Optimize)

	return loggingMiddleware(mux)
}
