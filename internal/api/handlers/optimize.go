package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
)

// OptimizeHandler accepts an assignment request, runs the optimizer and
// returns the validated (or repaired) bus assignment.
type OptimizeHandler struct {
	Optimizer *services.Optimizer
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.Date) == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}
	if len(req.Stops) == 0 {
		writeError(w, r, http.StatusBadRequest, "stops must not be empty")
		return
	}

	domainReq := domain.AssignmentRequest{
		Date:           req.Date,
		MaxStopsPerBus: req.MaxStopsPerBus,
		Buses:          req.Buses,
		Stops:          make([]domain.RequestedStop, 0, len(req.Stops)),
	}
	for _, s := range req.Stops {
		domainReq.Stops = append(domainReq.Stops, domain.RequestedStop{
			Address: s.Address,
			Colli:   s.Colli,
		})
	}

	result, err := h.Optimizer.OptimizeRoute(r.Context(), domainReq)
	if err != nil {
		// Only missing prerequisites reach this branch; collaborator and
		// validation failures were already repaired downstream.
		log.Printf("optimize route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{BusRoutes: result.BusRoutes})
}
