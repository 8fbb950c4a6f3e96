package handlers

import (
	"net/http"
	"strings"

	"waypoint-route-service/internal/api/dto"
	"waypoint-route-service/internal/ports"
	"waypoint-route-service/internal/services"
)

type OptimizeHandler struct {
	Provider ports.DirectionsProvider
}

// Optimize orders ad-hoc waypoints from a start point without persisting them.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Start == nil {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}

	plan, err := services.PlanRoute(r.Context(), services.PlanRouteRequest{
		Start:          req.Start.ToDomain(),
		Points:         dto.PointsToDomain(req.Points),
		Strategy:       strings.ToLower(strings.TrimSpace(req.Strategy)),
		WithDirections: req.WithDirections,
	}, h.Provider)
	if err != nil {
		writeServiceError(w, r, "optimize route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanFromDomain(plan))
}
