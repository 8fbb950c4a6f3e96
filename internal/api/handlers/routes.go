package handlers

import (
	"net/http"

	"waypoint-route-service/internal/api/dto"
	"waypoint-route-service/internal/ports"
	"waypoint-route-service/internal/services"
)

// RouteHandler exposes saved-route storage and re-planning endpoints.
type RouteHandler struct {
	Repo     ports.RouteRepository
	Provider ports.DirectionsProvider
}

// Collection serves GET (list) and POST (save) on /routes.
func (h *RouteHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Item serves GET and DELETE on /routes/{id}.
func (h *RouteHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		route, err := services.GetRoute(r.Context(), h.Repo, id)
		if err != nil {
			writeServiceError(w, r, "get route", err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.RouteFromDomain(route))
	case http.MethodDelete:
		if err := services.DeleteRoute(r.Context(), h.Repo, id); err != nil {
			writeServiceError(w, r, "delete route", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Plan re-orders a saved route from the caller's current position.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanSavedRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Start == nil {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}

	plan, err := services.LoadAndPlanRoute(r.Context(), h.Repo, h.Provider, r.PathValue("id"), req.Start.ToDomain(), req.WithDirections)
	if err != nil {
		writeServiceError(w, r, "plan saved route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanFromDomain(plan))
}

// Navigation returns deep links that hand the ordered route to a navigation app.
func (h *RouteHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.NavigationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Start == nil {
		writeError(w, r, http.StatusBadRequest, "current position unknown")
		return
	}

	links, err := services.StartNavigation(r.Context(), h.Repo, r.PathValue("id"), req.Start.ToDomain())
	if err != nil {
		writeServiceError(w, r, "start navigation", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NavigationResponse{
		IntentURL: links.IntentURL,
		WebURL:    links.WebURL,
		Stops:     dto.StopsFromDomain(links.Plan.Stops),
	})
}

func (h *RouteHandler) list(w http.ResponseWriter, r *http.Request) {
	routes, err := services.ListRoutes(r.Context(), h.Repo)
	if err != nil {
		writeServiceError(w, r, "list routes", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, dto.RouteFromDomain(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	route, err := services.SaveRoute(r.Context(), h.Repo, req.Name, dto.PointsToDomain(req.Points))
	if err != nil {
		writeServiceError(w, r, "save route", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.RouteFromDomain(route))
}
