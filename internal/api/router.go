package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waypoint-route-service/internal/api/handlers"
	"waypoint-route-service/internal/platform/metrics"
	"waypoint-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.RouteRepository, provider ports.DirectionsProvider) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{Provider: provider}
	routeHandler := &handlers.RouteHandler{
		Repo:     repo,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/routes", routeHandler.Collection)
	mux.HandleFunc("/routes/{id}", routeHandler.Item)
	mux.HandleFunc("/routes/{id}/plan", routeHandler.Plan)
	mux.HandleFunc("/routes/{id}/navigation", routeHandler.Navigation)

	return requestIDMiddleware(loggingMiddleware(mux))
}
