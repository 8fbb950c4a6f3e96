package ports

import (
	"context"
	"errors"
	"waypoint-route-service/internal/domain"
)

// ErrRouteNotFound is returned when no saved route has the requested ID.
var ErrRouteNotFound = errors.New("route not found")

// Port: a boundary for persisting named waypoint sets.
type RouteRepository interface {
	// Store a new saved route.
	SaveRoute(ctx context.Context, route *domain.SavedRoute) error
	// Retrieve one saved route by ID.
	GetRoute(ctx context.Context, id string) (*domain.SavedRoute, error)
	// Retrieve all saved routes, oldest first.
	ListRoutes(ctx context.Context) ([]*domain.SavedRoute, error)
	// Remove a saved route by ID.
	DeleteRoute(ctx context.Context, id string) error
}
