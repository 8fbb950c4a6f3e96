package ports

import (
	"context"
	"waypoint-route-service/internal/domain"
)

// Persistent cache for directions results keyed by profile and waypoints.
type DirectionsCache interface {
	Get(ctx context.Context, key string) (domain.Directions, bool, error)
	Put(ctx context.Context, key string, d domain.Directions) error
}
