package ports

import (
	"context"
	"waypoint-route-service/internal/domain"
)

// Contract for retrieving road directions through an ordered list of waypoints.
type DirectionsProvider interface {
	// Return road distance, duration and geometry for origin + ordered stops.
	GetDirections(ctx context.Context, waypoints []domain.GeoPoint) (domain.Directions, error)
}
