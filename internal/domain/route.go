package domain

import (
	"fmt"
	"time"
)

// Route is an ordered open path from an implicit start point.
// The start is not a member; each listed point is visited once, in order,
// and the path never returns to the start.
type Route []GeoPoint

// Validate checks every point and reports the first invalid index.
func (r Route) Validate() error {
	for i, p := range r {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

// SavedRoute is a named set of waypoints kept by the route repository.
type SavedRoute struct {
	ID        string
	Name      string
	Points    Route
	CreatedAt time.Time
}

// Road-network summary returned by a directions provider.
type Directions struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Geometry        string  `json:"geometry"`
}

// Represents the planned visiting order for a set of waypoints.
// A RoutePlan is the output of the route optimizer plus the optional
// hand-off data for the external directions and navigation services.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Start             GeoPoint
	Stops             Route
	GreatCircleMeters float64
	Directions        *Directions
	NavigationURL     string
}
