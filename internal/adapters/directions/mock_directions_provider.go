package directions

import (
	"context"
	"errors"
	"sync"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/optimizer"
)

// MockDirectionsProvider answers with great-circle distance at a fixed speed.
type MockDirectionsProvider struct {
	SpeedMetersPerSecond float64
	Err                  error

	mu    sync.Mutex
	calls [][]domain.GeoPoint
}

func NewMockDirectionsProvider(speed float64) *MockDirectionsProvider {
	return &MockDirectionsProvider{SpeedMetersPerSecond: speed}
}

func (m *MockDirectionsProvider) GetDirections(ctx context.Context, waypoints []domain.GeoPoint) (domain.Directions, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]domain.GeoPoint(nil), waypoints...))
	m.mu.Unlock()

	if m.Err != nil {
		return domain.Directions{}, m.Err
	}
	if len(waypoints) < 2 {
		return domain.Directions{}, errors.New("mock directions: need at least two waypoints")
	}

	meters := optimizer.TourCost(waypoints[0], waypoints[1:])
	d := domain.Directions{DistanceMeters: meters, Geometry: "mock"}
	if m.SpeedMetersPerSecond > 0 {
		d.DurationSeconds = meters / m.SpeedMetersPerSecond
	}
	return d, nil
}

// Calls returns the waypoint lists received so far.
func (m *MockDirectionsProvider) Calls() [][]domain.GeoPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]domain.GeoPoint(nil), m.calls...)
}
