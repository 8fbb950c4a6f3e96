package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/optimizer"
	"waypoint-route-service/internal/platform/metrics"
	"waypoint-route-service/internal/platform/obs"
	"waypoint-route-service/internal/ports"
)

// Ordering strategies accepted by PlanRoute.
const (
	StrategyOptimal = "optimal"
	StrategyNearest = "nearest"
)

// MaxPoints caps the waypoints accepted per route. The optimizer holds a dense
// distance matrix and each 2-opt pass is cubic in the point count.
const MaxPoints = 500

// ErrInvalidRoute is returned for requests that cannot describe a route
// (unknown strategy, empty name, no points, too many points).
var ErrInvalidRoute = errors.New("invalid route")

type PlanRouteRequest struct {
	Start          domain.GeoPoint
	Points         []domain.GeoPoint
	Strategy       string
	WithDirections bool
}

// Plan a visiting order for the requested waypoints.
//
// The optimizer decides the order; the directions provider, when requested,
// only describes the road route through that order. A nil provider skips
// directions even when they are requested.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	provider ports.DirectionsProvider,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanRoute")(&err)

	if err := checkPointCount(len(req.Points)); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	order, solver := optimizer.OptimizeContext, solverName(len(req.Points))
	switch req.Strategy {
	case "", StrategyOptimal:
	case StrategyNearest:
		order = func(_ context.Context, s domain.GeoPoint, p []domain.GeoPoint) (domain.Route, error) {
			return optimizer.NearestNeighbor(s, p)
		}
		solver = "nearest"
	default:
		return nil, fmt.Errorf("plan route: %w: unknown strategy %q", ErrInvalidRoute, req.Strategy)
	}

	started := time.Now()
	stops, err := order(ctx, req.Start, req.Points)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	metrics.OptimizeDuration.WithLabelValues(strategyLabel(req.Strategy), solver).Observe(time.Since(started).Seconds())

	plan := &domain.RoutePlan{
		Start:             req.Start,
		Stops:             stops,
		GreatCircleMeters: optimizer.TourCost(req.Start, stops),
		NavigationURL:     domain.NavigationURL(req.Start, stops),
	}

	if req.WithDirections && provider != nil && len(stops) > 0 {
		waypoints := make([]domain.GeoPoint, 0, len(stops)+1)
		waypoints = append(waypoints, req.Start)
		waypoints = append(waypoints, stops...)

		d, err := provider.GetDirections(ctx, waypoints)
		if err != nil {
			return nil, fmt.Errorf("plan route: get directions: %w", err)
		}
		plan.Directions = &d
	}

	return plan, nil
}

func checkPointCount(n int) error {
	if n > MaxPoints {
		return fmt.Errorf("%w: %d points exceeds the limit of %d", ErrInvalidRoute, n, MaxPoints)
	}
	return nil
}

func solverName(n int) string {
	switch {
	case n == 0:
		return "empty"
	case n <= optimizer.ExactLimit:
		return "exact"
	default:
		return "two_opt"
	}
}

func strategyLabel(s string) string {
	if s == "" {
		return StrategyOptimal
	}
	return s
}
