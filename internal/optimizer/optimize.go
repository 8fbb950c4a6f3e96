// Package optimizer orders waypoints into a short open path from a start point.
//
// Small inputs (up to ExactLimit points) are solved exactly by enumeration.
// Larger inputs are built with nearest-neighbor construction and refined with
// first-improvement 2-opt. All functions are pure and safe for concurrent use.
package optimizer

import (
	"context"
	"fmt"

	"waypoint-route-service/internal/domain"
)

// Largest input size solved by exhaustive enumeration (8! = 40,320 orders).
const ExactLimit = 8

// Optimize returns a permutation of points that minimizes the tour cost from
// start: exactly for up to ExactLimit points, approximately above that.
func Optimize(start domain.GeoPoint, points []domain.GeoPoint) (domain.Route, error) {
	return OptimizeContext(context.Background(), start, points)
}

// OptimizeContext is Optimize with cancellation checks inside the 2-opt scan.
func OptimizeContext(
	ctx context.Context,
	start domain.GeoPoint,
	points []domain.GeoPoint,
) (domain.Route, error) {
	if err := validate(start, points); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	if len(points) == 0 {
		return domain.Route{}, nil
	}

	p := newProblem(start, points)

	if p.n <= ExactLimit {
		return p.route(solveExact(p)), nil
	}

	order := nearestNeighborOrder(p)
	if err := twoOpt(ctx, p, order); err != nil {
		return nil, fmt.Errorf("optimize route: 2-opt refinement: %w", err)
	}

	return p.route(order), nil
}

// NearestNeighbor returns the greedy nearest-neighbor order without refinement.
func NearestNeighbor(start domain.GeoPoint, points []domain.GeoPoint) (domain.Route, error) {
	if err := validate(start, points); err != nil {
		return nil, fmt.Errorf("nearest neighbor route: %w", err)
	}

	if len(points) == 0 {
		return domain.Route{}, nil
	}

	p := newProblem(start, points)
	return p.route(nearestNeighborOrder(p)), nil
}

func validate(start domain.GeoPoint, points []domain.GeoPoint) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return domain.Route(points).Validate()
}
