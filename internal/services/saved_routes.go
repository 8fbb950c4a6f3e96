package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/ports"
)

// Persist a named set of waypoints under a fresh ID.
func SaveRoute(
	ctx context.Context,
	repo ports.RouteRepository,
	name string,
	points []domain.GeoPoint,
) (*domain.SavedRoute, error) {
	if repo == nil {
		return nil, errors.New("save route: repository must be non-nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("save route: %w: name is required", ErrInvalidRoute)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("save route: %w: no pinned points", ErrInvalidRoute)
	}
	if err := checkPointCount(len(points)); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}
	if err := domain.Route(points).Validate(); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}

	route := &domain.SavedRoute{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    append(domain.Route(nil), points...),
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.SaveRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}

	return route, nil
}

func ListRoutes(ctx context.Context, repo ports.RouteRepository) ([]*domain.SavedRoute, error) {
	routes, err := repo.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

func GetRoute(ctx context.Context, repo ports.RouteRepository, id string) (*domain.SavedRoute, error) {
	route, err := repo.GetRoute(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	return route, nil
}

func DeleteRoute(ctx context.Context, repo ports.RouteRepository, id string) error {
	if err := repo.DeleteRoute(ctx, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return nil
}

// Load a saved route and re-plan it from the caller's current position.
// Saved points keep their stored order; the visiting order is recomputed
// because the start changes between sessions.
func LoadAndPlanRoute(
	ctx context.Context,
	repo ports.RouteRepository,
	provider ports.DirectionsProvider,
	id string,
	start domain.GeoPoint,
	withDirections bool,
) (*domain.RoutePlan, error) {
	route, err := GetRoute(ctx, repo, id)
	if err != nil {
		return nil, fmt.Errorf("load and plan route: %w", err)
	}

	plan, err := PlanRoute(ctx, PlanRouteRequest{
		Start:          start,
		Points:         route.Points,
		WithDirections: withDirections,
	}, provider)
	if err != nil {
		return nil, fmt.Errorf("load and plan route %s: %w", route.ID, err)
	}

	return plan, nil
}
