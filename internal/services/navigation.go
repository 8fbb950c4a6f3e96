package services

import (
	"context"
	"fmt"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/ports"
)

// NavigationLinks hands an ordered route to an external navigation app.
type NavigationLinks struct {
	// Android intent; carries the final stop only.
	IntentURL string
	// Web directions link with every stop as a waypoint.
	WebURL string
	Plan   *domain.RoutePlan
}

// Re-plan a saved route from the current position and build navigation links.
func StartNavigation(
	ctx context.Context,
	repo ports.RouteRepository,
	id string,
	start domain.GeoPoint,
) (*NavigationLinks, error) {
	plan, err := LoadAndPlanRoute(ctx, repo, nil, id, start, false)
	if err != nil {
		return nil, fmt.Errorf("start navigation: %w", err)
	}

	if len(plan.Stops) == 0 {
		return nil, fmt.Errorf("start navigation: %w: no pinned points to navigate", ErrInvalidRoute)
	}

	return &NavigationLinks{
		IntentURL: domain.NavigationIntent(plan.Stops),
		WebURL:    plan.NavigationURL,
		Plan:      plan,
	}, nil
}
