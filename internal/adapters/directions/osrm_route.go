package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"waypoint-route-service/internal/domain"
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// fetchRoute calls the OSRM route endpoint for the waypoints in order.
func (o *OSRMDirectionsProvider) fetchRoute(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (domain.Directions, error) {
	coords := make([]string, len(waypoints))
	for i, p := range waypoints {
		coords[i] = p.LngLat()
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=polyline",
		o.baseURL, o.profile, strings.Join(coords, ";"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return domain.Directions{}, fmt.Errorf("OSRM route request: %w", err)
	}
	defer resp.Body.Close()

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Directions{}, fmt.Errorf("decode OSRM route response: %w", err)
	}

	if parsed.Code != "Ok" {
		return domain.Directions{}, fmt.Errorf("OSRM route: code=%s message=%q", parsed.Code, parsed.Message)
	}
	if len(parsed.Routes) == 0 {
		return domain.Directions{}, fmt.Errorf("OSRM route: no routes returned")
	}

	best := parsed.Routes[0]
	return domain.Directions{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        best.Geometry,
	}, nil
}
