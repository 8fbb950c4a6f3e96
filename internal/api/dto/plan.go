package dto

import "waypoint-route-service/internal/domain"

type OptimizeRequest struct {
	Start          *Point  `json:"start"`
	Points         []Point `json:"points"`
	Strategy       string  `json:"strategy"`
	WithDirections bool    `json:"with_directions"`
}

type PlanSavedRouteRequest struct {
	Start          *Point `json:"start"`
	WithDirections bool   `json:"with_directions"`
}

type NavigationRequest struct {
	Start *Point `json:"start"`
}

type StopResponse struct {
	Stop int     `json:"stop"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type DirectionsResponse struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Geometry        string  `json:"geometry"`
}

type PlanResponse struct {
	Start             Point               `json:"start"`
	Stops             []StopResponse      `json:"stops"`
	GreatCircleMeters float64             `json:"great_circle_meters"`
	Directions        *DirectionsResponse `json:"directions,omitempty"`
	NavigationURL     string              `json:"navigation_url,omitempty"`
}

type NavigationResponse struct {
	IntentURL string         `json:"intent_url"`
	WebURL    string         `json:"web_url"`
	Stops     []StopResponse `json:"stops"`
}

func StopsFromDomain(r domain.Route) []StopResponse {
	stops := make([]StopResponse, 0, len(r))
	for i, p := range r {
		stops = append(stops, StopResponse{Stop: i + 1, Lat: p.Lat, Lng: p.Lng})
	}
	return stops
}

func PlanFromDomain(p *domain.RoutePlan) PlanResponse {
	res := PlanResponse{
		Start:             PointFromDomain(p.Start),
		Stops:             StopsFromDomain(p.Stops),
		GreatCircleMeters: p.GreatCircleMeters,
		NavigationURL:     p.NavigationURL,
	}
	if p.Directions != nil {
		res.Directions = &DirectionsResponse{
			DistanceMeters:  p.Directions.DistanceMeters,
			DurationSeconds: p.Directions.DurationSeconds,
			Geometry:        p.Directions.Geometry,
		}
	}
	return res
}
