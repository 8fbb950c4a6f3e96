package dto

import (
	"time"

	"waypoint-route-service/internal/domain"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) ToDomain() domain.GeoPoint { return domain.GeoPoint{Lat: p.Lat, Lng: p.Lng} }

func PointFromDomain(g domain.GeoPoint) Point { return Point{Lat: g.Lat, Lng: g.Lng} }

func PointsToDomain(ps []Point) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(ps))
	for i, p := range ps {
		out[i] = p.ToDomain()
	}
	return out
}

func PointsFromDomain(r domain.Route) []Point {
	out := make([]Point, len(r))
	for i, g := range r {
		out[i] = PointFromDomain(g)
	}
	return out
}

type SaveRouteRequest struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type RouteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Points    []Point   `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

func RouteFromDomain(r *domain.SavedRoute) RouteResponse {
	return RouteResponse{
		ID:        r.ID,
		Name:      r.Name,
		Points:    PointsFromDomain(r.Points),
		CreatedAt: r.CreatedAt,
	}
}
