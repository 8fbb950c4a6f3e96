package optimizer

import (
	"math"

	"waypoint-route-service/internal/domain"
)

// Mean Earth radius used by the spherical approximation.
const EarthRadiusMeters = 6371e3

// Distance returns the great-circle distance in meters between a and b
// using the haversine formula.
func Distance(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// Rounding can push h a hair outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// TourCost sums the distances along start -> route[0] -> ... -> route[n-1].
func TourCost(start domain.GeoPoint, route []domain.GeoPoint) float64 {
	total := 0.0
	prev := start
	for _, p := range route {
		total += Distance(prev, p)
		prev = p
	}
	return total
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
