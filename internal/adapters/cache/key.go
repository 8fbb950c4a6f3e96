package cache

import (
	"strings"

	"waypoint-route-service/internal/domain"
)

// DirectionsKey builds the cache key for a profile and ordered waypoints,
// e.g. "driving|-112.070000,33.450000;-112.080000,33.460000".
func DirectionsKey(profile string, waypoints []domain.GeoPoint) string {
	var b strings.Builder
	b.WriteString(profile)
	b.WriteByte('|')
	for i, p := range waypoints {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.LngLat())
	}
	return b.String()
}
