package domain

import (
	"net/url"
	"strings"
)

const googleMapsDirURL = "https://www.google.com/maps/dir/"

// NavigationURL builds a Google Maps directions link from origin through the
// ordered stops. The last stop is the destination; the rest are waypoints.
// Returns "" when route is empty.
func NavigationURL(origin GeoPoint, route Route) string {
	if len(route) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin.LatLng())
	q.Set("destination", route[len(route)-1].LatLng())
	q.Set("travelmode", "driving")

	if len(route) > 1 {
		stops := make([]string, 0, len(route)-1)
		for _, p := range route[:len(route)-1] {
			stops = append(stops, p.LatLng())
		}
		q.Set("waypoints", strings.Join(stops, "|"))
	}

	return googleMapsDirURL + "?" + q.Encode()
}

// NavigationIntent builds the Android navigation intent for the final stop.
// The intent accepts a single destination, so intermediate stops are dropped.
func NavigationIntent(route Route) string {
	if len(route) == 0 {
		return ""
	}
	return "google.navigation:q=" + route[len(route)-1].LatLng() + "&mode=d"
}
