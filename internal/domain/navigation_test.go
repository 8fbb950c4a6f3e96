package domain

import (
	"net/url"
	"testing"
)

func TestNavigationURL(t *testing.T) {
	origin := GeoPoint{Lat: 33.45, Lng: -112.07}
	route := Route{{Lat: 33.46, Lng: -112.08}, {Lat: 33.47, Lng: -112.09}, {Lat: 33.48, Lng: -112.1}}

	raw := NavigationURL(origin, route)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	q := u.Query()
	if got := q.Get("origin"); got != "33.450000,-112.070000" {
		t.Errorf("origin = %q", got)
	}
	if got := q.Get("destination"); got != "33.480000,-112.100000" {
		t.Errorf("destination = %q", got)
	}
	if got := q.Get("waypoints"); got != "33.460000,-112.080000|33.470000,-112.090000" {
		t.Errorf("waypoints = %q", got)
	}
	if got := q.Get("travelmode"); got != "driving" {
		t.Errorf("travelmode = %q", got)
	}
}

func TestNavigationURLSingleStopHasNoWaypoints(t *testing.T) {
	raw := NavigationURL(GeoPoint{}, Route{{Lat: 1, Lng: 2}})
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Query().Has("waypoints") {
		t.Errorf("unexpected waypoints in %q", raw)
	}
}

func TestNavigationEmptyRoute(t *testing.T) {
	if got := NavigationURL(GeoPoint{}, nil); got != "" {
		t.Errorf("NavigationURL(empty) = %q", got)
	}
	if got := NavigationIntent(nil); got != "" {
		t.Errorf("NavigationIntent(empty) = %q", got)
	}
}

func TestNavigationIntent(t *testing.T) {
	got := NavigationIntent(Route{{Lat: 1, Lng: 2}, {Lat: 33.5, Lng: -112.25}})
	if got != "google.navigation:q=33.500000,-112.250000&mode=d" {
		t.Errorf("NavigationIntent = %q", got)
	}
}
