package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidCoordinate is returned for latitudes or longitudes outside their valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Immutable geographic coordinates in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate reports whether the point lies within lat [-90, 90] and lng [-180, 180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// Return coordinates as "lng,lat" for OSRM compatibility.
func (p GeoPoint) LngLat() string {
	return formatDegrees(p.Lng) + "," + formatDegrees(p.Lat)
}

// Return coordinates as "lat,lng", the order navigation links expect.
func (p GeoPoint) LatLng() string {
	return formatDegrees(p.Lat) + "," + formatDegrees(p.Lng)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
