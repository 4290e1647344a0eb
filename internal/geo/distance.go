// Package geo holds the spherical geometry used by the geofence and proximity logic.
package geo

import (
	"math"

	"github.com/mcoot/zonehunt/internal/model"
)

// EarthRadius is the mean Earth radius in meters
const EarthRadius = 6371000.0

// Distance returns the great-circle distance in meters between a and b (Haversine).
// A nil coordinate yields 0.
func Distance(a, b *model.Coordinates) float64 {
	if a == nil || b == nil {
		return 0
	}
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair above 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Offset returns the point reached by moving meters from origin along bearing degrees (0 = north)
func Offset(origin model.Coordinates, bearing, meters float64) model.Coordinates {
	lat1 := toRadians(origin.Latitude)
	lon1 := toRadians(origin.Longitude)
	brng := toRadians(bearing)
	dr := meters / EarthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(dr) + math.Cos(lat1)*math.Sin(dr)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(dr)*math.Cos(lat1), math.Cos(dr)-math.Sin(lat1)*math.Sin(lat2))

	return model.Coordinates{
		Latitude:  toDegrees(lat2),
		Longitude: toDegrees(lon2),
	}
}

// Valid reports whether c is a finite, in-range coordinate pair
func Valid(c model.Coordinates) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) || math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// ValidZone reports whether z has a valid center and a positive finite radius
func ValidZone(z model.Zone) bool {
	if !Valid(z.Center()) {
		return false
	}
	return z.Radius > 0 && !math.IsInf(z.Radius, 0) && !math.IsNaN(z.Radius)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
