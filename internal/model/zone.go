package model

// Zone is the circular geofence players must stay inside
type Zone struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"` // meters
}

// Center returns the zone's center point
func (z Zone) Center() Coordinates {
	return Coordinates{Latitude: z.Latitude, Longitude: z.Longitude}
}

// DefaultZone is the zone a fresh session starts with
func DefaultZone() Zone {
	return Zone{
		Latitude:  50.7472,
		Longitude: 25.3253,
		Radius:    5000,
	}
}
