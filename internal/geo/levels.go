package geo

// Proximity tiers, closest first
const (
	LevelNone  = 0
	LevelFar   = 1
	LevelNear  = 2
	LevelClose = 3
)

// Tier thresholds in meters
const (
	closeThreshold = 50.0
	nearThreshold  = 150.0
	farThreshold   = 300.0
)

// Level buckets a distance into a proximity tier
func Level(meters float64) int {
	switch {
	case meters < closeThreshold:
		return LevelClose
	case meters < nearThreshold:
		return LevelNear
	case meters < farThreshold:
		return LevelFar
	default:
		return LevelNone
	}
}
