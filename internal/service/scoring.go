package service

import "math"

// earthRadiusMeters is the mean Earth radius used for great-circle distance.
const earthRadiusMeters = 6371000.0

const (
	// scoreBaseMultiplier scales a riddle's difficulty tier into the score a
	// perfect (zero-distance, instant) answer earns.
	scoreBaseMultiplier = 1000.0
	// scoreTimeHalfLife is the elapsed time, in seconds, at which the time
	// factor of the score halves.
	scoreTimeHalfLife = 300.0
)

// Haversine returns the great-circle distance in meters between two
// latitude/longitude points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CalculateScore maps an answer onto points. The score is non-negative,
// strictly decreases as distance grows (fixed time) and as time grows (fixed
// distance), and equals basePoints * 1000 at the zero-distance, zero-time
// limit. It is computed for incorrect answers too; partial credit is part of
// the game's design.
func CalculateScore(basePoints int, distanceMeters, maxDistanceMeters float64, timeSeconds int) int {
	if basePoints < 0 {
		basePoints = 0
	}
	if distanceMeters < 0 {
		distanceMeters = 0
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = 1
	}
	t := float64(timeSeconds)
	if t < 0 {
		t = 0
	}

	distanceFactor := maxDistanceMeters / (maxDistanceMeters + distanceMeters)
	timeFactor := scoreTimeHalfLife / (scoreTimeHalfLife + t)

	return int(math.Round(float64(basePoints) * scoreBaseMultiplier * distanceFactor * timeFactor))
}
