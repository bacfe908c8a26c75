package services

import (
	"delivery-zone-service/internal/domain"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

const degToRad = math.Pi / 180

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. Both coordinates must already be valid; out-of-range
// input yields an undefined result.
func DistanceMeters(a, b domain.Coordinate) float64 {
	phi1 := a.Lat * degToRad
	phi2 := b.Lat * degToRad
	dPhi := (b.Lat - a.Lat) * degToRad
	dLambda := (b.Lng - a.Lng) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
