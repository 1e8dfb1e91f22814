package geo

import (
	"math"

	"github.com/movematch/movematch-backend/pkg/types"
)

const earthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between two points in kilometers.
func DistanceKM(a, b types.GeographyPoint) float64 {
	latA := degreesToRadians(a.Lat)
	latB := degreesToRadians(b.Lat)
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadiusKM reports whether b lies within radiusKM of a.
func WithinRadiusKM(a, b types.GeographyPoint, radiusKM float64) bool {
	if radiusKM <= 0 {
		return false
	}
	return DistanceKM(a, b) <= radiusKM
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
