package geo

import (
	"math"
	"testing"

	"github.com/movematch/movematch-backend/pkg/types"
)

var (
	telAviv   = types.GeographyPoint{Lat: 32.0853, Lng: 34.7818}
	jerusalem = types.GeographyPoint{Lat: 31.7683, Lng: 35.2137}
	haifa     = types.GeographyPoint{Lat: 32.7940, Lng: 34.9896}
)

func TestDistanceKM_KnownCities(t *testing.T) {
	// Tel Aviv to Jerusalem is roughly 54km as the crow flies.
	got := DistanceKM(telAviv, jerusalem)
	if math.Abs(got-54) > 3 {
		t.Fatalf("tel aviv -> jerusalem: expected ~54km, got %.2f", got)
	}

	// Tel Aviv to Haifa is roughly 81km.
	got = DistanceKM(telAviv, haifa)
	if math.Abs(got-81) > 4 {
		t.Fatalf("tel aviv -> haifa: expected ~81km, got %.2f", got)
	}
}

func TestDistanceKM_SamePointIsZero(t *testing.T) {
	if got := DistanceKM(telAviv, telAviv); got != 0 {
		t.Fatalf("expected zero distance, got %f", got)
	}
}

func TestWithinRadiusKM(t *testing.T) {
	if !WithinRadiusKM(telAviv, jerusalem, 60) {
		t.Fatalf("jerusalem should be inside a 60km radius of tel aviv")
	}
	if WithinRadiusKM(telAviv, haifa, 60) {
		t.Fatalf("haifa should be outside a 60km radius of tel aviv")
	}
	if WithinRadiusKM(telAviv, telAviv, 0) {
		t.Fatalf("non-positive radius should never match")
	}
}
