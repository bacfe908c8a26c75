package services

import (
	"delivery-zone-service/internal/domain"
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinate
		want float64 // metres
		tol  float64
	}{
		{
			name: "same location",
			a:    domain.Coordinate{Lat: 13.8145263, Lng: 100.04178689},
			b:    domain.Coordinate{Lat: 13.8145263, Lng: 100.04178689},
			want: 0,
			tol:  0,
		},
		{
			name: "one degree of longitude on the equator",
			a:    domain.Coordinate{Lat: 0, Lng: 0},
			b:    domain.Coordinate{Lat: 0, Lng: 1},
			want: 111194.93,
			tol:  0.01,
		},
		{
			name: "antipodal points",
			a:    domain.Coordinate{Lat: 0, Lng: 0},
			b:    domain.Coordinate{Lat: 0, Lng: 180},
			want: math.Pi * EarthRadiusMeters,
			tol:  1e-6,
		},
		{
			name: "pole to pole",
			a:    domain.Coordinate{Lat: 90, Lng: 0},
			b:    domain.Coordinate{Lat: -90, Lng: 0},
			want: 20015086.796,
			tol:  0.01,
		},
		{
			name: "store zone to campus",
			a:    domain.Coordinate{Lat: 13.8145263, Lng: 100.04178689},
			b:    domain.Coordinate{Lat: 13.838500199744178, Lng: 100.02534412184882},
			want: 3202.86,
			tol:  0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.a, tt.b)
			if diff := math.Abs(got - tt.want); diff > tt.tol {
				t.Errorf("DistanceMeters() = %v, want %v (diff %v > tol %v)", got, tt.want, diff, tt.tol)
			}
		})
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 13.8145263, Lng: 100.04178689},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 89.9, Lng: -179.9},
	}

	for _, a := range points {
		for _, b := range points {
			if ab, ba := DistanceMeters(a, b), DistanceMeters(b, a); ab != ba {
				t.Fatalf("DistanceMeters(%v, %v) = %v but reverse = %v", a, b, ab, ba)
			}
		}
		if d := DistanceMeters(a, a); d != 0 {
			t.Fatalf("DistanceMeters(%v, %v) = %v, want 0", a, a, d)
		}
	}
}

func TestDistanceMetersMonotonicInSeparation(t *testing.T) {
	origin := domain.Coordinate{Lat: 0, Lng: 0}

	prev := 0.0
	for lng := 0.0; lng <= 180; lng += 7.5 {
		d := DistanceMeters(origin, domain.Coordinate{Lat: 0, Lng: lng})
		if d < prev {
			t.Fatalf("distance decreased at lng=%v: %v < %v", lng, d, prev)
		}
		prev = d
	}
}
