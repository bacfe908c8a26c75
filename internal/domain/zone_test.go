package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNewDeliveryZone(t *testing.T) {
	center := Coordinate{Lat: 13.8145263, Lng: 100.04178689}

	z, err := NewDeliveryZone(center, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z.Center != center || z.RadiusMeters != 1000 {
		t.Fatalf("zone = %+v, want center %v radius 1000", z, center)
	}

	bad := []struct {
		name   string
		center Coordinate
		radius float64
	}{
		{"zero radius", center, 0},
		{"negative radius", center, -1},
		{"NaN radius", center, math.NaN()},
		{"latitude out of range", Coordinate{Lat: -90.0001, Lng: 0}, 10},
		{"longitude out of range", Coordinate{Lat: 0, Lng: 181}, 10},
		{"infinite center", Coordinate{Lat: math.Inf(1), Lng: 0}, 10},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeliveryZone(tt.center, tt.radius)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCoordinateValidateBounds(t *testing.T) {
	for _, c := range []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
	} {
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", c, err)
		}
	}
}

func TestFetchErrorMatchesFetchFailure(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load: %w", &FetchError{URL: "http://dir/api/stores", StatusCode: 502, Err: cause})

	if !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("expected errors.Is(err, ErrFetchFailure)")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected FetchError to unwrap to its cause")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fetch failure must not match ErrInvalidInput")
	}

	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != 502 {
		t.Fatalf("errors.As = %v, status = %d", fe, fe.StatusCode)
	}
}
