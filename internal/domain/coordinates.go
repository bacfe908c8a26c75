package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in decimal degrees.
// The zero value is a real point (equator / prime meridian); absence is
// expressed with a nil *Coordinate.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate reports ErrInvalidInput when either component is NaN, infinite
// or outside lat ∈ [-90, 90], lng ∈ [-180, 180].
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("coordinate: lat/lng must be numbers: %w", ErrInvalidInput)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("coordinate: lat %v out of range [-90, 90]: %w", c.Lat, ErrInvalidInput)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("coordinate: lng %v out of range [-180, 180]: %w", c.Lng, ErrInvalidInput)
	}
	return nil
}
