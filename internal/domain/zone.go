package domain

import (
	"fmt"
	"math"
)

// Circular region within which delivery is available.
// It is configured once per session and is not user-editable.
type DeliveryZone struct {
	Center       Coordinate
	RadiusMeters float64
}

// NewDeliveryZone builds a zone and rejects an invalid center or a
// non-positive radius up front, so a session can never hold a broken zone.
func NewDeliveryZone(center Coordinate, radiusMeters float64) (DeliveryZone, error) {
	z := DeliveryZone{Center: center, RadiusMeters: radiusMeters}
	if err := z.Validate(); err != nil {
		return DeliveryZone{}, err
	}
	return z, nil
}

func (z DeliveryZone) Validate() error {
	if err := z.Center.Validate(); err != nil {
		return fmt.Errorf("delivery zone: center: %w", err)
	}
	if math.IsNaN(z.RadiusMeters) || z.RadiusMeters <= 0 {
		return fmt.Errorf("delivery zone: radius %v must be > 0: %w", z.RadiusMeters, ErrInvalidInput)
	}
	return nil
}

// Result of a zone membership evaluation.
type ZoneCheck struct {
	WithinZone     bool
	DistanceMeters float64
}
