package services

import (
	"delivery-zone-service/internal/domain"
	"fmt"
)

// IsWithinZone decides whether point lies inside zone.
//
// A nil point is the "unset" location and is rejected with
// domain.ErrInvalidInput, as is an invalid point or a zone with an invalid
// center or non-positive radius. The boundary is inclusive: a point exactly
// RadiusMeters from the center is inside.
func IsWithinZone(point *domain.Coordinate, zone domain.DeliveryZone) (domain.ZoneCheck, error) {
	if point == nil {
		return domain.ZoneCheck{}, fmt.Errorf("zone check: %w", domain.ErrLocationUnset)
	}
	if err := point.Validate(); err != nil {
		return domain.ZoneCheck{}, fmt.Errorf("zone check: location: %w", err)
	}
	if err := zone.Validate(); err != nil {
		return domain.ZoneCheck{}, fmt.Errorf("zone check: %w", err)
	}

	d := DistanceMeters(*point, zone.Center)
	return domain.ZoneCheck{
		WithinZone:     d <= zone.RadiusMeters,
		DistanceMeters: d,
	}, nil
}
