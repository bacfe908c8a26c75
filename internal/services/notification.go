package services

import (
	"delivery-zone-service/internal/domain"
	"errors"
	"fmt"
	"math"
)

// NotificationFor turns a delivery check outcome into the message the page
// shows in its modal.
func NotificationFor(check domain.ZoneCheck, err error, zone domain.DeliveryZone) domain.Notification {
	if err != nil {
		if errors.Is(err, domain.ErrLocationUnset) {
			return domain.Notification{
				Title:    "Location required",
				Message:  "Share your location or pick a point on the map before checking delivery.",
				Severity: domain.SeverityError,
			}
		}
		return domain.Notification{
			Title:    "Invalid input",
			Message:  "The delivery check could not run with the current location or zone settings.",
			Severity: domain.SeverityError,
		}
	}

	dist := math.Round(check.DistanceMeters)
	if check.WithinZone {
		return domain.Notification{
			Title:    "Delivery available",
			Message:  fmt.Sprintf("You are %.0f m from the store, inside the %.0f m delivery zone.", dist, zone.RadiusMeters),
			Severity: domain.SeveritySuccess,
		}
	}
	return domain.Notification{
		Title:    "Outside delivery zone",
		Message:  fmt.Sprintf("You are %.0f m from the store, beyond the %.0f m delivery zone.", dist, zone.RadiusMeters),
		Severity: domain.SeverityError,
	}
}
