package handlers

import (
	"delivery-zone-service/internal/api/dto"
	"delivery-zone-service/internal/domain"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// writeInvalid reports a validation failure together with the notification
// the page shows for it.
func writeInvalid(w http.ResponseWriter, r *http.Request, msg string, n domain.Notification) {
	nr := toNotificationResponse(n)
	writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: msg, Notification: &nr})
}

// decodeJSON decodes exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func toNotificationResponse(n domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Title:    n.Title,
		Message:  n.Message,
		Severity: string(n.Severity),
	}
}

func toStoreResponses(stores []domain.Store) []dto.StoreResponse {
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreResponse{
			ID:        s.ID,
			Name:      s.Name,
			Address:   s.Address,
			Lat:       s.Lat,
			Lng:       s.Lng,
			Direction: s.Direction,
		})
	}
	return out
}

func toZoneResponse(z domain.DeliveryZone) dto.ZoneResponse {
	return dto.ZoneResponse{
		Center:       dto.CoordinateResponse{Lat: z.Center.Lat, Lng: z.Center.Lng},
		RadiusMeters: z.RadiusMeters,
	}
}
