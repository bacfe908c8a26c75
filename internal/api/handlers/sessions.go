package handlers

import (
	"delivery-zone-service/internal/api/dto"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/services"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SessionHandler exposes LocationSessions to the map page.
type SessionHandler struct {
	Sessions *services.SessionRegistry
	Metrics  *metrics.Metrics
}

// Create opens a session; its store list loads in the background.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sessions.Create()
	if err != nil {
		log.Printf("create session failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.SessionCreatedResponse{
		SessionID: s.ID(),
		Zone:      toZoneResponse(s.Zone()),
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.Snapshot()
	res := dto.SessionResponse{
		SessionID:      snap.ID,
		LocationSource: string(snap.Source),
		StoreStatus:    string(snap.StoreStatus),
		Stores:         toStoreResponses(snap.Stores),
		Zone:           toZoneResponse(snap.Zone),
	}
	if snap.Location != nil {
		res.Location = &dto.CoordinateResponse{Lat: snap.Location.Lat, Lng: snap.Location.Lng}
		at := snap.LocatedAt
		res.LocatedAt = &at
	}
	if snap.FetchErr != nil {
		res.StoreError = "store directory unavailable"
	}

	writeJSON(w, r, http.StatusOK, res)
}

// SetLocation records a coordinate from geolocation or a map click.
// The latest call wins whichever source it comes from.
func (h *SessionHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.LocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Lat == nil || req.Lng == nil {
		writeInvalid(w, r, "lat and lng are required", invalidLocation())
		return
	}

	src := domain.LocationSource(req.Source)
	if req.Source == "" {
		src = domain.SourceMapClick
	}

	if err := s.SetLocation(domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}, src); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeInvalid(w, r, err.Error(), invalidLocation())
			return
		}
		log.Printf("set location failed: session_id=%s err=%v", s.ID(), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearLocation resets the session to the unset state, e.g. after the
// browser denied geolocation.
func (h *SessionHandler) ClearLocation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.ClearLocation()
	w.WriteHeader(http.StatusNoContent)
}

// Check runs the delivery check. InvalidInput is a 422 carrying the
// validation notification; in and out of zone are both 200.
func (h *SessionHandler) Check(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	check, err := s.CheckDelivery()
	n := services.NotificationFor(check, err, s.Zone())

	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.Metrics.ObserveCheck("invalid")
			writeInvalid(w, r, err.Error(), n)
			return
		}
		log.Printf("check delivery failed: session_id=%s err=%v", s.ID(), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if check.WithinZone {
		h.Metrics.ObserveCheck("within")
	} else {
		h.Metrics.ObserveCheck("outside")
	}

	writeJSON(w, r, http.StatusOK, dto.CheckResponse{
		WithinZone:     check.WithinZone,
		DistanceMeters: check.DistanceMeters,
		Notification:   toNotificationResponse(n),
	})
}

// Delete ends the session.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, r, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.LocationSession, bool) {
	s, err := h.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, r, http.StatusNotFound, "session not found")
			return nil, false
		}
		log.Printf("get session failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return s, true
}

func invalidLocation() domain.Notification {
	return domain.Notification{
		Title:    "Invalid location",
		Message:  "Latitude must be within [-90, 90] and longitude within [-180, 180].",
		Severity: domain.SeverityError,
	}
}
