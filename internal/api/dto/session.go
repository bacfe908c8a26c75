package dto

import "time"

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ZoneResponse struct {
	Center       CoordinateResponse `json:"center"`
	RadiusMeters float64            `json:"radius_meters"`
}

type SessionCreatedResponse struct {
	SessionID string       `json:"session_id"`
	Zone      ZoneResponse `json:"zone"`
}

type SessionResponse struct {
	SessionID      string              `json:"session_id"`
	Location       *CoordinateResponse `json:"location"`
	LocationSource string              `json:"location_source,omitempty"`
	LocatedAt      *time.Time          `json:"located_at,omitempty"`
	StoreStatus    string              `json:"store_status"`
	StoreError     string              `json:"store_error,omitempty"`
	Stores         []StoreResponse     `json:"stores"`
	Zone           ZoneResponse        `json:"zone"`
}

// LocationRequest carries a coordinate from device geolocation or a map
// click. Pointers distinguish a missing field from a zero coordinate.
type LocationRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Source string   `json:"source"`
}

type NotificationResponse struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type CheckResponse struct {
	WithinZone     bool                 `json:"within_zone"`
	DistanceMeters float64              `json:"distance_meters"`
	Notification   NotificationResponse `json:"notification"`
}

type ErrorResponse struct {
	Error        string                `json:"error"`
	Notification *NotificationResponse `json:"notification,omitempty"`
}
