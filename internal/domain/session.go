package domain

// LocationSource names the trigger that produced the user coordinate.
// Both sources share one slot and the last write wins.
type LocationSource string

const (
	SourceGeolocation LocationSource = "geolocation"
	SourceMapClick    LocationSource = "map_click"
)

func (s LocationSource) Valid() bool {
	return s == SourceGeolocation || s == SourceMapClick
}

// StoreListStatus tracks the one-shot store-directory load.
type StoreListStatus string

const (
	StoresLoading StoreListStatus = "loading"
	StoresLoaded  StoreListStatus = "loaded"
	StoresFailed  StoreListStatus = "failed"
)

// Severity of a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the title/message/severity triple the page shows
// after a delivery check.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}
