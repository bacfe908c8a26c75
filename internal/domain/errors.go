package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks an unset user location or a misconfigured zone.
	// Callers surface it as a validation message.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLocationUnset is the ErrInvalidInput case of a check run before any
	// geolocation or map click.
	ErrLocationUnset = fmt.Errorf("location is not set: %w", ErrInvalidInput)

	// ErrFetchFailure marks a failed store-directory request.
	ErrFetchFailure = errors.New("store directory fetch failed")

	ErrSessionNotFound = errors.New("session not found")
)

// FetchError is the failure result of a store-directory fetch.
// StatusCode is zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch stores from %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch stores from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetchFailure) match any *FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailure }
