package services

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"
)

// LocationSession owns the transient state of one map page: the user
// coordinate, the store list and the configured delivery zone.
//
// Events (store load completion, geolocation, map click, check) run to
// completion under mu, so handlers and the background store load never
// observe a half-applied update. Nothing is persisted.
type LocationSession struct {
	id   string
	zone domain.DeliveryZone
	dir  ports.StoreDirectory
	now  func() time.Time

	loadOnce sync.Once
	loadErr  error

	mu          sync.Mutex
	location    *domain.Coordinate
	source      domain.LocationSource
	locatedAt   time.Time
	stores      []domain.Store
	storeStatus domain.StoreListStatus
	fetchErr    error
	lastActive  time.Time
}

type SessionOption func(*LocationSession)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *LocationSession) { s.now = now }
}

// Consistent copy of a session's state.
type SessionSnapshot struct {
	ID          string
	Location    *domain.Coordinate
	Source      domain.LocationSource
	LocatedAt   time.Time
	Stores      []domain.Store
	StoreStatus domain.StoreListStatus
	FetchErr    error
	Zone        domain.DeliveryZone
	LastActive  time.Time
}

// NewLocationSession creates a session with no user coordinate and an empty,
// loading store list. The zone is validated here rather than at check time.
func NewLocationSession(
	id string,
	zone domain.DeliveryZone,
	dir ports.StoreDirectory,
	opts ...SessionOption,
) (*LocationSession, error) {
	if id == "" {
		return nil, errors.New("new location session: id must be non-empty")
	}
	if dir == nil {
		return nil, errors.New("new location session: store directory is nil")
	}
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("new location session: %w", err)
	}

	s := &LocationSession{
		id:          id,
		zone:        zone,
		dir:         dir,
		now:         time.Now,
		stores:      []domain.Store{},
		storeStatus: domain.StoresLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActive = s.now()

	return s, nil
}

func (s *LocationSession) ID() string { return s.id }

func (s *LocationSession) Zone() domain.DeliveryZone { return s.zone }

// LoadStores performs the one-shot store-directory fetch.
//
// On success the list is stored verbatim and the status becomes Loaded. On
// failure the list stays empty, the status becomes Failed, the failure is
// logged and returned as a *domain.FetchError. There is no retry; later calls
// return the outcome of the first one.
func (s *LocationSession) LoadStores(ctx context.Context) error {
	s.loadOnce.Do(func() {
		s.loadErr = s.loadStores(ctx)
	})
	return s.loadErr
}

func (s *LocationSession) loadStores(ctx context.Context) (err error) {
	defer obs.Time(ctx, "session.LoadStores")(&err)

	stores, err := s.dir.ListStores(ctx)
	if err != nil {
		var fe *domain.FetchError
		if !errors.As(err, &fe) {
			fe = &domain.FetchError{Err: err}
		}

		s.mu.Lock()
		s.stores = []domain.Store{}
		s.storeStatus = domain.StoresFailed
		s.fetchErr = fe
		s.mu.Unlock()

		log.Printf("session_id=%s load stores failed: %v", s.id, fe)
		return fe
	}

	if stores == nil {
		stores = []domain.Store{}
	}

	s.mu.Lock()
	s.stores = stores
	s.storeStatus = domain.StoresLoaded
	s.fetchErr = nil
	s.mu.Unlock()

	return nil
}

// SetLocation records the user coordinate from either trigger.
//
// Geolocation and map clicks share a single slot and the last write wins,
// whatever its source. Invalid coordinates are rejected and leave the
// previous location untouched.
func (s *LocationSession) SetLocation(c domain.Coordinate, src domain.LocationSource) error {
	if !src.Valid() {
		return fmt.Errorf("set location: unknown source %q: %w", src, domain.ErrInvalidInput)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("set location: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc := c
	s.location = &loc
	s.source = src
	s.locatedAt = s.now()
	s.lastActive = s.locatedAt

	return nil
}

// ClearLocation returns the session to the Unset state, e.g. when the page
// reports that geolocation permission was denied.
func (s *LocationSession) ClearLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.location = nil
	s.source = ""
	s.locatedAt = time.Time{}
	s.lastActive = s.now()
}

// CheckDelivery evaluates the current location against the session zone.
// An unset location fails with domain.ErrInvalidInput and computes nothing.
func (s *LocationSession) CheckDelivery() (domain.ZoneCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()

	check, err := IsWithinZone(s.location, s.zone)
	if err != nil {
		return domain.ZoneCheck{}, fmt.Errorf("check delivery: %w", err)
	}
	return check, nil
}

func (s *LocationSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loc *domain.Coordinate
	if s.location != nil {
		c := *s.location
		loc = &c
	}

	return SessionSnapshot{
		ID:          s.id,
		Location:    loc,
		Source:      s.source,
		LocatedAt:   s.locatedAt,
		Stores:      slices.Clone(s.stores),
		StoreStatus: s.storeStatus,
		FetchErr:    s.fetchErr,
		Zone:        s.zone,
		LastActive:  s.lastActive,
	}
}

func (s *LocationSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *LocationSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
