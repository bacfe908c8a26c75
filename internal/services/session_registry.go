package services

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type RegistryConfig struct {
	Zone         domain.DeliveryZone
	Directory    ports.StoreDirectory
	FetchTimeout time.Duration
	IdleTTL      time.Duration
	Metrics      *metrics.Metrics
	Now          func() time.Time
}

// SessionRegistry holds the live LocationSessions of every open page.
// Sessions live in memory only and are dropped on Delete, on Sweep once idle
// longer than IdleTTL, or when the process exits.
type SessionRegistry struct {
	zone         domain.DeliveryZone
	dir          ports.StoreDirectory
	fetchTimeout time.Duration
	idleTTL      time.Duration
	metrics      *metrics.Metrics
	now          func() time.Time

	// Parent of every background store load; cancelled by Close.
	baseCtx context.Context
	cancel  context.CancelFunc
	loads   sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*LocationSession
}

func NewSessionRegistry(cfg RegistryConfig) (*SessionRegistry, error) {
	if cfg.Directory == nil {
		return nil, errors.New("new session registry: store directory is nil")
	}
	if err := cfg.Zone.Validate(); err != nil {
		return nil, fmt.Errorf("new session registry: %w", err)
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &SessionRegistry{
		zone:         cfg.Zone,
		dir:          cfg.Directory,
		fetchTimeout: cfg.FetchTimeout,
		idleTTL:      cfg.IdleTTL,
		metrics:      cfg.Metrics,
		now:          cfg.Now,
		baseCtx:      ctx,
		cancel:       cancel,
		sessions:     make(map[string]*LocationSession),
	}, nil
}

// Create opens a new session and starts its store-list load in the
// background. The load is bounded by the fetch timeout and is not retried.
func (r *SessionRegistry) Create() (*LocationSession, error) {
	if err := r.baseCtx.Err(); err != nil {
		return nil, fmt.Errorf("create session: registry closed: %w", err)
	}

	s, err := NewLocationSession(uuid.NewString(), r.zone, r.dir, WithClock(r.now))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	r.metrics.SessionOpened()

	r.loads.Add(1)
	go func() {
		defer r.loads.Done()

		ctx, cancel := context.WithTimeout(r.baseCtx, r.fetchTimeout)
		defer cancel()

		// Failure is recorded on the session and logged there.
		err := s.LoadStores(ctx)
		r.metrics.ObserveFetch(err)
	}()

	return s, nil
}

// Get returns the session and marks it active.
func (r *SessionRegistry) Get(id string) (*LocationSession, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("get session %q: %w", id, domain.ErrSessionNotFound)
	}

	s.touch(r.now())
	return s, nil
}

// Delete ends a session.
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("delete session %q: %w", id, domain.ErrSessionNotFound)
	}
	r.metrics.SessionsClosed(1)
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the idle TTL and returns how many
// were removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.idleTTL {
			delete(r.sessions, id)
			removed++
		}
	}
	r.mu.Unlock()

	r.metrics.SessionsClosed(removed)
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep(r.now())
		}
	}
}

// WaitLoads blocks until every background store load has finished.
func (r *SessionRegistry) WaitLoads() {
	r.loads.Wait()
}

// Close cancels in-flight store loads and waits for them.
func (r *SessionRegistry) Close() {
	r.cancel()
	r.loads.Wait()
}
