package services

import (
	"delivery-zone-service/internal/adapters/storedir"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/metrics"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionRegistrySuite struct {
	suite.Suite
	now      time.Time
	dir      *storedir.StaticStoreDirectory
	metrics  *metrics.Metrics
	registry *SessionRegistry
}

func TestSessionRegistrySuite(t *testing.T) {
	suite.Run(t, new(SessionRegistrySuite))
}

func (s *SessionRegistrySuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	s.dir = storedir.NewStaticStoreDirectory(testStores)
	s.metrics = metrics.New(prometheus.NewRegistry())

	r, err := NewSessionRegistry(RegistryConfig{
		Zone:         storeZone,
		Directory:    s.dir,
		FetchTimeout: time.Second,
		IdleTTL:      10 * time.Minute,
		Metrics:      s.metrics,
		Now:          func() time.Time { return s.now },
	})
	s.Require().NoError(err)
	s.registry = r
	s.T().Cleanup(r.Close)
}

func (s *SessionRegistrySuite) TestCreateLoadsStoresInBackground() {
	sess, err := s.registry.Create()
	s.Require().NoError(err)
	s.NotEmpty(sess.ID())

	s.registry.WaitLoads()

	snap := sess.Snapshot()
	s.Equal(domain.StoresLoaded, snap.StoreStatus)
	s.Equal(testStores, snap.Stores)
	s.Equal(1, s.dir.Calls())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.StoreFetches.WithLabelValues("loaded")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ActiveSessions))
}

func (s *SessionRegistrySuite) TestGetAndDelete() {
	sess, err := s.registry.Create()
	s.Require().NoError(err)

	got, err := s.registry.Get(sess.ID())
	s.Require().NoError(err)
	s.Same(sess, got)

	s.Require().NoError(s.registry.Delete(sess.ID()))
	s.Equal(0, s.registry.Len())
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ActiveSessions))

	_, err = s.registry.Get(sess.ID())
	s.ErrorIs(err, domain.ErrSessionNotFound)
	s.ErrorIs(s.registry.Delete(sess.ID()), domain.ErrSessionNotFound)
}

func (s *SessionRegistrySuite) TestSweepDropsIdleSessions() {
	idle, err := s.registry.Create()
	s.Require().NoError(err)

	s.now = s.now.Add(8 * time.Minute)
	active, err := s.registry.Create()
	s.Require().NoError(err)

	s.now = s.now.Add(4 * time.Minute)
	removed := s.registry.Sweep(s.now)

	s.Equal(1, removed)
	_, err = s.registry.Get(idle.ID())
	s.ErrorIs(err, domain.ErrSessionNotFound)
	_, err = s.registry.Get(active.ID())
	s.NoError(err)
}

func (s *SessionRegistrySuite) TestSessionsAreIndependent() {
	a, err := s.registry.Create()
	s.Require().NoError(err)
	b, err := s.registry.Create()
	s.Require().NoError(err)

	s.Require().NoError(a.SetLocation(storeZone.Center, domain.SourceGeolocation))

	s.NotNil(a.Snapshot().Location)
	s.Nil(b.Snapshot().Location)
}

func TestSessionRegistryFailedLoad(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r, err := NewSessionRegistry(RegistryConfig{
		Zone:      storeZone,
		Directory: storedir.NewFailingStoreDirectory(errors.New("unreachable")),
		Metrics:   m,
	})
	require.NoError(t, err)
	defer r.Close()

	sess, err := r.Create()
	require.NoError(t, err)
	r.WaitLoads()

	snap := sess.Snapshot()
	assert.Equal(t, domain.StoresFailed, snap.StoreStatus)
	assert.Empty(t, snap.Stores)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreFetches.WithLabelValues("failed")))
}

func TestNewSessionRegistryValidates(t *testing.T) {
	_, err := NewSessionRegistry(RegistryConfig{Zone: storeZone})
	assert.Error(t, err)

	_, err = NewSessionRegistry(RegistryConfig{
		Zone:      domain.DeliveryZone{Center: storeZone.Center, RadiusMeters: -1},
		Directory: storedir.NewStaticStoreDirectory(nil),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionRegistryCreateAfterClose(t *testing.T) {
	r, err := NewSessionRegistry(RegistryConfig{
		Zone:      storeZone,
		Directory: storedir.NewStaticStoreDirectory(nil),
	})
	require.NoError(t, err)

	r.Close()

	_, err = r.Create()
	assert.Error(t, err)
}
