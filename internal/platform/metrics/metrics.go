package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DeliveryChecks *prometheus.CounterVec
	StoreFetches   *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DeliveryChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_zone_checks_total",
			Help: "Delivery checks by outcome (within, outside, invalid).",
		}, []string{"outcome"}),
		StoreFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_zone_store_fetches_total",
			Help: "Session store-list loads by outcome (loaded, failed).",
		}, []string{"outcome"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_zone_store_cache_lookups_total",
			Help: "Store-directory cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "delivery_zone_active_sessions",
			Help: "Location sessions currently held in memory.",
		}),
	}
}

func (m *Metrics) ObserveCheck(outcome string) {
	if m == nil {
		return
	}
	m.DeliveryChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.StoreFetches.WithLabelValues("failed").Inc()
		return
	}
	m.StoreFetches.WithLabelValues("loaded").Inc()
}

func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionsClosed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.ActiveSessions.Sub(float64(n))
}
