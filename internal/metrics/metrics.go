// Package metrics exposes Prometheus instrumentation for catalog traffic,
// the query cache and the favorites store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pokedex"

// Metrics holds all collectors. Every method is safe on a nil receiver so
// components can run uninstrumented in tests.
type Metrics struct {
	registry *prometheus.Registry

	CatalogRequests *prometheus.CounterVec
	CatalogDuration *prometheus.HistogramVec

	CacheLookups *prometheus.CounterVec
	CacheEntries prometheus.Gauge
	CacheShared  prometheus.Counter

	FavoritesOps    *prometheus.CounterVec
	FavoritesErrors prometheus.Counter
	FavoritesCount  prometheus.Gauge
}

// New registers every collector on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CatalogRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Remote catalog requests by operation and HTTP status (0 = network failure).",
		}, []string{"op", "status"}),
		CatalogDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "request_duration_seconds",
			Help:      "Remote catalog request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Query cache lookups by kind and result (hit, backend_hit, miss).",
		}, []string{"kind", "result"}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "In-memory cached responses.",
		}),
		CacheShared: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "shared_fetches_total",
			Help:      "Callers that joined an identical in-flight fetch.",
		}),

		FavoritesOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "favorites",
			Name:      "operations_total",
			Help:      "Favorites store operations.",
		}, []string{"op"}),
		FavoritesErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "favorites",
			Name:      "storage_errors_total",
			Help:      "Durable store failures swallowed by the favorites store.",
		}),
		FavoritesCount: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "favorites",
			Name:      "count",
			Help:      "Favorites after the last successful write.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCatalog(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.CatalogDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) CacheLookup(kind, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.CacheEntries.Set(float64(n))
}

func (m *Metrics) SharedFetch() {
	if m == nil {
		return
	}
	m.CacheShared.Inc()
}

func (m *Metrics) FavoritesOp(op string) {
	if m == nil {
		return
	}
	m.FavoritesOps.WithLabelValues(op).Inc()
}

func (m *Metrics) FavoritesError() {
	if m == nil {
		return
	}
	m.FavoritesErrors.Inc()
}

func (m *Metrics) SetFavoritesCount(n int) {
	if m == nil {
		return
	}
	m.FavoritesCount.Set(float64(n))
}
