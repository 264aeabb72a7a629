// Package prometheus defines and registers the service's application
// metrics and exposes the scrape handler.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AppMetrics holds every metric the service emits.  One instance is created
// at startup and shared by injection; a nil *AppMetrics is valid and turns
// every record call into a no-op, which keeps tests and the CLI free of a
// registry.
type AppMetrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Recommendation engine
	RecommendationsTotal   *prometheus.CounterVec
	PipelineDuration       prometheus.Histogram
	RecommendedItems       prometheus.Histogram
	CatalogSnapshotEntries prometheus.Gauge
	CatalogCacheHitsTotal  *prometheus.CounterVec

	// Analytics events
	EventsPublishedTotal *prometheus.CounterVec
}

// NewAppMetrics constructs and registers all metrics on a private registry.
func NewAppMetrics() *AppMetrics {
	reg := prometheus.NewRegistry()
	m := &AppMetrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "miracle",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "miracle",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RecommendationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "miracle",
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Recommendation calls by outcome (ok, validation_error, internal_error).",
		}, []string{"outcome"}),

		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "miracle",
			Subsystem: "engine",
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end recommendation pipeline latency.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),

		RecommendedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "miracle",
			Subsystem: "engine",
			Name:      "recommended_items",
			Help:      "Number of items emitted per recommendation call.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 12, 16, 20},
		}),

		CatalogSnapshotEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "miracle",
			Subsystem: "catalog",
			Name:      "snapshot_entries",
			Help:      "Entry count of the most recently loaded catalog snapshot.",
		}),

		CatalogCacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "miracle",
			Subsystem: "catalog",
			Name:      "cache_requests_total",
			Help:      "Catalog snapshot cache lookups by result (hit, miss, error).",
		}, []string{"result"}),

		EventsPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "miracle",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Analytics events by publish result (ok, error).",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RecommendationsTotal,
		m.PipelineDuration,
		m.RecommendedItems,
		m.CatalogSnapshotEntries,
		m.CatalogCacheHitsTotal,
		m.EventsPublishedTotal,
	)
	return m
}

// Handler returns the scrape endpoint handler.
func (m *AppMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed HTTP request.  Nil-safe.
func (m *AppMetrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveRecommendation records one engine invocation.  Nil-safe.
func (m *AppMetrics) ObserveRecommendation(outcome string, items int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.PipelineDuration.Observe(elapsed.Seconds())
		m.RecommendedItems.Observe(float64(items))
	}
}

// SetCatalogEntries records the size of the active catalog snapshot.
// Nil-safe.
func (m *AppMetrics) SetCatalogEntries(n int) {
	if m == nil {
		return
	}
	m.CatalogSnapshotEntries.Set(float64(n))
}

// ObserveCatalogCache records one snapshot cache lookup result
// (hit, miss, error).  Nil-safe.
func (m *AppMetrics) ObserveCatalogCache(result string) {
	if m == nil {
		return
	}
	m.CatalogCacheHitsTotal.WithLabelValues(result).Inc()
}

// ObserveEventPublish records one analytics publish attempt (ok, error).
// Nil-safe.
func (m *AppMetrics) ObserveEventPublish(result string) {
	if m == nil {
		return
	}
	m.EventsPublishedTotal.WithLabelValues(result).Inc()
}
