// Package metrics provides Prometheus metrics for monitoring.
//
// Design Philosophy:
// - RED Method for services: Rate, Errors, Duration
// - USE Method for resources: Utilization, Saturation, Errors
// - Custom registry to avoid global state conflicts
// - Consistent naming: horaire_{component}_{metric}_{unit}
// - Low cardinality labels (avoid high-cardinality values)
// - Histogram buckets aligned with SLO targets
// - Focus on actionable observability over vanity metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the search engine.
// Organized by component following the RED/USE methodology.
type Metrics struct {
	registry *prometheus.Registry

	// ============================================
	// Search (RED Method)
	// Primary service entry point
	// ============================================
	// Rate: requests per second by algorithm
	// Errors: tracked via status label (success/error/no_results)
	// Duration: scoring time from query to ranked hits
	SearchTotal    *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	SearchResults  *prometheus.HistogramVec // result count distribution

	// FusionFallback counts hybrid searches that degraded to BM25-only
	// because fusion failed.
	FusionFallback *prometheus.CounterVec

	// ============================================
	// Autocomplete (RED Method)
	// ============================================
	AutocompleteTotal    *prometheus.CounterVec
	AutocompleteDuration prometheus.Histogram

	// ============================================
	// Corpus (USE Method)
	// In-memory course snapshot
	// ============================================
	CorpusSize       prometheus.Gauge      // documents currently loaded
	CorpusReloadTotal *prometheus.CounterVec // status: success, error
	CorpusReloadAge  prometheus.Gauge       // seconds since last successful reload

	// ============================================
	// Background Jobs (Duration only)
	// Snapshot download/upload, warmup
	// ============================================
	JobDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered.
// The caller should register Go/Process/BuildInfo collectors separately
// to avoid duplicate registration issues.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		// ============================================
		// Search metrics
		// ============================================
		SearchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "horaire_search_total",
				Help: "Total search requests",
			},
			// algorithm: bm25, fuzzy, hybrid
			// status: success, error, no_results
			[]string{"algorithm", "status"},
		),

		SearchDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "horaire_search_duration_seconds",
				Help: "Search operation duration in seconds",
				// In-memory scoring should stay well under 100ms
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"algorithm"},
		),

		SearchResults: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "horaire_search_results",
				Help:    "Number of results returned by search",
				Buckets: []float64{0, 1, 5, 10, 20, 40},
			},
			[]string{"algorithm"},
		),

		FusionFallback: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "horaire_fusion_fallback_total",
				Help: "Total hybrid searches that fell back to BM25-only after fusion failure",
			},
			[]string{"reason"},
		),

		// ============================================
		// Autocomplete metrics
		// ============================================
		AutocompleteTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "horaire_autocomplete_total",
				Help: "Total autocomplete requests",
			},
			[]string{"status"},
		),

		AutocompleteDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "horaire_autocomplete_duration_seconds",
				Help:    "Autocomplete operation duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),

		// ============================================
		// Corpus metrics
		// ============================================
		CorpusSize: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "horaire_corpus_size",
				Help: "Number of courses currently loaded in the corpus snapshot",
			},
		),

		CorpusReloadTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "horaire_corpus_reload_total",
				Help: "Total corpus snapshot reload attempts",
			},
			// status: success, error
			[]string{"status"},
		),

		CorpusReloadAge: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "horaire_corpus_reload_age_seconds",
				Help: "Seconds since the last successful corpus reload",
			},
		),

		// ============================================
		// Background Job metrics
		// ============================================
		JobDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "horaire_job_duration_seconds",
				Help: "Background job duration in seconds",
				// Snapshot download/upload can take seconds to a couple minutes
				Buckets: []float64{0.1, 1, 5, 10, 30, 60, 120},
			},
			// job: snapshot_download, snapshot_upload, warmup
			[]string{"job"},
		),
	}

	return m
}

// ============================================
// Search helpers
// ============================================

// RecordSearch records a search operation.
// algorithm: bm25, fuzzy, hybrid
// status: success, error, no_results
func (m *Metrics) RecordSearch(algorithm, status string, duration float64, resultCount int) {
	m.SearchTotal.WithLabelValues(algorithm, status).Inc()
	m.SearchDuration.WithLabelValues(algorithm).Observe(duration)
	m.SearchResults.WithLabelValues(algorithm).Observe(float64(resultCount))
}

// RecordFusionFallback records a hybrid search that degraded to BM25-only.
func (m *Metrics) RecordFusionFallback(reason string) {
	m.FusionFallback.WithLabelValues(reason).Inc()
}

// ============================================
// Autocomplete helpers
// ============================================

// RecordAutocomplete records an autocomplete request.
func (m *Metrics) RecordAutocomplete(status string, duration float64) {
	m.AutocompleteTotal.WithLabelValues(status).Inc()
	m.AutocompleteDuration.Observe(duration)
}

// ============================================
// Corpus helpers
// ============================================

// SetCorpusSize sets the current number of loaded courses.
func (m *Metrics) SetCorpusSize(count int) {
	m.CorpusSize.Set(float64(count))
}

// RecordCorpusReload records a corpus snapshot reload attempt.
// status: success, error
func (m *Metrics) RecordCorpusReload(status string) {
	m.CorpusReloadTotal.WithLabelValues(status).Inc()
}

// SetCorpusReloadAge sets the seconds elapsed since the last successful reload.
func (m *Metrics) SetCorpusReloadAge(seconds float64) {
	m.CorpusReloadAge.Set(seconds)
}

// ============================================
// Job helpers
// ============================================

// RecordJob records a background job execution.
// job: snapshot_download, snapshot_upload, warmup
func (m *Metrics) RecordJob(job string, duration float64) {
	m.JobDuration.WithLabelValues(job).Observe(duration)
}

// ============================================
// Registry access
// ============================================

// Registry returns the custom Prometheus registry.
// Use with promhttp.HandlerFor() for metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
