// Package metrics provides Prometheus metrics for the search engine
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one engine instance
type Metrics struct {
	// Index construction metrics
	DocumentsIndexed   prometheus.Gauge
	IndexEntries       prometheus.Gauge
	IncludedPaths      prometheus.Gauge
	IndexBuildDuration prometheus.Histogram

	// Query metrics
	FindQueriesTotal      *prometheus.CounterVec
	FilterRejectionsTotal *prometheus.CounterVec
	FindSetupDuration     prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics against reg. Metric
// names collide across engines, so callers constructing more than one
// engine must supply distinct registerers.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	// Index construction metrics
	m.DocumentsIndexed = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docsearch_documents_indexed",
			Help: "Number of documents in the index",
		},
	)

	m.IndexEntries = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docsearch_index_entries",
			Help: "Number of distinct branch hashes in the index",
		},
	)

	m.IncludedPaths = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "docsearch_included_paths",
			Help: "Number of explicitly controlled include prefixes",
		},
	)

	m.IndexBuildDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsearch_index_build_duration_seconds",
			Help:    "Duration of index construction in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// Query metrics
	m.FindQueriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsearch_find_queries_total",
			Help: "Total number of find calls",
		},
		[]string{"status"},
	)

	m.FilterRejectionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsearch_filter_rejections_total",
			Help: "Total number of filters rejected during validation",
		},
		[]string{"reason"},
	)

	m.FindSetupDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsearch_find_setup_duration_seconds",
			Help:    "Duration of find validation and setup in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	return m
}

// RecordBuild records index construction statistics
func (m *Metrics) RecordBuild(documents, entries, includedPaths int, duration time.Duration) {
	m.DocumentsIndexed.Set(float64(documents))
	m.IndexEntries.Set(float64(entries))
	m.IncludedPaths.Set(float64(includedPaths))
	m.IndexBuildDuration.Observe(duration.Seconds())
}

// RecordFind records a find call with its validation outcome
func (m *Metrics) RecordFind(status string, duration time.Duration) {
	m.FindQueriesTotal.WithLabelValues(status).Inc()
	m.FindSetupDuration.Observe(duration.Seconds())
}

// RecordRejection records a filter rejected during validation
func (m *Metrics) RecordRejection(reason string) {
	m.FilterRejectionsTotal.WithLabelValues(reason).Inc()
}
