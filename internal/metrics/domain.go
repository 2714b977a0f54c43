package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Indexing, query and document cache Prometheus metrics.
var (
	IndexingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dlfindex",
			Name:      "indexing_total",
			Help:      "Documents submitted for indexing by outcome",
		},
		[]string{"core", "status"}, // "indexed" / "rejected" / "error"
	)

	IndexedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dlfindex",
			Name:      "indexed_records_total",
			Help:      "Records written to search cores",
		},
		[]string{"core"},
	)

	IndexingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dlfindex",
			Name:      "indexing_duration_seconds",
			Help:      "Time to project and commit one document",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"core"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dlfindex",
			Name:      "query_duration_seconds",
			Help:      "Search plus hydration duration",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"core"},
	)

	HydrationMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dlfindex",
			Name:      "hydration_misses_total",
			Help:      "Toplevel hits whose relational row no longer exists",
		},
		[]string{"core"},
	)

	DocumentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dlfindex",
			Name:      "document_cache_total",
			Help:      "Parsed document cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// RegisterDomainMetrics registers the HTTP and domain metrics on the default registry.
// Later calls are no-ops.
func RegisterDomainMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpInFlight,
			IndexingTotal,
			IndexedRecordsTotal,
			IndexingDuration,
			QueryDuration,
			HydrationMissesTotal,
			DocumentCacheTotal,
		)
	})
}
