// Package metrics holds the Prometheus instrumentation shared by spdlab packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var (
	// CacheLookupsTotal counts derived-field lookups on CovMat values by outcome
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spdlab_covmat_cache_lookups_total",
			Help: "Total number of CovMat derived-field lookups",
		},
		[]string{"field", "result"},
	)

	// ComputeDurationSeconds measures the cost of filling one cache slot
	ComputeDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spdlab_covmat_compute_duration_seconds",
			Help:    "Duration of CovMat derived-field computations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"field"},
	)

	// NumericalErrorsTotal counts computations rejected as numerically undefined
	NumericalErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spdlab_covmat_numerical_errors_total",
			Help: "Total number of CovMat computations that failed numerically",
		},
		[]string{"field"},
	)

	// CacheResetsTotal counts explicit and mutation-driven cache invalidations
	CacheResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spdlab_covmat_cache_resets_total",
			Help: "Total number of CovMat cache invalidations",
		},
		[]string{"reason"},
	)

	// BenchSpeedup records the last measured old/new time ratio per field and size
	BenchSpeedup = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spdlab_bench_speedup",
			Help: "Reference time divided by CovMat time from the last benchmark run",
		},
		[]string{"field", "size"},
	)

	// LogEntriesTotal counts log entries by level
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spdlab_log_entries_total",
			Help: "Total number of log entries by level",
		},
		[]string{"level"},
	)
)
