// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the practice hub.
var (
	// Counters.
	ReconciliationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliations_total",
			Help: "Total number of external-login reconciliations",
		},
		[]string{"outcome"},
	)

	UsernameConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "username_conflicts_total",
			Help: "Total number of username collisions released during reconciliation",
		},
	)

	FiveADayIncrementsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "five_a_day_increments_total",
			Help: "Total number of daily review counter increments",
		},
	)

	DailiesServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailies_served_total",
			Help: "Total number of submissions served through dailies queues",
		},
	)

	// Histograms.
	DailiesQueueSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dailies_queue_size",
			Help:    "Number of submissions returned per dailies computation",
			Buckets: prometheus.LinearBuckets(0, 1, 11), // 0 to 10 entries
		},
	)
)

// Reconciliation outcome label values.
const (
	OutcomeLinked  = "linked"
	OutcomeClaimed = "claimed"
	OutcomeCreated = "created"
	OutcomeFailed  = "failed"
)
