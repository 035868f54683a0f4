package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/ranchsync/internal/metrics"
)

var (
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "reconcile",
			Name:      "total",
			Help:      "Total number of reconciliations by kind, action and result",
		},
		[]string{"kind", "action", "result"},
	)

	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "reconcile",
			Name:      "duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"kind"},
	)
)

func init() {
	metrics.Registry.MustRegister(reconcileTotal, reconcileDuration)
}

// recordReconcile records the outcome of one invocation.
func recordReconcile(kind string, action Action, result *Result, err error, duration time.Duration) {
	outcome := "unchanged"
	switch {
	case err != nil:
		outcome = "error"
	case result != nil && result.Changed:
		outcome = "changed"
	}
	reconcileTotal.WithLabelValues(kind, action.String(), outcome).Inc()
	reconcileDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
