package rancher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/ranchsync/internal/metrics"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rancher",
			Name:      "api_calls_total",
			Help:      "Total number of Rancher API calls by method and result",
		},
		[]string{"method", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rancher",
			Name:      "api_latency_seconds",
			Help:      "Latency of Rancher API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"method"},
	)
)

func init() {
	metrics.Registry.MustRegister(apiCallsTotal, apiLatency)
}

// recordAPICall records a Rancher API call.
func recordAPICall(method, result string, latency time.Duration) {
	apiCallsTotal.WithLabelValues(method, result).Inc()
	apiLatency.WithLabelValues(method).Observe(latency.Seconds())
}
