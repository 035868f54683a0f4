// Package metrics holds the Prometheus registry shared by the reconcile
// engine and the Rancher API client.
//
// ranchsync runs as a one-shot job, so nothing scrapes it. When a
// Pushgateway URL is configured the collected series are pushed once at the
// end of the invocation.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Namespace prefixes every ranchsync metric.
const Namespace = "ranchsync"

// DefaultJob is the Pushgateway job name used by the CLI.
const DefaultJob = "ranchsync"

// Registry receives every ranchsync collector.
var Registry = prometheus.NewRegistry()

// Push sends all series in Registry to the Pushgateway at url, replacing the
// previous push of the same job.
func Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if job == "" {
		job = DefaultJob
	}

	if err := push.New(url, job).Gatherer(Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
