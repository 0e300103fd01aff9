// filepath: internal/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors are created at package load so they are always safe to use;
// Register exports them on the default registry when the server starts.
// Tests touch the counters without registering them.
var (
	SamplesIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "samples_ingested_total",
		Help:      "Total number of raw samples written to the live tier.",
	})
	BatchesIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "sample_batches_total",
		Help:      "Total number of ingest batches accepted.",
	})
	SamplesArchived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "samples_archived_total",
		Help:      "Total number of raw samples rolled up into daily aggregates.",
	})
	LifecycleBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "lifecycle_bytes_freed_total",
		Help:      "Estimated bytes freed by lifecycle runs.",
	})
	LifecycleRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "lifecycle_runs_total",
		Help:      "Total number of lifecycle runs by outcome.",
	}, []string{"outcome"})
	ProjectionsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wearables",
		Name:      "projections_served_total",
		Help:      "Total number of storage forecasts computed for clients.",
	})
)

// Register exports the collectors on the default Prometheus registry.
func Register() {
	prometheus.MustRegister(
		SamplesIngested, BatchesIngested, SamplesArchived,
		LifecycleBytes, LifecycleRuns, ProjectionsServed,
	)
}
