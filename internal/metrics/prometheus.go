package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipe_planner",
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Total number of engine operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recipe_planner",
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Duration of engine operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		operations,
		operationDuration,
		storage,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveOperation counts one engine call and records its duration.
func ObserveOperation(operation, outcome string, d time.Duration) {
	operations.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}
