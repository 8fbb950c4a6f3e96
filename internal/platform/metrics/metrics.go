package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OperationDuration times named internal operations (obs.Time).
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Internal operation duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "outcome"},
	)

	// OptimizeDuration records route optimizer runtime by strategy and size band.
	OptimizeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "route_optimize_duration_seconds",
			Help:    "Route optimization duration in seconds.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"strategy", "solver"},
	)

	// DirectionsCacheLookups counts directions cache hits and misses.
	DirectionsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "directions_cache_lookups_total", Help: "Directions cache lookups by result."},
		[]string{"result"},
	)
)

// RegisterDefault registers collectors to the service registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(DirectionsCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
