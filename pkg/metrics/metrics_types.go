package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analysis engine
type Registry struct {
	// Edge generation metrics
	EdgesGeneratedTotal  *prometheus.CounterVec
	VerticesRemovedTotal *prometheus.CounterVec
	InconsistenciesTotal *prometheus.CounterVec

	// Detection metrics
	UnitInstancesTotal *prometheus.CounterVec
	UnitSearchDuration *prometheus.HistogramVec
	PolyvalentVertices prometheus.Gauge

	// Analysis metrics
	TracesAnalyzedTotal *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	TellabilityScore    prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initEdgeGenerationMetrics()
	r.initDetectionMetrics()
	r.initAnalysisMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
