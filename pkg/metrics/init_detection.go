package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.UnitInstancesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_unit_instances_total",
			Help: "Total number of functional unit instances detected",
		},
		[]string{"unit"},
	)

	r.UnitSearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plotgraph_unit_search_duration_seconds",
			Help:    "Time spent searching one unit template in a plot graph",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"unit"},
	)

	r.PolyvalentVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "plotgraph_polyvalent_vertices",
			Help: "Polyvalent vertex count of the most recently analysed trace",
		},
	)
}
