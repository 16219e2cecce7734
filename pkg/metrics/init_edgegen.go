package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEdgeGenerationMetrics() {
	r.EdgesGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_edges_generated_total",
			Help: "Total number of semantic edges created by edge generation",
		},
		[]string{"type"},
	)

	r.VerticesRemovedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_vertices_removed_total",
			Help: "Total number of vertices deleted during edge generation",
		},
		[]string{"reason"},
	)

	r.InconsistenciesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_inconsistencies_total",
			Help: "Total number of structural inconsistencies found in input traces",
		},
		[]string{"kind"},
	)
}
