package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// All recorders are no-ops on a nil *Registry so callers can leave metrics unset.

// RecordEdge records one generated semantic edge
func (r *Registry) RecordEdge(edgeType string) {
	if r == nil {
		return
	}
	r.EdgesGeneratedTotal.WithLabelValues(edgeType).Inc()
}

// RecordVertexRemoved records a vertex deleted by edge generation
func (r *Registry) RecordVertexRemoved(reason string) {
	if r == nil {
		return
	}
	r.VerticesRemovedTotal.WithLabelValues(reason).Inc()
}

// RecordInconsistency records a structural inconsistency of the given kind
func (r *Registry) RecordInconsistency(kind string) {
	if r == nil {
		return
	}
	r.InconsistenciesTotal.WithLabelValues(kind).Inc()
}

// RecordUnitSearch records the search of one unit template
func (r *Registry) RecordUnitSearch(unit string, instances int, duration time.Duration) {
	if r == nil {
		return
	}
	r.UnitInstancesTotal.WithLabelValues(unit).Add(float64(instances))
	r.UnitSearchDuration.WithLabelValues(unit).Observe(duration.Seconds())
}

// RecordAnalysis records a finished analysis run
func (r *Registry) RecordAnalysis(score float64, polyvalent int, duration time.Duration) {
	if r == nil {
		return
	}
	r.TracesAnalyzedTotal.WithLabelValues("success").Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.TellabilityScore.Set(score)
	r.PolyvalentVertices.Set(float64(polyvalent))
}

// RecordAnalysisFailure records an analysis run that returned an error
func (r *Registry) RecordAnalysisFailure() {
	if r == nil {
		return
	}
	r.TracesAnalyzedTotal.WithLabelValues("error").Inc()
}

// WriteTextfile writes all gathered metrics in the Prometheus text format,
// for pickup by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
