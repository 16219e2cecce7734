package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.TracesAnalyzedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotgraph_traces_analyzed_total",
			Help: "Total number of traces analysed",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotgraph_analysis_duration_seconds",
			Help:    "End-to-end analysis duration of one trace in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.TellabilityScore = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "plotgraph_tellability_score",
			Help: "Tellability score of the most recently analysed trace",
		},
	)
}
