package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.EdgesGeneratedTotal == nil {
		t.Error("EdgesGeneratedTotal not initialized")
	}
	if r.UnitSearchDuration == nil {
		t.Error("UnitSearchDuration not initialized")
	}
	if r.TellabilityScore == nil {
		t.Error("TellabilityScore not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordEdge(t *testing.T) {
	r := NewRegistry()

	r.RecordEdge("ACTUALIZATION")
	r.RecordEdge("ACTUALIZATION")
	r.RecordEdge("CAUSALITY")

	if got := counterValue(t, r.EdgesGeneratedTotal, "ACTUALIZATION"); got != 2 {
		t.Errorf("ACTUALIZATION counter = %v, want 2", got)
	}
	if got := counterValue(t, r.EdgesGeneratedTotal, "CAUSALITY"); got != 1 {
		t.Errorf("CAUSALITY counter = %v, want 1", got)
	}
}

func TestRecordRemovalsAndInconsistencies(t *testing.T) {
	r := NewRegistry()

	r.RecordVertexRemoved("irrelevant_drop")
	r.RecordInconsistency("missing_actualization")
	r.RecordInconsistency("missing_actualization")

	if got := counterValue(t, r.VerticesRemovedTotal, "irrelevant_drop"); got != 1 {
		t.Errorf("removed counter = %v, want 1", got)
	}
	if got := counterValue(t, r.InconsistenciesTotal, "missing_actualization"); got != 2 {
		t.Errorf("inconsistency counter = %v, want 2", got)
	}
}

func TestRecordUnitSearch(t *testing.T) {
	r := NewRegistry()

	r.RecordUnitSearch("Nested Goal", 3, 2*time.Millisecond)
	r.RecordUnitSearch("Nested Goal", 0, 4*time.Millisecond)

	if got := counterValue(t, r.UnitInstancesTotal, "Nested Goal"); got != 3 {
		t.Errorf("instances = %v, want 3", got)
	}

	h, err := r.UnitSearchDuration.GetMetricWithLabelValues("Nested Goal")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}
	var metric dto.Metric
	if err := h.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Sample count = %v, want 2", metric.Histogram.GetSampleCount())
	}
	sum := metric.Histogram.GetSampleSum()
	if sum < 0.0059 || sum > 0.0061 {
		t.Errorf("Sample sum = %v, want ~0.006", sum)
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis(0.75, 4, 50*time.Millisecond)
	r.RecordAnalysisFailure()

	if got := gaugeValue(t, r.TellabilityScore); got != 0.75 {
		t.Errorf("score = %v, want 0.75", got)
	}
	if got := gaugeValue(t, r.PolyvalentVertices); got != 4 {
		t.Errorf("polyvalent = %v, want 4", got)
	}
	if got := counterValue(t, r.TracesAnalyzedTotal, "success"); got != 1 {
		t.Errorf("success = %v, want 1", got)
	}
	if got := counterValue(t, r.TracesAnalyzedTotal, "error"); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordEdge("CAUSALITY")
	r.RecordVertexRemoved("x")
	r.RecordInconsistency("x")
	r.RecordUnitSearch("x", 1, time.Millisecond)
	r.RecordAnalysis(1, 1, time.Millisecond)
	r.RecordAnalysisFailure()
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordUnitSearch("Request", 1, time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := counterValue(t, r.UnitInstancesTotal, "Request"); got != 1000 {
		t.Errorf("Counter = %v, want 1000", got)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordEdge("CAUSALITY")
	r.RecordUnitSearch("Success", 1, time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("No metrics registered")
	}

	names := make(map[string]bool)
	for _, m := range families {
		if !strings.HasPrefix(m.GetName(), "plotgraph_") {
			t.Errorf("Metric %s does not have plotgraph_ prefix", m.GetName())
		}
		names[m.GetName()] = true
	}

	for _, expected := range []string{
		"plotgraph_edges_generated_total",
		"plotgraph_unit_instances_total",
		"plotgraph_tellability_score",
		"plotgraph_analysis_duration_seconds",
	} {
		if !names[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordEdge("MOTIVATION")

	path := filepath.Join(t.TempDir(), "plotgraph.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `plotgraph_edges_generated_total{type="MOTIVATION"} 1`) {
		t.Errorf("textfile missing edge counter:\n%s", data)
	}
}

func BenchmarkRecordEdge(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordEdge("CAUSALITY")
	}
}
