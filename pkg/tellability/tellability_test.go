package tellability

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/metrics"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

type plot struct {
	t    *testing.T
	g    *plotgraph.Graph
	step int
}

func newPlot(t *testing.T, name string) *plot {
	g := plotgraph.NewGraph(name)
	g.AddRoot("hen")
	return &plot{t: t, g: g}
}

func (p *plot) add(typ plotgraph.VertexType, label string, emotions ...string) *plotgraph.Vertex {
	p.step++
	return p.g.AddVertex(&plotgraph.Vertex{
		Type:      typ,
		Label:     label,
		Character: "hen",
		Emotions:  emotions,
		Step:      p.step,
	})
}

func (p *plot) edge(typ plotgraph.EdgeType, from, to *plotgraph.Vertex) {
	p.t.Helper()
	_, err := p.g.AddEdge(typ, from, to)
	require.NoError(p.t, err)
}

// twoBirds builds two intentions achieved by one success that is then
// undone by a loss.
func twoBirds(t *testing.T) (*plot, []*plotgraph.Vertex) {
	p := newPlot(t, "two-birds")
	plant := p.add(plotgraph.VertexIntention, "!plant(wheat)")
	feed := p.add(plotgraph.VertexIntention, "!feed(chicks)")
	harvest := p.add(plotgraph.VertexPercept, "+harvest(wheat)", "joy")
	storm := p.add(plotgraph.VertexPercept, "-destroyed(wheat)", "distress")

	p.edge(plotgraph.EdgeActualization, plant, harvest)
	p.edge(plotgraph.EdgeActualization, feed, harvest)
	p.edge(plotgraph.EdgeTermination, storm, harvest)
	return p, []*plotgraph.Vertex{plant, feed, harvest, storm}
}

func detector(tolerance int) *Detector {
	return NewDetector(Options{Tolerance: tolerance, Logger: logging.NewNopLogger()})
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   float64
	}{
		{"no conflict", Counts{Polyvalent: 4, Vertices: 4, Suspense: 2, PlotLength: 4}, 0},
		{"polyvalence and suspense", Counts{Polyvalent: 2, Vertices: 8, ProductiveConflicts: 1, Suspense: 3, PlotLength: 6}, 0.75},
		{"no vertices", Counts{ProductiveConflicts: 1, Suspense: 1, PlotLength: 2}, 0.5},
		{"no plot length", Counts{Polyvalent: 1, Vertices: 2, ProductiveConflicts: 1}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.counts), 1e-9)
		})
	}
}

func TestCount(t *testing.T) {
	p, _ := twoBirds(t)
	s := Count(p.g)

	assert.Equal(t, Statistics{Vertices: 4, PlotLength: 4, ProductiveConflicts: 2, Suspense: 2}, s)
}

func TestCountTerminationExtendsSuspense(t *testing.T) {
	p := newPlot(t, "suspense")
	want := p.add(plotgraph.VertexIntention, "!eat(corn)")
	p.add(plotgraph.VertexAction, "walk(field)")
	p.add(plotgraph.VertexAction, "walk(barn)")
	change := p.add(plotgraph.VertexIntention, "!sleep")
	p.edge(plotgraph.EdgeTermination, change, want)

	s := Count(p.g)
	assert.Equal(t, 3, s.Suspense)
	assert.Zero(t, s.ProductiveConflicts, "termination alone does not act on an intention")
	assert.Equal(t, 4, s.Vertices)
}

func TestCountSkipsRemovedVertices(t *testing.T) {
	p, vs := twoBirds(t)
	_, err := p.g.RemoveVertexAndPatch(vs[3])
	require.NoError(t, err)

	s := Count(p.g)
	assert.Equal(t, 3, s.Vertices)
	assert.Equal(t, 3, s.PlotLength)
}

func TestDetectPolyvalence(t *testing.T) {
	p, vs := twoBirds(t)

	det, err := detector(0).Detect(p.g)
	require.NoError(t, err)

	counts := map[string]int{}
	for pair := det.UnitCounts.Oldest(); pair != nil; pair = pair.Next() {
		counts[pair.Key] = pair.Value
	}
	assert.Equal(t, 1, counts["Killing Two Birds"])
	assert.Equal(t, 2, counts["Fleeting Success"])
	assert.Equal(t, 3, det.TotalInstances())
	assert.Equal(t, "Fleeting Success: 2, Killing Two Birds: 1", det.Summary())

	// every event takes part in at least two composite instances
	assert.Len(t, det.Polyvalent, 4)
	for _, v := range vs {
		assert.True(t, v.Polyvalent, v.Label)
	}

	// composites plus Success twice and Loss once
	assert.Equal(t, 6, det.Connectivity.NodeCount())
	comps := det.Connectivity.Components()
	assert.Len(t, comps.Components, 1)
}

func TestDetectUnitCountsFollowCatalogOrder(t *testing.T) {
	p, _ := twoBirds(t)
	det, err := detector(0).Detect(p.g)
	require.NoError(t, err)

	first := det.UnitCounts.Oldest()
	require.NotNil(t, first)
	assert.Equal(t, "Fleeting Success", first.Key)
	assert.Equal(t, 12, det.UnitCounts.Len())
}

func TestDetectNearMatch(t *testing.T) {
	p := newPlot(t, "near-miss")
	want := p.add(plotgraph.VertexIntention, "!eat(bread)")
	got := p.add(plotgraph.VertexPercept, "+has(bread)", "joy")
	lost := p.add(plotgraph.VertexPercept, "-has(bread)", "distress")
	p.edge(plotgraph.EdgeActualization, want, got)
	p.edge(plotgraph.EdgeCausality, lost, got)

	count := func(opts Options) int {
		opts.Logger = logging.NewNopLogger()
		det, err := NewDetector(opts).Detect(p.g)
		require.NoError(t, err)
		n, _ := det.UnitCounts.Get("Fleeting Success")
		return n
	}

	assert.Equal(t, 1, count(Options{Tolerance: 1}))
	assert.Zero(t, count(Options{Tolerance: 0}))
	assert.Zero(t, count(Options{Tolerance: 1, RequireAnchored: true}))
}

func TestDetectNothing(t *testing.T) {
	p := newPlot(t, "quiet")
	p.add(plotgraph.VertexAction, "sleep")

	rec := logging.NewRecorder()
	det, err := NewDetector(Options{Logger: rec}).Detect(p.g)
	require.NoError(t, err)

	assert.Empty(t, det.Polyvalent)
	assert.Equal(t, "<none>", det.Summary())

	var logged bool
	for _, e := range rec.AtLevel(logging.InfoLevel) {
		if e.Message == "found units" {
			logged = true
		}
	}
	assert.True(t, logged)
}

func TestEvaluate(t *testing.T) {
	p, _ := twoBirds(t)

	r, err := detector(0).Evaluate(p.g)
	require.NoError(t, err)

	assert.Equal(t, Counts{Polyvalent: 4, Vertices: 4, ProductiveConflicts: 2, Suspense: 2, PlotLength: 4}, r.Counts)
	assert.InDelta(t, 1.5, r.Score, 1e-9)
	assert.Equal(t, 3, r.TotalInstances())
}

func TestEvaluateWithoutConflict(t *testing.T) {
	p := newPlot(t, "no-conflict")
	good := p.add(plotgraph.VertexPercept, "+sun", "joy")
	bad := p.add(plotgraph.VertexPercept, "-rain", "distress")
	p.edge(plotgraph.EdgeTermination, bad, good)

	r, err := detector(DefaultTolerance).Evaluate(p.g)
	require.NoError(t, err)
	assert.Zero(t, r.Score)
	assert.Zero(t, r.Counts.ProductiveConflicts)
}

func TestDetectNilGraph(t *testing.T) {
	_, err := detector(0).Evaluate(nil)
	assert.ErrorIs(t, err, ErrNilGraph)
}

func TestNewDetectorDefaults(t *testing.T) {
	d := NewDetector(Options{Tolerance: -1})
	assert.Equal(t, DefaultTolerance, d.opts.Tolerance)
	assert.Positive(t, d.opts.Workers)
}

// randomPlot creates a plot with seeded random semantic edges.
func randomPlot(t *testing.T, seed int64) *plot {
	rng := rand.New(rand.NewSource(seed))
	p := newPlot(t, "random")
	var vs []*plotgraph.Vertex
	for i := 0; i < 14; i++ {
		switch rng.Intn(4) {
		case 0:
			vs = append(vs, p.add(plotgraph.VertexIntention, "!goal"))
		case 1:
			vs = append(vs, p.add(plotgraph.VertexPercept, "+good", "joy"))
		case 2:
			vs = append(vs, p.add(plotgraph.VertexPercept, "-bad", "distress"))
		default:
			vs = append(vs, p.add(plotgraph.VertexSpeech, "ask"))
		}
	}
	types := plotgraph.SemanticEdgeTypes()
	for i := 0; i < 30; i++ {
		from, to := vs[rng.Intn(len(vs))], vs[rng.Intn(len(vs))]
		if from == to {
			continue
		}
		p.edge(types[rng.Intn(len(types))], from, to)
	}
	return p
}

func TestDetectDeterministicAcrossWorkers(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		var summaries, polyvalent []string
		for _, workers := range []int{1, 3, 16} {
			p := randomPlot(t, seed)
			det, err := NewDetector(Options{
				Tolerance: DefaultTolerance,
				Workers:   workers,
				Logger:    logging.NewNopLogger(),
			}).Detect(p.g)
			require.NoError(t, err)

			summaries = append(summaries, det.Summary())
			var ids []string
			for _, v := range det.Polyvalent {
				ids = append(ids, strconv.FormatUint(v.ID, 10))
			}
			polyvalent = append(polyvalent, strings.Join(ids, ";"))
		}
		assert.Equal(t, summaries[0], summaries[1], "seed %d", seed)
		assert.Equal(t, summaries[0], summaries[2], "seed %d", seed)
		assert.Equal(t, polyvalent[0], polyvalent[1], "seed %d", seed)
		assert.Equal(t, polyvalent[0], polyvalent[2], "seed %d", seed)
	}
}

func TestDetectRecordsMetrics(t *testing.T) {
	p, _ := twoBirds(t)
	reg := metrics.NewRegistry()

	_, err := NewDetector(Options{Logger: logging.NewNopLogger(), Metrics: reg}).Detect(p.g)
	require.NoError(t, err)

	c, err := reg.UnitInstancesTotal.GetMetricWithLabelValues("Success")
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	assert.Equal(t, 2.0, m.GetCounter().GetValue())
}
