package tellability

import "github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"

// Statistics are the plot measures obtained by counting in a single pass.
type Statistics struct {
	// Vertices counts plot events, roots and axis labels excluded.
	Vertices int `json:"vertices"`
	// PlotLength is the largest event step.
	PlotLength int `json:"plot_length"`
	// ProductiveConflicts counts intentions that were acted upon.
	ProductiveConflicts int `json:"productive_conflicts"`
	// Suspense is the longest step span between an intention and the
	// latest event actualizing or terminating it.
	Suspense int `json:"suspense"`
}

// Count walks the live vertices of g once.
func Count(g *plotgraph.Graph) Statistics {
	var s Statistics
	for _, v := range g.Vertices() {
		if v.Type == plotgraph.VertexRoot || v.Type == plotgraph.VertexAxisLabel {
			continue
		}
		s.Vertices++
		s.PlotLength = max(s.PlotLength, v.Step)

		if v.Type != plotgraph.VertexIntention {
			continue
		}
		latest := v.Step
		acted := false
		for _, e := range g.OutEdges(v) {
			if e.Type == plotgraph.EdgeActualization {
				acted = true
				latest = max(latest, g.Target(e).Step)
			}
		}
		for _, e := range g.InEdges(v) {
			if e.Type == plotgraph.EdgeTermination {
				latest = max(latest, g.Source(e).Step)
			}
		}
		if acted {
			s.ProductiveConflicts++
		}
		s.Suspense = max(s.Suspense, latest-v.Step)
	}
	return s
}
