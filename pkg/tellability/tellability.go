package tellability

import (
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// Result is the tellability of one plot with its supporting counts.
type Result struct {
	Score      float64    `json:"score"`
	Counts     Counts     `json:"counts"`
	Statistics Statistics `json:"statistics"`
	*Detection
}

// Evaluate detects units in an enriched graph, counts plot statistics and
// computes the score.
func (d *Detector) Evaluate(g *plotgraph.Graph) (*Result, error) {
	det, err := d.Detect(g)
	if err != nil {
		return nil, err
	}
	stats := Count(g)

	counts := Counts{
		Polyvalent:          len(det.Polyvalent),
		Vertices:            stats.Vertices,
		ProductiveConflicts: stats.ProductiveConflicts,
		Suspense:            stats.Suspense,
		PlotLength:          stats.PlotLength,
	}
	r := &Result{
		Score:      Score(counts),
		Counts:     counts,
		Statistics: stats,
		Detection:  det,
	}

	if counts.ProductiveConflicts < 1 {
		d.logger.Info("no productive conflict, plot is not tellable", logging.Trace(g.Name))
	}
	d.logger.Info("overall tellability",
		logging.Trace(g.Name),
		logging.Float64("score", r.Score),
		logging.Int("polyvalent", counts.Polyvalent),
		logging.Int("vertices", counts.Vertices))
	return r, nil
}
