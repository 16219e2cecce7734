package edgegen

import (
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// correlate connects every pair from distinct roots sharing a cross-character id with
// CROSSCHARACTER edges in both directions. Ids are visited in first-seen
// order, pairs in recording order. Pairs already connected are skipped.
func (p *pass) correlate() {
	for pair := p.correlations.Oldest(); pair != nil; pair = pair.Next() {
		vs := pair.Value
		if len(vs) < 2 {
			continue
		}
		for i := 0; i < len(vs); i++ {
			for j := i + 1; j < len(vs); j++ {
				a, b := vs[i], vs[j]
				if a == b || p.owners[a.ID] == p.owners[b.ID] {
					continue
				}
				if !p.g.Contains(a) || !p.g.Contains(b) {
					continue
				}
				linked := false
				if !p.g.HasEdge(plotgraph.EdgeCrossCharacter, a, b) {
					p.link(plotgraph.EdgeCrossCharacter, a, b)
					linked = true
				}
				if !p.g.HasEdge(plotgraph.EdgeCrossCharacter, b, a) {
					p.link(plotgraph.EdgeCrossCharacter, b, a)
					linked = true
				}
				if linked {
					p.report.CorrelatedPairs++
				}
			}
		}
		p.logger.Debug("correlated events", logging.String("crosscharacter_id", pair.Key), logging.Count(len(vs)))
	}
}
