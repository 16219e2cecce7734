package edgegen

import (
	"regexp"
	"strings"

	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

const dropPrefix = "drop_intention"

var dropPattern = regexp.MustCompile(`drop_intention\((?P<drop>.*?)\)\[(?i:termination)\((?P<termination>.*)\)\]`)

func (p *pass) visitIntention(v *plotgraph.Vertex) {
	if v.Type == plotgraph.VertexIntentionDrop || strings.HasPrefix(v.Label, dropPrefix) {
		p.dropIntention(v)
		return
	}

	p.perseverance(v)
	p.attachMotivation(v)
	p.push(v)
}

// perseverance points a renewed intention back at its earlier occurrence.
func (p *pass) perseverance(v *plotgraph.Vertex) {
	id := intentionID(v)
	if id == "" {
		return
	}
	target := p.find(func(c *plotgraph.Vertex) bool {
		return intentionID(c) == id && c.Character == v.Character
	})
	if target != nil {
		p.link(plotgraph.EdgeEquivalence, v, target)
	}
}

// attachMotivation links each motivating expression of the label to the most
// recent matching event, never using one event for two expressions.
func (p *pass) attachMotivation(v *plotgraph.Vertex) {
	if !annotation.Has(v.Label, annotation.KeyMotivation) {
		return
	}

	used := make(map[uint64]bool)
	for _, expr := range annotation.SplitList(annotation.Get(v.Label, annotation.KeyMotivation)) {
		expr = annotation.Remove(expr)
		if expr == "" {
			continue
		}
		target := p.find(func(c *plotgraph.Vertex) bool {
			if used[c.ID] {
				return false
			}
			w := c.WithoutAnnotation()
			return expr == intentionID(c) || expr == w || expr == tail(w)
		})
		if target == nil {
			p.logger.Debug("motivation not found",
				logging.VertexID(v.ID), logging.Label(v.Label), logging.String("motivation", expr))
			continue
		}
		used[target.ID] = true
		p.link(plotgraph.EdgeMotivation, target, v)
	}

	if len(used) > 0 || !p.opts.KeepUnmatchedMotivation {
		v.Label = annotation.Without(v.Label, annotation.KeyMotivation)
	}
}

// dropIntention resolves drop_intention(<dropped>)[termination(<cause>)].
func (p *pass) dropIntention(v *plotgraph.Vertex) {
	m := dropPattern.FindStringSubmatch(v.Label)
	if m == nil {
		p.inconsistent(DegenerateDrop, v, "intention drop does not match drop_intention(X)[termination(Y)]")
		p.remove(v, ReasonDegenerateDrop)
		return
	}
	dropped := droppedIntention(m[dropPattern.SubexpIndex("drop")])
	causeString := m[dropPattern.SubexpIndex("termination")]

	var target *plotgraph.Vertex
	if dropped != "" {
		target = p.find(func(c *plotgraph.Vertex) bool {
			return intentionID(c) == dropped
		})
	}
	if target == nil {
		p.remove(v, ReasonIrrelevantDrop)
		return
	}

	switch {
	case strings.HasPrefix(causeString, "+!"):
		// +!rethink_life is the intention !rethink_life
		causeString = causeString[1:]
	case strings.HasPrefix(causeString, "-wish"), strings.HasPrefix(causeString, "-obligation"):
		p.remove(v, ReasonBookkeeping)
		return
	}

	cause := p.find(func(c *plotgraph.Vertex) bool {
		return c.WithoutAnnotation() == causeString
	})
	if cause != nil {
		p.link(plotgraph.EdgeTermination, cause, target)
		p.remove(v, ReasonResolvedDrop)
		return
	}

	// No recorded cause: the drop vertex stands in for it.
	if strings.HasPrefix(causeString, "!") {
		v.Type = plotgraph.VertexIntention
	} else {
		v.Type = plotgraph.VertexPercept
	}
	v.Label = causeString
	p.link(plotgraph.EdgeTermination, v, target)
	p.report.Repurposed = append(p.report.Repurposed, v.ID)
	p.push(v)
}

// droppedIntention strips annotations, the polarity sign and the goal marker
// from the dropped-intention term: +!eat(bread)[source(self)] -> eat(bread).
func droppedIntention(term string) string {
	s := annotation.Remove(term)
	if annotation.Polarity(s) != 0 {
		s = s[1:]
	}
	return strings.TrimPrefix(s, "!")
}
