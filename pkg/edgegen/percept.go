package edgegen

import (
	"strings"

	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

const sourceSelf = "self"

func (p *pass) visitPercept(v *plotgraph.Vertex) {
	cause := annotation.Remove(v.Cause())
	self := v.SourceName() == sourceSelf

	// A happening reported with its cause: the cause was either an action,
	// perceived as-is, or a happening, perceived as an addition.
	if !self && cause != "" {
		target := p.find(func(c *plotgraph.Vertex) bool {
			w := c.WithoutAnnotation()
			return w == cause || w == "+"+cause
		})
		if target != nil {
			p.link(plotgraph.EdgeCausality, target, v)
		} else {
			p.inconsistent(UnmatchedCause, v, "no earlier event "+cause+" in sub-trace")
		}
	}

	p.recordCrossCharacter(v)

	if self && cause != "" {
		switch annotation.Polarity(v.Label) {
		case annotation.Removal:
			p.indirectRemoval(v, cause)
		case annotation.Addition:
			p.indirectAddition(v, cause)
		}
	}

	if v.HasEmotion() {
		p.beliefSwitch(v)
	}

	p.push(v)
}

// beliefSwitch terminates the opposite, emotionally charged belief of the
// same character: +has(bread) followed by -has(bread).
func (p *pass) beliefSwitch(v *plotgraph.Vertex) {
	w := v.WithoutAnnotation()
	sign := annotation.Polarity(w)
	if sign == 0 {
		return
	}
	target := p.find(func(c *plotgraph.Vertex) bool {
		cw := c.WithoutAnnotation()
		cs := annotation.Polarity(cw)
		return cs != 0 && cs != sign &&
			tail(cw) == tail(w) &&
			c.Character == v.Character &&
			c.HasEmotion()
	})
	if target != nil {
		p.link(plotgraph.EdgeTermination, v, target)
	}
}

// causeOf finds the event a self-caused mental note refers to. Actions may be
// referenced with a leading sign, e.g. +eat(bread) for the action eat(bread).
func (p *pass) causeOf(cause string) *plotgraph.Vertex {
	return p.find(func(c *plotgraph.Vertex) bool {
		w := c.WithoutAnnotation()
		return w == cause || (w == tail(cause) && c.Type == plotgraph.VertexAction)
	})
}

// bookkeeping reports whether a belief body is wish/obligation management.
func bookkeeping(body string) bool {
	return strings.HasPrefix(body, "wish") || strings.HasPrefix(body, "obligation")
}

// impliedIntention maps wish(X) or obligation(X) to !X.
func impliedIntention(body string) string {
	inner := strings.TrimPrefix(strings.TrimPrefix(body, "wish"), "obligation")
	if len(inner) >= 2 && inner[0] == '(' && inner[len(inner)-1] == ')' {
		inner = inner[1 : len(inner)-1]
	}
	return "!" + inner
}

func (p *pass) indirectRemoval(v *plotgraph.Vertex, cause string) {
	causeV := p.causeOf(cause)
	if causeV == nil {
		p.inconsistent(UnmatchedCause, v, "no earlier event "+cause+" in sub-trace")
		return
	}

	body := tail(v.WithoutAnnotation())

	// -wish(X): whatever caused the removal actualized the intention !X.
	if bookkeeping(body) {
		source := impliedIntention(body)
		p.each(func(c *plotgraph.Vertex) bool {
			if c.WithoutAnnotation() != source {
				return true
			}
			for _, e := range p.g.EdgesBetween(c, causeV) {
				if e.Type == plotgraph.EdgeActualization {
					return true
				}
			}
			p.link(plotgraph.EdgeActualization, c, causeV)
			return false
		})
		return
	}

	// -X: the cause produced the removal and terminated the earlier +X.
	p.link(plotgraph.EdgeCausality, causeV, v)
	addition := p.find(func(c *plotgraph.Vertex) bool {
		cw := c.WithoutAnnotation()
		return tail(cw) == body && annotation.Polarity(cw) == annotation.Addition
	})
	if addition != nil {
		p.link(plotgraph.EdgeTermination, causeV, addition)
	}
}

func (p *pass) indirectAddition(v *plotgraph.Vertex, cause string) {
	// +wish(X) is explained by the motivation of the intention !X instead.
	if bookkeeping(tail(v.WithoutAnnotation())) {
		return
	}
	causeV := p.causeOf(cause)
	if causeV == nil {
		p.inconsistent(UnmatchedCause, v, "no earlier event "+cause+" in sub-trace")
		return
	}
	p.link(plotgraph.EdgeCausality, causeV, v)
}
