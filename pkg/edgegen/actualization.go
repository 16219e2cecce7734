package edgegen

import (
	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// visitAction links an action to the intention named by its actualization
// annotation. Every action must carry one. The value is compared verbatim;
// only speech acts strip nested annotations from it.
func (p *pass) visitAction(v *plotgraph.Vertex) {
	intention := annotation.Get(v.Label, annotation.KeyActualization)
	if intention == "" {
		p.inconsistent(MissingActualization, v, "action has no actualization annotation")
	} else {
		p.actualize(v, intention)
	}

	p.recordCrossCharacter(v)
	p.push(v)
}

// visitSpeech applies the action rule to speech acts; a missing annotation is
// not a fault for them.
func (p *pass) visitSpeech(v *plotgraph.Vertex) {
	if intention := annotation.Get(v.Label, annotation.KeyActualization); intention != "" {
		p.actualize(v, annotation.Remove(intention))
	}
	p.push(v)
}

func (p *pass) actualize(v *plotgraph.Vertex, intention string) {
	if intention == "" {
		p.inconsistent(UnmatchedActualization, v, "actualization annotation names no intention")
		return
	}
	target := p.find(func(c *plotgraph.Vertex) bool {
		return intentionID(c) == intention
	})
	if target == nil {
		p.inconsistent(UnmatchedActualization, v, "no earlier intention "+intention+" in sub-trace")
		return
	}
	p.link(plotgraph.EdgeActualization, target, v)
}
