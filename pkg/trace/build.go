package trace

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// Build creates the structural plot graph of a validated trace: one root
// per character, a ROOT edge to its first event and TEMPORAL edges between
// consecutive events. Steps default to the event's 1-based position.
func Build(t *Trace) (*plotgraph.Graph, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	g := plotgraph.NewGraph(t.Name)
	byCharacter := make(map[string][]*plotgraph.Vertex, len(t.Roots))

	for i, r := range t.Roots {
		root := g.AddRoot(r.Character)
		prev := root
		vs := make([]*plotgraph.Vertex, 0, len(r.Events))

		for j, e := range r.Events {
			typ, err := plotgraph.ParseVertexType(e.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: roots[%d].events[%d]: %v", ErrInvalidTrace, i, j, err)
			}
			step := e.Step
			if step == 0 {
				step = j + 1
			}
			v := g.AddVertex(&plotgraph.Vertex{
				Type:      typ,
				Label:     e.Label,
				Character: r.Character,
				Source:    e.Source,
				Emotions:  emotions(e),
				Step:      step,
				MinWidth:  len(annotation.Remove(e.Label)),
			})

			edge := plotgraph.EdgeTemporal
			if prev == root {
				edge = plotgraph.EdgeRoot
			}
			if _, err := g.AddEdge(edge, prev, v); err != nil {
				return nil, err
			}
			prev = v
			vs = append(vs, v)
		}
		byCharacter[r.Character] = vs
	}

	for _, c := range t.Communications {
		from := byCharacter[c.From.Character][c.From.Index]
		to := byCharacter[c.To.Character][c.To.Index]
		if _, err := g.AddEdge(plotgraph.EdgeCommunication, from, to); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// emotions merges the explicit emotion list with the label's emotion
// annotation, keeping first occurrences.
func emotions(e Event) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range [][]string{e.Emotions, annotation.Emotions(e.Label)} {
		for _, name := range list {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
