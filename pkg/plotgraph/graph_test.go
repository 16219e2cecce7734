package plotgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a sub-trace for character: root -ROOT-> e1 -TEMPORAL-> e2 ...
func chain(t *testing.T, g *Graph, character string, labels ...string) []*Vertex {
	t.Helper()
	root := g.AddRoot(character)
	out := []*Vertex{root}
	prev := root
	for i, l := range labels {
		v := g.AddVertex(&Vertex{Type: VertexEvent, Label: l, Character: character, Step: i + 1})
		typ := EdgeTemporal
		if prev == root {
			typ = EdgeRoot
		}
		_, err := g.AddEdge(typ, prev, v)
		require.NoError(t, err)
		out = append(out, v)
		prev = v
	}
	return out
}

func labels(vs []*Vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Label
	}
	return out
}

func TestGraph_AddAndLookup(t *testing.T) {
	g := NewGraph("test")
	vs := chain(t, g, "farmer", "a", "b")

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, uint64(1), vs[0].ID)

	got, err := g.Vertex(vs[2].ID)
	require.NoError(t, err)
	assert.Same(t, vs[2], got)

	_, err = g.Vertex(99)
	assert.True(t, IsNotFound(err))

	assert.Same(t, vs[0], g.Root("farmer"))
	assert.Nil(t, g.Root("nobody"))
}

func TestGraph_AddEdgeRejectsForeignVertex(t *testing.T) {
	g1 := NewGraph("one")
	g2 := NewGraph("two")
	a := g1.AddVertex(&Vertex{Label: "a"})
	b := g2.AddVertex(&Vertex{Label: "b"})

	_, err := g1.AddEdge(EdgeCausality, a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForeignVertex))

	_, err = g1.AddEdge(EdgeCausality, a, nil)
	assert.True(t, errors.Is(err, ErrVertexNotFound))
}

func TestGraph_IncidentAndBetween(t *testing.T) {
	g := NewGraph("test")
	vs := chain(t, g, "farmer", "a", "b")
	a, b := vs[1], vs[2]

	_, err := g.AddEdge(EdgeCausality, b, a)
	require.NoError(t, err)
	_, err = g.AddEdge(EdgeMotivation, a, a)
	require.NoError(t, err)

	assert.Len(t, g.IncidentEdges(a), 4) // ROOT in, TEMPORAL out, CAUSALITY in, self-loop once
	assert.Len(t, g.EdgesBetween(a, b), 2)
	assert.True(t, g.HasEdge(EdgeCausality, b, a))
	assert.False(t, g.HasEdge(EdgeCausality, a, b))
	assert.Equal(t, 1, g.CountEdges(EdgeMotivation))
}

func TestGraph_TraceOrder(t *testing.T) {
	g := NewGraph("test")
	chain(t, g, "farmer", "f1", "f2")
	chain(t, g, "hen", "h1")

	assert.Equal(t, []string{"farmer", "f1", "f2", "hen", "h1"}, labels(g.TraceOrder()))
}

func TestGraph_SubTraceIgnoresSemanticEdges(t *testing.T) {
	g := NewGraph("test")
	f := chain(t, g, "farmer", "f1")
	h := chain(t, g, "hen", "h1")
	_, err := g.AddEdge(EdgeCrossCharacter, f[1], h[1])
	require.NoError(t, err)

	assert.Equal(t, []string{"farmer", "f1"}, labels(g.SubTrace(f[0])))
}

func TestGraph_Clone(t *testing.T) {
	g := NewGraph("test")
	vs := chain(t, g, "farmer", "a", "b")
	c := g.Clone()

	_, err := c.RemoveVertexAndPatch(mustVertex(t, c, vs[1].ID))
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, c.VertexCount())
	assert.Equal(t, []string{"farmer", "a", "b"}, labels(g.TraceOrder()))
	assert.Equal(t, []string{"farmer", "b"}, labels(c.TraceOrder()))
}

func mustVertex(t *testing.T, g *Graph, id uint64) *Vertex {
	t.Helper()
	v, err := g.Vertex(id)
	require.NoError(t, err)
	return v
}

func TestVertex_DerivedAttributes(t *testing.T) {
	intention := &Vertex{Type: VertexIntention, Label: "!get(drink)[source(self)]"}
	action := &Vertex{Type: VertexAction, Label: "get(drink)[ACTUALIZATION(get(drink)[source(self)])]"}
	percept := &Vertex{Type: VertexPercept, Label: "+found(friend)[source(happening),CAUSALITY(get(drink))]"}

	assert.Equal(t, "get(drink)", intention.Intention())
	assert.Equal(t, "get(drink)", action.Intention())
	assert.Equal(t, "", percept.Intention())
	assert.Equal(t, "get(drink)", percept.Cause())
	assert.Equal(t, "happening", percept.SourceName())
	assert.Equal(t, "+found(friend)", percept.WithoutAnnotation())

	percept.Source = "self"
	assert.Equal(t, "self", percept.SourceName())

	legacy := &Vertex{Label: "+x[cause(y)]"}
	assert.Equal(t, "y", legacy.Cause())
}

func TestVertex_Emotions(t *testing.T) {
	v := &Vertex{Emotions: []string{"Joy"}}
	assert.True(t, v.HasEmotion())
	assert.True(t, v.IsPositive())
	assert.False(t, v.IsNegative())

	v = &Vertex{Emotions: []string{"distress", "hope"}}
	assert.True(t, v.IsPositive())
	assert.True(t, v.IsNegative())

	v = &Vertex{}
	assert.False(t, v.HasEmotion())
	assert.Equal(t, 0, EmotionPolarity("boredom"))
}

func TestParseVertexType(t *testing.T) {
	for _, name := range VertexKindNames() {
		typ, err := ParseVertexType(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.String())
	}
	typ, err := ParseVertexType("Speech_Act")
	require.NoError(t, err)
	assert.Equal(t, VertexSpeech, typ)

	_, err = ParseVertexType("dream")
	assert.Error(t, err)
}

func TestEdgeType_IsSemantic(t *testing.T) {
	assert.False(t, EdgeTemporal.IsSemantic())
	assert.False(t, EdgeCommunication.IsSemantic())
	for _, typ := range SemanticEdgeTypes() {
		assert.True(t, typ.IsSemantic(), typ.String())
	}
}
