// Package isomorphism finds approximate embeddings of functional unit
// templates in plot graphs.
//
// The search maps template vertices to role-compatible target vertices one
// at a time, most constrained first, and backtracks as soon as more template
// edges are missing than the tolerance allows. Candidate domains and typed
// adjacency are kept as bitsets over target vertex indices so pruning is a
// handful of word operations.
package isomorphism

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// Target is a read-only index of a plot graph. It may be shared by
// concurrent searches as long as the graph is not modified.
type Target struct {
	vertices []*plotgraph.Vertex
	index    map[uint64]uint
	out      map[plotgraph.EdgeType][]*bitset.BitSet
	in       map[plotgraph.EdgeType][]*bitset.BitSet
	empty    *bitset.BitSet
}

// Index snapshots the vertices and typed adjacency of g.
func Index(g *plotgraph.Graph) *Target {
	vs := g.Vertices()
	n := uint(len(vs))
	t := &Target{
		vertices: vs,
		index:    make(map[uint64]uint, len(vs)),
		out:      make(map[plotgraph.EdgeType][]*bitset.BitSet),
		in:       make(map[plotgraph.EdgeType][]*bitset.BitSet),
		empty:    bitset.New(n),
	}
	for i, v := range vs {
		t.index[v.ID] = uint(i)
	}

	for _, e := range g.Edges() {
		from, ok := t.index[e.FromID]
		if !ok {
			continue
		}
		to, ok := t.index[e.ToID]
		if !ok {
			continue
		}
		adjacency(t.out, e.Type, n)[from].Set(to)
		adjacency(t.in, e.Type, n)[to].Set(from)
	}
	return t
}

func adjacency(m map[plotgraph.EdgeType][]*bitset.BitSet, typ plotgraph.EdgeType, n uint) []*bitset.BitSet {
	sets, ok := m[typ]
	if !ok {
		sets = make([]*bitset.BitSet, n)
		for i := range sets {
			sets[i] = bitset.New(n)
		}
		m[typ] = sets
	}
	return sets
}

// Len returns the number of indexed vertices.
func (t *Target) Len() int { return len(t.vertices) }

// Vertex returns the vertex at index i.
func (t *Target) Vertex(i uint) *plotgraph.Vertex { return t.vertices[i] }

// successors returns the vertices reached from i by an edge of type typ.
func (t *Target) successors(typ plotgraph.EdgeType, i uint) *bitset.BitSet {
	if sets, ok := t.out[typ]; ok {
		return sets[i]
	}
	return t.empty
}

// predecessors returns the vertices with an edge of type typ into i.
func (t *Target) predecessors(typ plotgraph.EdgeType, i uint) *bitset.BitSet {
	if sets, ok := t.in[typ]; ok {
		return sets[i]
	}
	return t.empty
}

func (t *Target) adjacent(typ plotgraph.EdgeType, from, to uint) bool {
	return t.successors(typ, from).Test(to)
}
