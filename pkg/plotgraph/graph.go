// Package plotgraph holds the directed, typed multigraph built from a
// storyworld trace: one root per character, the character's events chained by
// TEMPORAL edges, and semantic edges added by edge generation.
package plotgraph

import (
	"sort"
)

// Graph is an arena-backed plot graph. Vertex IDs are arena indices plus one
// and are never reused; removed vertices stay in the arena as tombstones.
type Graph struct {
	Name string

	vertices   []*Vertex
	edges      map[uint64]*Edge
	outgoing   map[uint64][]uint64 // vertex ID -> edge IDs in creation order
	incoming   map[uint64][]uint64
	roots      []uint64
	nextEdgeID uint64
}

// NewGraph creates an empty plot graph
func NewGraph(name string) *Graph {
	return &Graph{
		Name:       name,
		edges:      make(map[uint64]*Edge),
		outgoing:   make(map[uint64][]uint64),
		incoming:   make(map[uint64][]uint64),
		nextEdgeID: 1,
	}
}

// AddRoot creates the root vertex of a character's sub-trace.
func (g *Graph) AddRoot(character string) *Vertex {
	v := g.AddVertex(&Vertex{Type: VertexRoot, Label: character, Character: character})
	g.roots = append(g.roots, v.ID)
	return v
}

// AddVertex places v in the arena and assigns its ID.
func (g *Graph) AddVertex(v *Vertex) *Vertex {
	g.vertices = append(g.vertices, v)
	v.ID = uint64(len(g.vertices))
	v.removed = false
	return v
}

// Vertex returns the live vertex with the given ID.
func (g *Graph) Vertex(id uint64) (*Vertex, error) {
	if id == 0 || id > uint64(len(g.vertices)) {
		return nil, VertexNotFoundError(id)
	}
	v := g.vertices[id-1]
	if v.removed {
		return nil, NewError("get").Vertex(id).Cause(ErrRemovedVertex).Err()
	}
	return v, nil
}

// Contains reports whether v is a live vertex of this graph.
func (g *Graph) Contains(v *Vertex) bool {
	return v != nil && v.ID != 0 && v.ID <= uint64(len(g.vertices)) && g.vertices[v.ID-1] == v && !v.removed
}

func (g *Graph) check(op string, v *Vertex) error {
	if v == nil {
		return NewError(op).Vertex(0).Cause(ErrVertexNotFound).Err()
	}
	if v.ID == 0 || v.ID > uint64(len(g.vertices)) || g.vertices[v.ID-1] != v {
		return NewError(op).Vertex(v.ID).Context(v.Label).Cause(ErrForeignVertex).Err()
	}
	if v.removed {
		return NewError(op).Vertex(v.ID).Context(v.Label).Cause(ErrRemovedVertex).Err()
	}
	return nil
}

// AddEdge creates a typed edge between two live vertices of this graph.
// Parallel edges are allowed.
func (g *Graph) AddEdge(t EdgeType, from, to *Vertex) (*Edge, error) {
	if err := g.check("AddEdge", from); err != nil {
		return nil, err
	}
	if err := g.check("AddEdge", to); err != nil {
		return nil, err
	}
	return g.link(t, from.ID, to.ID), nil
}

func (g *Graph) link(t EdgeType, from, to uint64) *Edge {
	e := &Edge{ID: g.nextEdgeID, Type: t, FromID: from, ToID: to}
	g.nextEdgeID++
	g.edges[e.ID] = e
	g.outgoing[from] = append(g.outgoing[from], e.ID)
	g.incoming[to] = append(g.incoming[to], e.ID)
	return e
}

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id uint64) (*Edge, error) {
	e, ok := g.edges[id]
	if !ok {
		return nil, NewError("get").Edge(id).Cause(ErrEdgeNotFound).Err()
	}
	return e, nil
}

// Source returns the tail vertex of e.
func (g *Graph) Source(e *Edge) *Vertex {
	return g.vertices[e.FromID-1]
}

// Target returns the head vertex of e.
func (g *Graph) Target(e *Edge) *Vertex {
	return g.vertices[e.ToID-1]
}

// OutEdges returns the edges leaving v in creation order.
func (g *Graph) OutEdges(v *Vertex) []*Edge {
	return g.collect(g.outgoing[v.ID])
}

// InEdges returns the edges entering v in creation order.
func (g *Graph) InEdges(v *Vertex) []*Edge {
	return g.collect(g.incoming[v.ID])
}

// IncidentEdges returns every edge touching v. A self-loop is listed once.
func (g *Graph) IncidentEdges(v *Vertex) []*Edge {
	out := g.collect(g.outgoing[v.ID])
	for _, id := range g.incoming[v.ID] {
		e := g.edges[id]
		if e.FromID == v.ID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EdgesBetween returns the edges incident to both a and b, in either direction.
func (g *Graph) EdgesBetween(a, b *Vertex) []*Edge {
	var out []*Edge
	for _, e := range g.IncidentEdges(a) {
		if (e.FromID == a.ID && e.ToID == b.ID) || (e.FromID == b.ID && e.ToID == a.ID) {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether an edge of type t runs from one vertex to another.
func (g *Graph) HasEdge(t EdgeType, from, to *Vertex) bool {
	for _, id := range g.outgoing[from.ID] {
		e := g.edges[id]
		if e.Type == t && e.ToID == to.ID {
			return true
		}
	}
	return false
}

// RemoveEdge deletes e from the graph.
func (g *Graph) RemoveEdge(e *Edge) error {
	if _, ok := g.edges[e.ID]; !ok {
		return NewError("RemoveEdge").Edge(e.ID).Cause(ErrEdgeNotFound).Err()
	}
	g.unlink(e)
	return nil
}

func (g *Graph) unlink(e *Edge) {
	delete(g.edges, e.ID)
	g.outgoing[e.FromID] = without(g.outgoing[e.FromID], e.ID)
	g.incoming[e.ToID] = without(g.incoming[e.ToID], e.ID)
}

// retarget moves the head of e to another vertex, keeping its ID.
func (g *Graph) retarget(e *Edge, to uint64) {
	g.incoming[e.ToID] = without(g.incoming[e.ToID], e.ID)
	e.ToID = to
	g.incoming[to] = append(g.incoming[to], e.ID)
}

func (g *Graph) collect(ids []uint64) []*Edge {
	out := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.edges[id])
	}
	return out
}

func without(ids []uint64, id uint64) []uint64 {
	for i, x := range ids {
		if x == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// Roots returns the sub-trace roots in insertion order.
func (g *Graph) Roots() []*Vertex {
	out := make([]*Vertex, 0, len(g.roots))
	for _, id := range g.roots {
		out = append(out, g.vertices[id-1])
	}
	return out
}

// Root returns the root of the named character, or nil.
func (g *Graph) Root(character string) *Vertex {
	for _, id := range g.roots {
		if v := g.vertices[id-1]; v.Character == character {
			return v
		}
	}
	return nil
}

// Vertices returns the live vertices in ID order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		if !v.removed {
			out = append(out, v)
		}
	}
	return out
}

// Edges returns all edges in ID order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// VertexCount returns the number of live vertices, roots included.
func (g *Graph) VertexCount() int {
	n := 0
	for _, v := range g.vertices {
		if !v.removed {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// CountEdges returns the number of edges of type t.
func (g *Graph) CountEdges(t EdgeType) int {
	n := 0
	for _, e := range g.edges {
		if e.Type == t {
			n++
		}
	}
	return n
}

// SubTrace returns root followed by the events reachable from it over
// structural edges, depth first in edge creation order.
func (g *Graph) SubTrace(root *Vertex) []*Vertex {
	if !g.Contains(root) {
		return nil
	}
	seen := make(map[uint64]bool)
	var out []*Vertex
	stack := []uint64{root.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, g.vertices[id-1])

		succ := g.outgoing[id]
		for i := len(succ) - 1; i >= 0; i-- {
			e := g.edges[succ[i]]
			if e.Type.chains() && !seen[e.ToID] {
				stack = append(stack, e.ToID)
			}
		}
	}
	return out
}

// TraceOrder returns every sub-trace in root insertion order.
func (g *Graph) TraceOrder() []*Vertex {
	var out []*Vertex
	for _, r := range g.Roots() {
		out = append(out, g.SubTrace(r)...)
	}
	return out
}

// Clone returns a deep copy of the graph. Vertex and edge IDs are preserved.
func (g *Graph) Clone() *Graph {
	c := NewGraph(g.Name)
	c.vertices = make([]*Vertex, len(g.vertices))
	for i, v := range g.vertices {
		cp := *v
		cp.Emotions = append([]string(nil), v.Emotions...)
		c.vertices[i] = &cp
	}
	for id, e := range g.edges {
		cp := *e
		c.edges[id] = &cp
	}
	for id, ids := range g.outgoing {
		c.outgoing[id] = append([]uint64(nil), ids...)
	}
	for id, ids := range g.incoming {
		c.incoming[id] = append([]uint64(nil), ids...)
	}
	c.roots = append([]uint64(nil), g.roots...)
	c.nextEdgeID = g.nextEdgeID
	return c
}
