// Package connectivity relates detected functional unit instances: two
// instances are connected when they share at least one plot graph vertex.
package connectivity

import (
	"slices"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
	"github.com/dd0wney/cluso-plotgraph/pkg/units"
)

// Graph is an undirected graph over unit instances. Instance IDs are
// assigned by Add, starting at 1.
type Graph struct {
	Name string

	instances []*units.Instance
	adj       map[uint64][]uint64 // neighbour IDs in insertion order
	byVertex  map[uint64][]uint64 // plot vertex ID -> instance IDs
	edges     int
}

// New creates an empty connectivity graph.
func New(name string) *Graph {
	return &Graph{
		Name:     name,
		adj:      make(map[uint64][]uint64),
		byVertex: make(map[uint64][]uint64),
	}
}

// Add assigns inst its ID and connects it to every earlier instance sharing
// a vertex with it.
func (g *Graph) Add(inst *units.Instance) uint64 {
	inst.ID = uint64(len(g.instances) + 1)
	g.instances = append(g.instances, inst)

	linked := make(map[uint64]bool)
	for _, v := range inst.Vertices {
		for _, other := range g.byVertex[v.ID] {
			if linked[other] {
				continue
			}
			linked[other] = true
			g.adj[inst.ID] = append(g.adj[inst.ID], other)
			g.adj[other] = append(g.adj[other], inst.ID)
			g.edges++
		}
		g.byVertex[v.ID] = append(g.byVertex[v.ID], inst.ID)
	}
	return inst.ID
}

// Instance returns the instance with the given ID.
func (g *Graph) Instance(id uint64) (*units.Instance, bool) {
	if id == 0 || id > uint64(len(g.instances)) {
		return nil, false
	}
	return g.instances[id-1], true
}

// Instances returns all instances in ID order.
func (g *Graph) Instances() []*units.Instance {
	return append([]*units.Instance(nil), g.instances...)
}

// Neighbors returns the instances connected to id, by ascending ID.
func (g *Graph) Neighbors(id uint64) []*units.Instance {
	ids := slices.Clone(g.adj[id])
	slices.Sort(ids)
	out := make([]*units.Instance, len(ids))
	for i, n := range ids {
		out[i] = g.instances[n-1]
	}
	return out
}

// Connected reports whether two instances share a vertex.
func (g *Graph) Connected(a, b uint64) bool {
	return slices.Contains(g.adj[a], b)
}

// InstancesAt returns the instances containing the plot vertex v.
func (g *Graph) InstancesAt(v *plotgraph.Vertex) []*units.Instance {
	ids := g.byVertex[v.ID]
	out := make([]*units.Instance, len(ids))
	for i, id := range ids {
		out[i] = g.instances[id-1]
	}
	return out
}

// NodeCount returns the number of instances.
func (g *Graph) NodeCount() int { return len(g.instances) }

// EdgeCount returns the number of connections.
func (g *Graph) EdgeCount() int { return g.edges }

// Overlap returns the vertices shared by two instances, by ascending ID.
func Overlap(a, b *units.Instance) []*plotgraph.Vertex {
	var out []*plotgraph.Vertex
	i, j := 0, 0
	for i < len(a.Vertices) && j < len(b.Vertices) {
		switch x, y := a.Vertices[i].ID, b.Vertices[j].ID; {
		case x == y:
			out = append(out, a.Vertices[i])
			i++
			j++
		case x < y:
			i++
		default:
			j++
		}
	}
	return out
}
