package plotgraph

// Patch records how the structural chain was repaired around a removed vertex.
type Patch struct {
	Removed    *Vertex
	Redirected []*Edge // incoming chain edges now pointing at a successor
	Added      []*Edge // copies created for successors beyond the first
	Dropped    []*Edge // every other incident edge
}

// RemoveVertexAndPatch deletes v and keeps its sub-trace connected: each
// incoming TEMPORAL or ROOT edge is redirected to v's first chain successor
// and copied to the remaining ones. All other incident edges are dropped.
func (g *Graph) RemoveVertexAndPatch(v *Vertex) (*Patch, error) {
	if err := g.check("RemoveVertex", v); err != nil {
		return nil, err
	}

	p := &Patch{Removed: v}

	var successors []uint64
	for _, e := range g.OutEdges(v) {
		if e.Type.chains() && e.ToID != v.ID {
			successors = append(successors, e.ToID)
		}
	}

	for _, e := range g.OutEdges(v) {
		g.unlink(e)
		p.Dropped = append(p.Dropped, e)
	}

	for _, e := range g.InEdges(v) {
		if !e.Type.chains() || len(successors) == 0 {
			g.unlink(e)
			p.Dropped = append(p.Dropped, e)
			continue
		}
		from := g.vertices[e.FromID-1]

		first := g.vertices[successors[0]-1]
		if g.HasEdge(e.Type, from, first) {
			g.unlink(e)
			p.Dropped = append(p.Dropped, e)
		} else {
			g.retarget(e, first.ID)
			p.Redirected = append(p.Redirected, e)
		}

		for _, id := range successors[1:] {
			succ := g.vertices[id-1]
			if g.HasEdge(e.Type, from, succ) {
				continue
			}
			p.Added = append(p.Added, g.link(e.Type, from.ID, id))
		}
	}

	delete(g.outgoing, v.ID)
	delete(g.incoming, v.ID)
	v.removed = true
	if v.Type == VertexRoot {
		g.roots = without(g.roots, v.ID)
	}
	return p, nil
}
