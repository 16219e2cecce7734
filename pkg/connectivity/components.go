package connectivity

import "container/list"

// Component is a maximal set of transitively connected instances.
type Component struct {
	ID        int
	Instances []uint64
	Size      int
}

// ComponentResult partitions the instances of a graph.
type ComponentResult struct {
	Components        []*Component
	InstanceComponent map[uint64]int // instance ID -> component ID
}

// Largest returns the biggest component, the earliest on ties, or nil.
func (r *ComponentResult) Largest() *Component {
	var best *Component
	for _, c := range r.Components {
		if best == nil || c.Size > best.Size {
			best = c
		}
	}
	return best
}

// Components finds the connected components by breadth-first search, in
// order of their lowest instance ID.
func (g *Graph) Components() *ComponentResult {
	visited := make(map[uint64]bool, len(g.instances))
	result := &ComponentResult{
		Components:        make([]*Component, 0),
		InstanceComponent: make(map[uint64]int, len(g.instances)),
	}

	for i := range g.instances {
		start := uint64(i + 1)
		if visited[start] {
			continue
		}

		component := &Component{ID: len(result.Components)}
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id, ok := queue.Remove(queue.Front()).(uint64)
			if !ok {
				continue
			}
			component.Instances = append(component.Instances, id)
			result.InstanceComponent[id] = component.ID

			for _, n := range g.adj[id] {
				if !visited[n] {
					visited[n] = true
					queue.PushBack(n)
				}
			}
		}

		component.Size = len(component.Instances)
		result.Components = append(result.Components, component)
	}
	return result
}
