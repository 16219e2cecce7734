package units

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// ErrMappingSize is returned when a mapping does not cover every template
// vertex.
var ErrMappingSize = errors.New("units: mapping size does not match template")

// Instance is one embedding of a unit in a plot graph. Instances are not
// modified after detection.
type Instance struct {
	ID   uint64
	Unit *Unit

	// Mapping[i] is the image of template vertex i.
	Mapping []*plotgraph.Vertex
	// Vertices is the image set ordered by vertex ID.
	Vertices []*plotgraph.Vertex
	// Subject is the image of the unit's subject role, nil for primitives.
	Subject *plotgraph.Vertex
}

// NewInstance records an embedding and identifies its subject.
func NewInstance(unit *Unit, mapping []*plotgraph.Vertex) (*Instance, error) {
	if unit == nil || unit.Template == nil {
		return nil, errors.New("units: nil unit")
	}
	if len(mapping) != unit.Template.VertexCount() {
		return nil, fmt.Errorf("%w: %s has %d vertices, got %d",
			ErrMappingSize, unit.Name, unit.Template.VertexCount(), len(mapping))
	}

	inst := &Instance{
		Unit:    unit,
		Mapping: append([]*plotgraph.Vertex(nil), mapping...),
	}
	seen := make(map[uint64]bool, len(mapping))
	for i, v := range mapping {
		if v == nil {
			return nil, fmt.Errorf("units: %s: template vertex %d unmapped", unit.Name, i)
		}
		if !seen[v.ID] {
			seen[v.ID] = true
			inst.Vertices = append(inst.Vertices, v)
		}
	}
	slices.SortFunc(inst.Vertices, func(a, b *plotgraph.Vertex) int {
		return cmp.Compare(a.ID, b.ID)
	})

	inst.identifySubject()
	return inst, nil
}

func (i *Instance) identifySubject() {
	if i.Unit.Subject == NoSubject || i.Unit.Subject >= len(i.Mapping) {
		return
	}
	i.Subject = i.Mapping[i.Unit.Subject]
}

// Character returns the character the instance is about, or "".
func (i *Instance) Character() string {
	if i.Subject == nil {
		return ""
	}
	return i.Subject.Character
}

// Contains reports whether v is part of the image set.
func (i *Instance) Contains(v *plotgraph.Vertex) bool {
	_, found := slices.BinarySearchFunc(i.Vertices, v.ID, func(e *plotgraph.Vertex, id uint64) int {
		return cmp.Compare(e.ID, id)
	})
	return found
}

// Key identifies the image set: vertex IDs joined by commas.
func (i *Instance) Key() string {
	ids := make([]string, len(i.Vertices))
	for n, v := range i.Vertices {
		ids[n] = fmt.Sprint(v.ID)
	}
	return strings.Join(ids, ",")
}

func (i *Instance) String() string {
	if c := i.Character(); c != "" {
		return fmt.Sprintf("%s(%s)[%s]", i.Unit.Name, c, i.Key())
	}
	return fmt.Sprintf("%s[%s]", i.Unit.Name, i.Key())
}
