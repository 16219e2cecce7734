// Package units holds the catalog of functional units: small directed
// template graphs of affect states whose embeddings in a plot graph reveal
// plot structure such as problems, resolutions and requests.
package units

import (
	"fmt"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// Role is the compatibility predicate of a template vertex.
type Role int

const (
	// Intention matches intention vertices (Lehnert's mental state M).
	Intention Role = iota
	// Positive matches any event carrying a positive emotion.
	Positive
	// Negative matches any event carrying a negative emotion.
	Negative
	// Speech matches speech acts.
	Speech
	// Wildcard matches any plot event.
	Wildcard
)

var roleNames = [...]string{"M", "+", "-", "S", "*"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "?"
}

// Matches reports whether v may play this role.
func (r Role) Matches(v *plotgraph.Vertex) bool {
	if v == nil || v.Removed() {
		return false
	}
	switch v.Type {
	case plotgraph.VertexRoot, plotgraph.VertexAxisLabel:
		return false
	}
	switch r {
	case Intention:
		return v.Type == plotgraph.VertexIntention
	case Positive:
		return v.IsPositive()
	case Negative:
		return v.IsNegative()
	case Speech:
		return v.Type == plotgraph.VertexSpeech
	case Wildcard:
		return true
	}
	return false
}

// Relationship is a typed, directed template edge between two template
// vertex indices.
type Relationship struct {
	From int
	To   int
	Type plotgraph.EdgeType
}

func (r Relationship) String() string {
	return fmt.Sprintf("%d-%s->%d", r.From, r.Type, r.To)
}

// Template is an immutable pattern graph. Vertices are addressed by index.
type Template struct {
	roles []Role
	rels  []Relationship
}

// NewTemplate creates a template. It panics on relationships that reference
// unknown vertices or loop on one vertex; templates are static data.
func NewTemplate(roles []Role, rels ...Relationship) *Template {
	for _, r := range rels {
		if r.From < 0 || r.From >= len(roles) || r.To < 0 || r.To >= len(roles) {
			panic(fmt.Sprintf("units: relationship %s out of range", r))
		}
		if r.From == r.To {
			panic(fmt.Sprintf("units: relationship %s is a loop", r))
		}
	}
	return &Template{
		roles: append([]Role(nil), roles...),
		rels:  append([]Relationship(nil), rels...),
	}
}

// VertexCount returns the number of template vertices.
func (t *Template) VertexCount() int { return len(t.roles) }

// EdgeCount returns the number of template relationships.
func (t *Template) EdgeCount() int { return len(t.rels) }

// Role returns the role of template vertex i.
func (t *Template) Role(i int) Role { return t.roles[i] }

// Roles returns a copy of the vertex roles.
func (t *Template) Roles() []Role { return append([]Role(nil), t.roles...) }

// Relationships returns a copy of the template edges.
func (t *Template) Relationships() []Relationship {
	return append([]Relationship(nil), t.rels...)
}

// NoSubject marks units without a distinguished subject role.
const NoSubject = -1

// Unit is a named functional unit.
type Unit struct {
	Name      string
	Primitive bool
	Template  *Template
	// Subject is the template vertex whose image is the instance's subject,
	// or NoSubject.
	Subject int
}

func (u *Unit) String() string {
	return u.Name
}
