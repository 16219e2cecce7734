package units

import (
	"strings"
	"sync"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

const (
	mot   = plotgraph.EdgeMotivation
	act   = plotgraph.EdgeActualization
	term  = plotgraph.EdgeTermination
	equiv = plotgraph.EdgeEquivalence
	cross = plotgraph.EdgeCrossCharacter
)

var (
	catalogOnce sync.Once
	primitives  []*Unit
	composites  []*Unit
	byName      map[string]*Unit
)

func rel(from int, typ plotgraph.EdgeType, to int) Relationship {
	return Relationship{From: from, To: to, Type: typ}
}

func roles(rs ...Role) []Role { return rs }

func primitive(name string, from Role, typ plotgraph.EdgeType, to Role) *Unit {
	return &Unit{
		Name:      name,
		Primitive: true,
		Template:  NewTemplate(roles(from, to), rel(0, typ, 1)),
		Subject:   NoSubject,
	}
}

func composite(name string, subject int, rs []Role, rels ...Relationship) *Unit {
	return &Unit{Name: name, Template: NewTemplate(rs, rels...), Subject: subject}
}

func loadCatalog() {
	catalogOnce.Do(func() {
		// Index order is stable and relied upon by callers.
		primitives = []*Unit{
			primitive("Motivation", Intention, mot, Intention),
			primitive("Change of Mind", Intention, term, Intention),
			primitive("Perseverance", Intention, equiv, Intention),
			primitive("Enablement", Positive, mot, Intention),
			primitive("Problem", Negative, mot, Intention),
			primitive("Success", Intention, act, Positive),
			primitive("Failure", Intention, act, Negative),
			primitive("Loss", Negative, term, Positive),
			primitive("Resolution", Positive, term, Negative),
			primitive("Negative Tradeoff", Negative, term, Negative),
			primitive("Positive Tradeoff", Positive, term, Positive),
			primitive("Complex Negative Event", Negative, equiv, Negative),
			primitive("Hidden Blessing", Positive, equiv, Negative),
			primitive("Complex Positive Event", Positive, equiv, Positive),
		}

		composites = []*Unit{
			composite("Fleeting Success", 0,
				roles(Intention, Positive, Negative),
				rel(0, act, 1), rel(2, term, 1)),
			composite("Starting Over", 0,
				roles(Intention, Positive, Negative, Intention),
				rel(0, act, 1), rel(2, term, 1), rel(3, equiv, 0)),
			composite("Killing Two Birds", 0,
				roles(Intention, Intention, Positive),
				rel(0, act, 2), rel(1, act, 2)),
			composite("Nested Goal", 0,
				roles(Intention, Intention, Wildcard),
				rel(0, mot, 1), rel(1, act, 2)),
			composite("Intentional Problem Resolution", 1,
				roles(Negative, Intention, Positive),
				rel(0, mot, 1), rel(1, act, 2), rel(2, term, 0)),
			composite("Fortuitous Problem Resolution", 0,
				roles(Negative, Intention, Positive),
				rel(0, mot, 1), rel(2, term, 0)),
			composite("Giving Up", 0,
				roles(Intention, Negative, Intention),
				rel(0, act, 1), rel(2, term, 0)),
			composite("Request", 0,
				roles(Intention, Speech, Wildcard, Intention),
				rel(0, act, 1), rel(1, cross, 2), rel(2, mot, 3)),
			composite("Honored Request", 0,
				roles(Intention, Speech, Wildcard, Intention, Wildcard),
				rel(0, act, 1), rel(1, cross, 2), rel(2, mot, 3), rel(3, act, 4)),
			composite("Shared Success", 0,
				roles(Intention, Positive, Positive),
				rel(0, act, 1), rel(1, cross, 2)),
			composite("Collateral Damage", 2,
				roles(Intention, Wildcard, Negative),
				rel(0, act, 1), rel(1, cross, 2)),
			composite("Problem Resolution by Persistence", 1,
				roles(Negative, Intention, Intention, Positive),
				rel(0, mot, 1), rel(2, equiv, 1), rel(2, act, 3)),
		}

		byName = make(map[string]*Unit, len(primitives)+len(composites))
		for _, u := range primitives {
			byName[strings.ToLower(u.Name)] = u
		}
		for _, u := range composites {
			byName[strings.ToLower(u.Name)] = u
		}
	})
}

// Primitives returns the primitive units in catalog order.
func Primitives() []*Unit {
	loadCatalog()
	return append([]*Unit(nil), primitives...)
}

// All returns the composite units searched for polyvalence, in catalog order.
func All() []*Unit {
	loadCatalog()
	return append([]*Unit(nil), composites...)
}

// ByName looks a unit up by name, case-insensitively.
func ByName(name string) (*Unit, bool) {
	loadCatalog()
	u, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return u, ok
}
