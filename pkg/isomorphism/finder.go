package isomorphism

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
	"github.com/dd0wney/cluso-plotgraph/pkg/units"
)

// Match is one embedding of a template.
type Match struct {
	// Mapping[i] is the image of template vertex i.
	Mapping []*plotgraph.Vertex
	// Missed is the number of template edges without a counterpart.
	Missed int

	ids []uint64 // sorted image IDs
}

// IDs returns the sorted image vertex IDs.
func (m Match) IDs() []uint64 {
	return append([]uint64(nil), m.ids...)
}

// Key identifies the image set.
func (m Match) Key() string {
	return key(m.ids)
}

func key(ids []uint64) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprint(&b, id)
	}
	return b.String()
}

// Finder searches templates in indexed plot graphs. The zero value is ready
// to use.
type Finder struct {
	// Limit stops a search after this many distinct matches; 0 means no
	// limit.
	Limit int
	// RequireAnchored rejects mappings in which a template vertex touches no
	// matched edge, and caps the tolerance at one less than the template
	// edge count.
	RequireAnchored bool
}

// NewFinder creates a Finder without a match limit.
func NewFinder() *Finder {
	return &Finder{}
}

// EffectiveTolerance returns the miss budget a search of tpl runs with.
// Negative tolerances count as 0. Anchored searches must match at least one
// template edge.
func EffectiveTolerance(tpl *units.Template, tolerance int, anchored bool) int {
	if anchored {
		tolerance = min(tolerance, tpl.EdgeCount()-1)
	}
	return max(0, tolerance)
}

// Find returns every injective, role-compatible mapping of tpl into target
// that misses at most tolerance template edges; a template edge is matched
// when the images of its endpoints are joined by an edge of the same type
// and direction. Matches are deduplicated by image set, keeping the one with
// the fewest misses, and ordered by their sorted image IDs.
func (f *Finder) Find(tpl *units.Template, target *Target, tolerance int) []Match {
	if tpl == nil || target == nil || tpl.EdgeCount() == 0 || tpl.VertexCount() > target.Len() {
		return nil
	}

	anchored := f != nil && f.RequireAnchored
	s := newSearch(tpl, target, EffectiveTolerance(tpl, tolerance, anchored))
	if s == nil {
		return nil
	}
	s.anchored = anchored
	if f != nil {
		s.limit = f.Limit
	}
	s.step(0)

	out := make([]Match, 0, len(s.results))
	for _, m := range s.results {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Match) int {
		return slices.Compare(a.ids, b.ids)
	})
	return out
}

type search struct {
	target   *Target
	rels     []units.Relationship
	tol      int
	limit    int
	anchored bool

	domains []*bitset.BitSet
	incid   [][]int // relationship indices per template vertex
	order   []int

	assign []int // target index per template vertex, -1 when unassigned
	used   *bitset.BitSet
	misses int
	// Per template vertex, for anchored searches: matched incident
	// relationships and those with an unassigned endpoint.
	matched []int
	pending []int

	results map[string]Match
}

func newSearch(tpl *units.Template, target *Target, tol int) *search {
	n := tpl.VertexCount()
	s := &search{
		target:  target,
		rels:    tpl.Relationships(),
		tol:     tol,
		domains: make([]*bitset.BitSet, n),
		incid:   make([][]int, n),
		assign:  make([]int, n),
		used:    bitset.New(uint(target.Len())),
		matched: make([]int, n),
		pending: make([]int, n),
		results: make(map[string]Match),
	}

	for k := range n {
		role := tpl.Role(k)
		d := bitset.New(uint(target.Len()))
		for i, v := range target.vertices {
			if role.Matches(v) {
				d.Set(uint(i))
			}
		}
		if d.None() {
			return nil
		}
		s.domains[k] = d
		s.assign[k] = -1
	}
	for ri, r := range s.rels {
		s.incid[r.From] = append(s.incid[r.From], ri)
		s.incid[r.To] = append(s.incid[r.To], ri)
	}
	for k := range n {
		s.pending[k] = len(s.incid[k])
	}
	s.order = s.plan()
	return s
}

// plan orders template vertices: vertices adjacent to already ordered ones
// first, then smaller domains, then higher degree.
func (s *search) plan() []int {
	n := len(s.domains)
	placed := make([]bool, n)
	order := make([]int, 0, n)

	linked := func(k int) bool {
		for _, ri := range s.incid[k] {
			if placed[s.other(ri, k)] {
				return true
			}
		}
		return false
	}
	better := func(k, best int) bool {
		if lk, lb := linked(k), linked(best); lk != lb {
			return lk
		}
		if dk, db := s.domains[k].Count(), s.domains[best].Count(); dk != db {
			return dk < db
		}
		return len(s.incid[k]) > len(s.incid[best])
	}

	for len(order) < n {
		best := -1
		for k := range n {
			if placed[k] {
				continue
			}
			if best < 0 || better(k, best) {
				best = k
			}
		}
		placed[best] = true
		order = append(order, best)
	}
	return order
}

func (s *search) other(ri, k int) int {
	if r := s.rels[ri]; r.From == k {
		return r.To
	}
	return s.rels[ri].From
}

func (s *search) done() bool {
	return s.limit > 0 && len(s.results) >= s.limit
}

func (s *search) step(depth int) {
	if depth == len(s.order) {
		s.emit()
		return
	}
	k := s.order[depth]

	cands := s.domains[k].Difference(s.used)
	if s.misses == s.tol {
		// No misses left: every relationship to an assigned vertex must hold.
		for _, ri := range s.incid[k] {
			r := s.rels[ri]
			if r.From == k && s.assign[r.To] >= 0 {
				cands.InPlaceIntersection(s.target.predecessors(r.Type, uint(s.assign[r.To])))
			} else if r.To == k && s.assign[r.From] >= 0 {
				cands.InPlaceIntersection(s.target.successors(r.Type, uint(s.assign[r.From])))
			}
		}
	}

	for c, ok := cands.NextSet(0); ok; c, ok = cands.NextSet(c + 1) {
		if s.place(k, c) {
			s.step(depth + 1)
		}
		s.unplace(k, c)
		if s.done() {
			return
		}
	}
}

// place assigns target vertex c to template vertex k and reports whether
// the partial mapping is still viable.
func (s *search) place(k int, c uint) bool {
	s.assign[k] = int(c)
	s.used.Set(c)

	viable := true
	for _, ri := range s.incid[k] {
		o := s.other(ri, k)
		if s.assign[o] < 0 {
			continue
		}
		s.pending[k]--
		s.pending[o]--
		r := s.rels[ri]
		if s.target.adjacent(r.Type, uint(s.assign[r.From]), uint(s.assign[r.To])) {
			s.matched[k]++
			s.matched[o]++
		} else {
			s.misses++
		}
		if s.anchored && s.pending[o] == 0 && s.matched[o] == 0 {
			viable = false
		}
	}
	if s.anchored && s.pending[k] == 0 && s.matched[k] == 0 {
		viable = false
	}
	return viable && s.misses <= s.tol
}

func (s *search) unplace(k int, c uint) {
	for _, ri := range s.incid[k] {
		o := s.other(ri, k)
		if s.assign[o] < 0 {
			continue
		}
		s.pending[k]++
		s.pending[o]++
		r := s.rels[ri]
		if s.target.adjacent(r.Type, uint(s.assign[r.From]), uint(s.assign[r.To])) {
			s.matched[k]--
			s.matched[o]--
		} else {
			s.misses--
		}
	}
	s.used.Clear(c)
	s.assign[k] = -1
}

func (s *search) emit() {
	m := Match{
		Mapping: make([]*plotgraph.Vertex, len(s.assign)),
		Missed:  s.misses,
		ids:     make([]uint64, len(s.assign)),
	}
	for k, i := range s.assign {
		v := s.target.Vertex(uint(i))
		m.Mapping[k] = v
		m.ids[k] = v.ID
	}
	slices.SortFunc(m.ids, cmp.Compare[uint64])

	id := key(m.ids)
	if prev, ok := s.results[id]; !ok || m.Missed < prev.Missed {
		s.results[id] = m
	}
}
