package edgegen

import (
	"fmt"

	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// InconsistencyKind classifies a structural problem found in the input trace.
type InconsistencyKind string

const (
	MissingActualization   InconsistencyKind = "missing_actualization"
	UnmatchedActualization InconsistencyKind = "unmatched_actualization"
	UnmatchedCause         InconsistencyKind = "unmatched_cause"
	UnexpectedVertex       InconsistencyKind = "unexpected_vertex"
	DegenerateDrop         InconsistencyKind = "degenerate_drop"
)

// Reasons a vertex is deleted during edge generation.
const (
	ReasonDegenerateDrop = "degenerate_drop"
	ReasonIrrelevantDrop = "irrelevant_drop"
	ReasonBookkeeping    = "bookkeeping_drop"
	ReasonResolvedDrop   = "resolved_drop"
)

// Inconsistency is one logged, non-fatal problem.
type Inconsistency struct {
	Kind     InconsistencyKind
	VertexID uint64
	Label    string
	Message  string
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s: %s (vertex %d %q)", i.Kind, i.Message, i.VertexID, i.Label)
}

// Removal records a vertex deleted by patch-on-removal.
type Removal struct {
	VertexID uint64
	Label    string
	Reason   string
	Patch    *plotgraph.Patch
}

// Report summarises one engine run.
type Report struct {
	Edges           map[plotgraph.EdgeType]int
	Removed         []Removal
	Repurposed      []uint64 // drop vertices turned into stand-in causes
	Inconsistencies []Inconsistency
	CorrelatedPairs int
}

func newReport() *Report {
	return &Report{Edges: make(map[plotgraph.EdgeType]int)}
}

// EdgeCount returns how many edges of type t were created.
func (r *Report) EdgeCount(t plotgraph.EdgeType) int {
	return r.Edges[t]
}

// TotalEdges returns the number of semantic edges created.
func (r *Report) TotalEdges() int {
	n := 0
	for _, c := range r.Edges {
		n += c
	}
	return n
}

// Count returns the number of inconsistencies of one kind.
func (r *Report) Count(kind InconsistencyKind) int {
	n := 0
	for _, i := range r.Inconsistencies {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

// RemovedFor returns the removals recorded with the given reason.
func (r *Report) RemovedFor(reason string) []Removal {
	var out []Removal
	for _, rm := range r.Removed {
		if rm.Reason == reason {
			out = append(out, rm)
		}
	}
	return out
}
