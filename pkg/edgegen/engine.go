// Package edgegen turns a structural event trace into an enriched plot graph.
//
// A single forward pass walks every sub-trace in order. Each event is matched
// against the lookback list, the events already seen in the current sub-trace,
// most recent first, and kind-specific rules add CAUSALITY, ACTUALIZATION,
// TERMINATION, EQUIVALENCE and MOTIVATION edges. A post-pass then links events
// of different characters that share a cross-character id.
package edgegen

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/metrics"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
)

// ErrNilGraph is returned when Apply is called without a graph.
var ErrNilGraph = errors.New("edgegen: nil graph")

// Options configures an Engine
type Options struct {
	// KeepUnmatchedMotivation leaves the motivation annotation on an
	// intention label when none of its motivating expressions matched.
	// By default the annotation is always stripped.
	KeepUnmatchedMotivation bool

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Engine applies the edge generation rules. An Engine holds no per-graph
// state and may be reused; concurrent Apply calls on distinct graphs are safe.
type Engine struct {
	opts   Options
	logger logging.Logger
}

// New creates an Engine
func New(opts Options) *Engine {
	return &Engine{
		opts:   opts,
		logger: logging.OrDefault(opts.Logger).With(logging.Component("edgegen")),
	}
}

// pass is the engine-private state of one Apply call.
type pass struct {
	*Engine
	g *plotgraph.Graph

	lookback     []*plotgraph.Vertex // oldest first; scanned from the end
	root         *plotgraph.Vertex
	correlations *orderedmap.OrderedMap[string, []*plotgraph.Vertex]
	owners       map[uint64]*plotgraph.Vertex // root of each correlated vertex

	report *Report
	err    error
}

// Apply rewrites g in place: semantic edges are added, degenerate or
// irrelevant vertices removed. Malformed events are reported, never fatal;
// the returned error is reserved for graph invariant violations.
func (e *Engine) Apply(g *plotgraph.Graph) (*Report, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	p := &pass{
		Engine:       e,
		g:            g,
		correlations: orderedmap.New[string, []*plotgraph.Vertex](),
		owners:       make(map[uint64]*plotgraph.Vertex),
		report:       newReport(),
	}

	for _, v := range g.TraceOrder() {
		if v.Removed() {
			continue
		}
		p.visit(v)
		if p.err != nil {
			return p.report, p.err
		}
	}

	p.correlate()
	if p.err != nil {
		return p.report, p.err
	}

	e.logger.Debug("edge generation finished",
		logging.Trace(g.Name),
		logging.Int("edges", p.report.TotalEdges()),
		logging.Int("removed", len(p.report.Removed)),
		logging.Int("inconsistencies", len(p.report.Inconsistencies)))
	return p.report, nil
}

func (p *pass) visit(v *plotgraph.Vertex) {
	switch v.Type {
	case plotgraph.VertexRoot:
		p.lookback = p.lookback[:0]
		p.root = v
		p.logger.Debug("entering sub-trace", logging.Character(v.Character))
	case plotgraph.VertexAction:
		p.visitAction(v)
	case plotgraph.VertexSpeech:
		p.visitSpeech(v)
	case plotgraph.VertexPercept:
		p.visitPercept(v)
	case plotgraph.VertexIntention, plotgraph.VertexIntentionDrop:
		p.visitIntention(v)
	case plotgraph.VertexEmotion, plotgraph.VertexListen, plotgraph.VertexEvent:
		p.inconsistent(UnexpectedVertex, v, fmt.Sprintf("%s vertex should have been removed before edge generation", v.Type))
	case plotgraph.VertexAxisLabel:
	}
}

// find returns the most recent lookback entry satisfying match.
func (p *pass) find(match func(*plotgraph.Vertex) bool) *plotgraph.Vertex {
	for i := len(p.lookback) - 1; i >= 0; i-- {
		if c := p.lookback[i]; match(c) {
			return c
		}
	}
	return nil
}

// each calls fn for lookback entries, most recent first, until fn returns false.
func (p *pass) each(fn func(*plotgraph.Vertex) bool) {
	for i := len(p.lookback) - 1; i >= 0; i-- {
		if !fn(p.lookback[i]) {
			return
		}
	}
}

func (p *pass) push(v *plotgraph.Vertex) {
	p.lookback = append(p.lookback, v)
}

func (p *pass) link(t plotgraph.EdgeType, from, to *plotgraph.Vertex) {
	if p.err != nil {
		return
	}
	if _, err := p.g.AddEdge(t, from, to); err != nil {
		p.err = fmt.Errorf("link %s: %w", t, err)
		return
	}
	p.report.Edges[t]++
	p.opts.Metrics.RecordEdge(t.String())
	p.logger.Debug("edge created",
		logging.EdgeType(t.String()),
		logging.Uint64("from", from.ID),
		logging.Uint64("to", to.ID))
}

func (p *pass) remove(v *plotgraph.Vertex, reason string) {
	if p.err != nil {
		return
	}
	label := v.Label
	patch, err := p.g.RemoveVertexAndPatch(v)
	if err != nil {
		p.err = fmt.Errorf("remove vertex: %w", err)
		return
	}
	p.report.Removed = append(p.report.Removed, Removal{VertexID: v.ID, Label: label, Reason: reason, Patch: patch})
	p.opts.Metrics.RecordVertexRemoved(reason)
	p.logger.Debug("vertex removed", logging.VertexID(v.ID), logging.Label(label), logging.String("reason", reason))
}

func (p *pass) inconsistent(kind InconsistencyKind, v *plotgraph.Vertex, msg string) {
	p.report.Inconsistencies = append(p.report.Inconsistencies, Inconsistency{
		Kind:     kind,
		VertexID: v.ID,
		Label:    v.Label,
		Message:  msg,
	})
	p.opts.Metrics.RecordInconsistency(string(kind))

	fields := []logging.Field{
		logging.String("kind", string(kind)),
		logging.VertexID(v.ID),
		logging.Label(v.Label),
		logging.Character(v.Character),
	}
	if kind == MissingActualization {
		p.logger.Error(msg, fields...)
		return
	}
	p.logger.Warn(msg, fields...)
}

// recordCrossCharacter files v under its cross-character id, if any.
func (p *pass) recordCrossCharacter(v *plotgraph.Vertex) {
	id := annotation.Get(v.Label, annotation.KeyCrossCharacter)
	if id == "" {
		return
	}
	vs, _ := p.correlations.Get(id)
	p.correlations.Set(id, append(vs, v))
	p.owners[v.ID] = p.root
}

// intentionID is the derived intention id of v when v is an intention.
func intentionID(v *plotgraph.Vertex) string {
	if v.Type != plotgraph.VertexIntention {
		return ""
	}
	return v.Intention()
}

// tail drops the first byte of s.
func tail(s string) string {
	if s == "" {
		return ""
	}
	return s[1:]
}
