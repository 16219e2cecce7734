package plotgraph

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-plotgraph/pkg/annotation"
)

// VertexType is the kind of trace event a vertex stands for.
type VertexType uint8

const (
	VertexRoot VertexType = iota
	VertexAction
	VertexSpeech
	VertexPercept
	VertexIntention
	VertexIntentionDrop
	VertexEmotion
	VertexListen
	VertexEvent
	VertexAxisLabel
)

var vertexTypeNames = [...]string{
	VertexRoot:          "root",
	VertexAction:        "action",
	VertexSpeech:        "speech",
	VertexPercept:       "percept",
	VertexIntention:     "intention",
	VertexIntentionDrop: "drop_intention",
	VertexEmotion:       "emotion",
	VertexListen:        "listen",
	VertexEvent:         "event",
	VertexAxisLabel:     "axis_label",
}

// String returns the trace kind name of the vertex type
func (t VertexType) String() string {
	if int(t) < len(vertexTypeNames) {
		return vertexTypeNames[t]
	}
	return "unknown"
}

// ParseVertexType converts a trace kind name to a VertexType
func ParseVertexType(s string) (VertexType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range vertexTypeNames {
		if name == s {
			return VertexType(i), nil
		}
	}
	switch s {
	case "speech_act", "speechact":
		return VertexSpeech, nil
	case "intention_drop":
		return VertexIntentionDrop, nil
	}
	return 0, fmt.Errorf("unknown vertex kind %q", s)
}

// VertexKindNames lists the accepted trace kind names.
func VertexKindNames() []string {
	out := make([]string, len(vertexTypeNames))
	copy(out, vertexTypeNames[:])
	return out
}

// EdgeType labels a directed edge.
type EdgeType uint8

const (
	// Structural edges, created while the trace is loaded
	EdgeTemporal EdgeType = iota
	EdgeRoot
	EdgeCommunication

	// Semantic edges, created by edge generation
	EdgeCausality
	EdgeActualization
	EdgeTermination
	EdgeEquivalence
	EdgeMotivation
	EdgeCrossCharacter
)

var edgeTypeNames = [...]string{
	EdgeTemporal:       "TEMPORAL",
	EdgeRoot:           "ROOT",
	EdgeCommunication:  "COMMUNICATION",
	EdgeCausality:      "CAUSALITY",
	EdgeActualization:  "ACTUALIZATION",
	EdgeTermination:    "TERMINATION",
	EdgeEquivalence:    "EQUIVALENCE",
	EdgeMotivation:     "MOTIVATION",
	EdgeCrossCharacter: "CROSSCHARACTER",
}

// String returns a readable name
func (t EdgeType) String() string {
	if int(t) < len(edgeTypeNames) {
		return edgeTypeNames[t]
	}
	return "UNKNOWN"
}

// IsSemantic reports whether edges of this type are produced by edge generation.
func (t EdgeType) IsSemantic() bool {
	return t >= EdgeCausality && t <= EdgeCrossCharacter
}

// chains reports whether the type links consecutive events of a sub-trace.
func (t EdgeType) chains() bool {
	return t == EdgeTemporal || t == EdgeRoot
}

// SemanticEdgeTypes lists every semantic edge type in declaration order.
func SemanticEdgeTypes() []EdgeType {
	return []EdgeType{EdgeCausality, EdgeActualization, EdgeTermination, EdgeEquivalence, EdgeMotivation, EdgeCrossCharacter}
}

// Vertex represents one trace event. Vertices are compared by identity, never
// by label.
type Vertex struct {
	ID        uint64
	Type      VertexType
	Label     string
	Character string // owning root of the sub-trace
	Source    string // reported source for percepts; empty means "read it from the label"
	Emotions  []string
	Step      int

	Polyvalent bool
	MinWidth   int

	removed bool
}

// WithoutAnnotation returns the label with all annotations stripped.
func (v *Vertex) WithoutAnnotation() string {
	return annotation.Remove(v.Label)
}

// Intention returns the derived intention id: the un-annotated goal of an
// intention vertex, or the goal an action/speech act actualizes.
func (v *Vertex) Intention() string {
	switch v.Type {
	case VertexIntention:
		return strings.TrimPrefix(annotation.Remove(v.Label), "!")
	case VertexAction, VertexSpeech:
		return annotation.Remove(annotation.Get(v.Label, annotation.KeyActualization))
	}
	return ""
}

// Cause returns the raw cause annotation of the label.
func (v *Vertex) Cause() string {
	if c := annotation.Get(v.Label, annotation.KeyCausality); c != "" {
		return c
	}
	return annotation.Get(v.Label, annotation.KeyCause)
}

// SourceName returns the percept source: the explicit Source field, or the
// source annotation of the label.
func (v *Vertex) SourceName() string {
	if v.Source != "" {
		return v.Source
	}
	return annotation.Get(v.Label, annotation.KeySource)
}

// HasEmotion reports whether the event carries at least one emotion.
func (v *Vertex) HasEmotion() bool {
	return len(v.Emotions) > 0
}

// IsPositive reports whether the event carries a positive emotion.
func (v *Vertex) IsPositive() bool {
	for _, e := range v.Emotions {
		if EmotionPolarity(e) > 0 {
			return true
		}
	}
	return false
}

// IsNegative reports whether the event carries a negative emotion.
func (v *Vertex) IsNegative() bool {
	for _, e := range v.Emotions {
		if EmotionPolarity(e) < 0 {
			return true
		}
	}
	return false
}

// Removed reports whether the vertex was deleted from its graph.
func (v *Vertex) Removed() bool {
	return v.removed
}

func (v *Vertex) String() string {
	if v.Polyvalent {
		return v.Label + " *"
	}
	return v.Label
}

// Edge is a directed, typed relationship between two vertices.
type Edge struct {
	ID     uint64
	Type   EdgeType
	FromID uint64
	ToID   uint64
}

func (e *Edge) String() string {
	return fmt.Sprintf("%d-%s->%d", e.FromID, e.Type, e.ToID)
}
