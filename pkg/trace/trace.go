// Package trace reads the event traces emitted by the storyworld simulation
// and builds the structural plot graph edge generation works on.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-plotgraph/pkg/validation"
)

// ErrInvalidTrace wraps every decoding and validation failure.
var ErrInvalidTrace = errors.New("invalid trace")

// Trace is one completed simulation run, partitioned into sub-traces.
type Trace struct {
	Name           string          `yaml:"name" json:"name"`
	Roots          []Root          `yaml:"roots" json:"roots" validate:"required,min=1,dive"`
	Communications []Communication `yaml:"communications,omitempty" json:"communications,omitempty" validate:"dive"`
}

// Root is the ordered event sequence of one character.
type Root struct {
	Character string  `yaml:"character" json:"character" validate:"required,character"`
	Events    []Event `yaml:"events" json:"events" validate:"dive"`
}

// Event is one record of a sub-trace.
type Event struct {
	Kind     string   `yaml:"kind" json:"kind" validate:"required,vertexkind"`
	Label    string   `yaml:"label" json:"label" validate:"required"`
	Source   string   `yaml:"source,omitempty" json:"source,omitempty"`
	Emotions []string `yaml:"emotions,omitempty" json:"emotions,omitempty" validate:"dive,required"`
	Step     int      `yaml:"step,omitempty" json:"step,omitempty" validate:"gte=0"`
}

// Communication links a speech act to the matching listen event of another
// character.
type Communication struct {
	From EventRef `yaml:"from" json:"from"`
	To   EventRef `yaml:"to" json:"to"`
}

// EventRef addresses an event by character and zero-based position.
type EventRef struct {
	Character string `yaml:"character" json:"character" validate:"required"`
	Index     int    `yaml:"index" json:"index" validate:"gte=0"`
}

// Load reads and validates a trace file. JSON files load through the same
// path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}
	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	return t, nil
}

// Decode parses and validates one trace document.
func Decode(r io.Reader) (*Trace, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Trace
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTrace)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}
	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks struct tags, label sizes, character uniqueness and
// communication references.
func Validate(t *Trace) error {
	if t == nil {
		return fmt.Errorf("%w: nil trace", ErrInvalidTrace)
	}
	if err := validation.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}

	events := make(map[string]int, len(t.Roots))
	for i, r := range t.Roots {
		if _, dup := events[r.Character]; dup {
			return fmt.Errorf("%w: roots[%d]: duplicate character %q", ErrInvalidTrace, i, r.Character)
		}
		events[r.Character] = len(r.Events)
		for j, e := range r.Events {
			if err := validation.ValidateLabel(e.Label); err != nil {
				return fmt.Errorf("%w: roots[%d].events[%d]: %v", ErrInvalidTrace, i, j, err)
			}
			if strings.EqualFold(strings.TrimSpace(e.Kind), "root") {
				return fmt.Errorf("%w: roots[%d].events[%d]: root events are implicit", ErrInvalidTrace, i, j)
			}
		}
	}

	for i, c := range t.Communications {
		for _, ref := range []EventRef{c.From, c.To} {
			n, ok := events[ref.Character]
			if !ok {
				return fmt.Errorf("%w: communications[%d]: unknown character %q", ErrInvalidTrace, i, ref.Character)
			}
			if ref.Index >= n {
				return fmt.Errorf("%w: communications[%d]: %s has no event %d", ErrInvalidTrace, i, ref.Character, ref.Index)
			}
		}
	}
	return nil
}
