// Package annotation parses the bracketed key(value) annotations carried by
// plot event labels, e.g. get(drink)[actualization(get(drink)),source(self)].
//
// All functions are pure. Annotation names compare ASCII case-insensitively so
// ACTUALIZATION(x) and actualization(x) denote the same annotation.
package annotation

import "strings"

// Annotation names understood by the edge generation engine.
const (
	KeyActualization  = "actualization"
	KeyCausality      = "causality"
	KeyCause          = "cause"
	KeySource         = "source"
	KeyCrossCharacter = "crosscharacter"
	KeyMotivation     = "motivation"
	KeyTermination    = "termination"
	KeyEmotion        = "emotion"
)

// Polarity signs of belief additions and removals.
const (
	Addition byte = '+'
	Removal  byte = '-'
	Goal     byte = '!'
)

// Item is one key(value) entry of a top-level annotation list.
type Item struct {
	Name  string
	Value string
	Raw   string
}

// group is a top-level [...] annotation list located in a label.
type group struct {
	start, end int // byte offsets of '[' and ']'
	items      []Item
}

// Get returns the value of the first top-level annotation named key, or the
// empty string. Nested annotations inside the value are preserved.
func Get(label, key string) string {
	for _, g := range groups(label) {
		for _, it := range g.items {
			if strings.EqualFold(it.Name, key) {
				return it.Value
			}
		}
	}
	return ""
}

// Has reports whether a top-level annotation named key is present, even with
// an empty value.
func Has(label, key string) bool {
	for _, g := range groups(label) {
		for _, it := range g.items {
			if strings.EqualFold(it.Name, key) {
				return true
			}
		}
	}
	return false
}

// Items returns all top-level annotation items in order of appearance.
func Items(label string) []Item {
	var out []Item
	for _, g := range groups(label) {
		out = append(out, g.items...)
	}
	return out
}

// Remove strips every balanced [...] group from label, at any nesting depth.
func Remove(label string) string {
	if strings.IndexByte(label, '[') < 0 {
		return label
	}
	var b strings.Builder
	b.Grow(len(label))
	depth := 0
	quoted := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c == '"' && depth == 0 {
			quoted = !quoted
			b.WriteByte(c)
			continue
		}
		if quoted {
			if depth == 0 {
				b.WriteByte(c)
			}
			continue
		}
		switch c {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// Without returns label with every top-level annotation named key removed.
// An annotation list left empty disappears entirely.
func Without(label, key string) string {
	gs := groups(label)
	if len(gs) == 0 {
		return label
	}
	var b strings.Builder
	prev := 0
	for _, g := range gs {
		b.WriteString(label[prev:g.start])
		kept := make([]string, 0, len(g.items))
		for _, it := range g.items {
			if !strings.EqualFold(it.Name, key) {
				kept = append(kept, it.Raw)
			}
		}
		if len(kept) > 0 {
			b.WriteByte('[')
			b.WriteString(strings.Join(kept, ","))
			b.WriteByte(']')
		}
		prev = g.end + 1
	}
	b.WriteString(label[prev:])
	return b.String()
}

// Polarity returns the leading '+' or '-' of the un-annotated label, or 0.
func Polarity(label string) byte {
	s := Remove(label)
	if s == "" {
		return 0
	}
	if s[0] == Addition || s[0] == Removal {
		return s[0]
	}
	return 0
}

// Body returns the un-annotated label without its leading polarity sign.
func Body(label string) string {
	s := Remove(label)
	if Polarity(s) != 0 {
		return s[1:]
	}
	return s
}

// SplitList splits a ';'-separated annotation value at nesting depth 0.
// Empty entries are dropped.
func SplitList(value string) []string {
	return splitTop(value, func(c byte) bool { return c == ';' })
}

// Emotions returns the names listed by the emotion annotation of label.
func Emotions(label string) []string {
	v := Get(label, KeyEmotion)
	if v == "" {
		return nil
	}
	return splitTop(v, func(c byte) bool { return c == ';' || c == ',' })
}

func groups(label string) []group {
	var out []group
	parens := 0
	quoted := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c == '"' {
			quoted = !quoted
			continue
		}
		if quoted {
			continue
		}
		switch c {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '[':
			if parens != 0 {
				continue
			}
			end := matching(label, i)
			if end < 0 {
				return out
			}
			out = append(out, group{start: i, end: end, items: parseItems(label[i+1 : end])})
			i = end
		}
	}
	return out
}

// matching returns the offset of the ']' closing the '[' at open, or -1.
func matching(s string, open int) int {
	depth := 0
	quoted := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			quoted = !quoted
			continue
		}
		if quoted {
			continue
		}
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseItems(content string) []Item {
	parts := splitTop(content, func(c byte) bool { return c == ',' })
	items := make([]Item, 0, len(parts))
	for _, p := range parts {
		it := Item{Raw: p, Name: p}
		if open := strings.IndexByte(p, '('); open >= 0 {
			it.Name = strings.TrimSpace(p[:open])
			closeIdx := strings.LastIndexByte(p, ')')
			if closeIdx > open {
				it.Value = p[open+1 : closeIdx]
			} else {
				it.Value = p[open+1:]
			}
		}
		items = append(items, it)
	}
	return items
}

// splitTop splits s on separator bytes that sit outside of any (), [] or
// quoted section.
func splitTop(s string, sep func(byte) bool) []string {
	var out []string
	depth := 0
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			quoted = !quoted
			continue
		}
		if quoted {
			continue
		}
		switch {
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && sep(c):
			if part := strings.TrimSpace(s[start:i]); part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	if part := strings.TrimSpace(s[start:]); part != "" {
		out = append(out, part)
	}
	return out
}
