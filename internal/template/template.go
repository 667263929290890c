// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template holds the per-genre extraction templates. A template is
// an ordered list of fields; each field tries its regex rules in order
// against the lower-cased paper text and keeps the first hit, truncated to
// the field's cap, or falls back to a "not stated" sentinel.
//
// Rule patterns follow one shape: a lead-in phrase, a lazy capture group and
// a non-capturing terminator group that ends the span.
package template

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Rule is one extraction attempt for a field.
type Rule struct {
	Pattern *regexp.Regexp

	// Group is the capture group kept from a match; 0 keeps the whole match.
	Group int

	// MaxLen caps the kept span in characters; 0 defers to the field cap.
	MaxLen int
}

// Field is one named slot of a template.
type Field struct {
	Name  string
	Label string

	// MaxLen is the default cap, in characters, for spans kept by Rules.
	MaxLen int

	Rules []Rule

	// Lead, when positive, replaces Default with the first Lead characters
	// of the raw text followed by "...".
	Lead int

	Default string
}

// Template is the ordered field list extracted for one paper type.
type Template struct {
	Type   types.PaperType
	Fields []Field
}

// rx compiles a rule pattern with case-insensitive, dot-matches-newline flags.
func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)` + pattern)
}

// rule builds a rule keeping capture group 1 under the field cap.
func rule(pattern string) Rule {
	return Rule{Pattern: rx(pattern), Group: 1}
}

// cappedRule builds a rule keeping capture group 1 under its own cap.
func cappedRule(pattern string, maxLen int) Rule {
	return Rule{Pattern: rx(pattern), Group: 1, MaxLen: maxLen}
}

// Extract fills every field of the template from text. The result always
// has exactly one entry per field.
func (t *Template) Extract(text string) map[string]string {
	lower := strings.ToLower(text)
	out := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		out[f.Name] = f.extract(text, lower)
	}
	return out
}

func (f Field) extract(raw, lower string) string {
	for _, r := range f.Rules {
		m := r.Pattern.FindStringSubmatch(lower)
		if m == nil || r.Group >= len(m) {
			continue
		}
		limit := r.MaxLen
		if limit == 0 {
			limit = f.MaxLen
		}
		return truncate(strings.TrimSpace(m[r.Group]), limit)
	}
	if f.Lead > 0 {
		return strings.TrimSpace(truncate(raw, f.Lead)) + "..."
	}
	return f.Default
}

// Modules returns the field name to label map of the template.
func (t *Template) Modules() map[string]string {
	out := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		out[f.Name] = f.Label
	}
	return out
}

// FieldNames returns the field names in extraction order.
func (t *Template) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
