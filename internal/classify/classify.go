// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a paper to one of the fixed paper types by
// scoring its text against weighted keyword categories.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// defaultConfidence is reported when no keyword of any paper type matches.
const defaultConfidence = 0.5

// Category is a named cluster of keyword matchers sharing one weight.
type Category struct {
	Name     string
	Weight   float64
	Matchers []*regexp.Regexp
}

// KeywordSet is the ordered list of categories scored for one paper type.
type KeywordSet []Category

// newCategory compiles phrases into case-insensitive substring matchers.
func newCategory(name string, weight float64, phrases ...string) Category {
	matchers := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		matchers = append(matchers, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)))
	}
	return Category{Name: name, Weight: weight, Matchers: matchers}
}

// Score returns the weighted keyword score of text against set: for each
// category, the number of matchers found anywhere in the lower-cased text
// times the category weight, summed over categories. Matching is substring
// search with no word boundaries.
func Score(text string, set KeywordSet) float64 {
	lower := strings.ToLower(text)
	var score float64
	for _, c := range set {
		matches := 0
		for _, m := range c.Matchers {
			if m.MatchString(lower) {
				matches++
			}
		}
		score += float64(matches) * c.Weight
	}
	return score
}

// Classifier scores text against the keyword tables of every paper type.
// It holds only read-only tables and is safe for concurrent use.
type Classifier struct {
	tables []table
}

type table struct {
	paperType types.PaperType
	keywords  KeywordSet
}

// New returns a Classifier over the built-in keyword tables.
func New() *Classifier {
	return &Classifier{tables: keywordTables}
}

// Classify returns the best-scoring paper type and its confidence. When no
// keyword matches at all it defaults to basic research at 0.5.
func (c *Classifier) Classify(text string) (types.PaperType, float64) {
	d := c.Details(text)
	return d.Type, d.Confidence
}

// Details returns the full classification, including every paper type's
// raw score. Ties go to the paper type that comes first in canonical order.
func (c *Classifier) Details(text string) types.Classification {
	scores := make(map[types.PaperType]float64, len(c.tables))
	var total float64
	for _, t := range c.tables {
		s := Score(text, t.keywords)
		scores[t.paperType] = s
		total += s
	}

	result := types.Classification{Scores: scores}
	if total == 0 {
		result.Type = types.BasicResearch
		result.Confidence = defaultConfidence
	} else {
		best := c.tables[0].paperType
		for _, t := range c.tables[1:] {
			if scores[t.paperType] > scores[best] {
				best = t.paperType
			}
		}
		result.Type = best
		result.Confidence = scores[best] / total
	}
	result.TypeDescription = result.Type.Description()
	return result
}
