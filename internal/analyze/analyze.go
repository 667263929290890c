// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze ties classification and template extraction together:
// classify the text once, extract the matching genre's fields once and
// merge caller metadata into one Analysis.
package analyze

import (
	"errors"
	"fmt"

	"github.com/pdiddy/paper-analyzer/internal/classify"
	"github.com/pdiddy/paper-analyzer/internal/template"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ErrUnsupportedType is returned when the classifier picks a paper type
// with no registered template.
var ErrUnsupportedType = errors.New("unsupported paper type")

// Classifier picks the paper type of a text.
type Classifier interface {
	Details(text string) types.Classification
}

// Extractor is safe for concurrent use; it holds only read-only tables.
type Extractor struct {
	classifier Classifier
	lookup     func(types.PaperType) (*template.Template, bool)
}

// New returns an Extractor over the built-in classifier and templates.
func New() *Extractor {
	return &Extractor{classifier: classify.New(), lookup: template.Lookup}
}

// Extract classifies text, fills the genre's template and attaches
// metadata. A nil metadata becomes an empty record.
func (e *Extractor) Extract(text string, metadata *types.PaperMetadata) (*types.Analysis, error) {
	c := e.classifier.Details(text)

	tmpl, ok := e.lookup(c.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, c.Type)
	}

	a := &types.Analysis{
		PaperType: c.Type,
		Modules:   tmpl.Extract(text),
		Classification: types.ClassificationSummary{
			Type:            c.Type,
			TypeDescription: c.Type.Description(),
			Confidence:      c.Confidence,
		},
	}
	if metadata != nil {
		a.Metadata = *metadata
	}
	return a, nil
}

// Modules returns the field name to label map for the named paper type,
// or an empty map when the name is unknown.
func (e *Extractor) Modules(name string) map[string]string {
	tmpl, ok := e.lookup(types.PaperType(name))
	if !ok {
		return map[string]string{}
	}
	return tmpl.Modules()
}

// TypeInfo describes one supported paper type.
type TypeInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Modules     map[string]string `json:"modules"`
}

// SupportedTypes describes every paper type that has a template, keyed by
// type name.
func (e *Extractor) SupportedTypes() map[types.PaperType]TypeInfo {
	supported := make(map[types.PaperType]TypeInfo, len(types.PaperTypes))
	for _, pt := range types.PaperTypes {
		tmpl, ok := e.lookup(pt)
		if !ok {
			continue
		}
		supported[pt] = TypeInfo{
			Name:        pt.Description(),
			Description: pt.Summary(),
			Modules:     tmpl.Modules(),
		}
	}
	return supported
}

// TypeDescription returns the human-readable name for a paper type name.
func (e *Extractor) TypeDescription(name string) string {
	return types.PaperType(name).Description()
}
