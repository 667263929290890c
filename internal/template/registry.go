// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import "github.com/pdiddy/paper-analyzer/pkg/types"

var registry = map[types.PaperType]*Template{
	types.ClinicalResearch: clinicalTemplate,
	types.CaseReport:       caseTemplate,
	types.BasicResearch:    basicTemplate,
}

// Lookup returns the template registered for t.
func Lookup(t types.PaperType) (*Template, bool) {
	tmpl, ok := registry[t]
	return tmpl, ok
}

// All returns every template in canonical paper type order.
func All() []*Template {
	out := make([]*Template, 0, len(types.PaperTypes))
	for _, t := range types.PaperTypes {
		if tmpl, ok := registry[t]; ok {
			out = append(out, tmpl)
		}
	}
	return out
}
