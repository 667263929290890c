// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/internal/template"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unsupported format %q: use %s", format, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// writeAnalysis prints a in the requested format. The text format lists
// fields in template order under their labels.
func writeAnalysis(w io.Writer, a *types.Analysis, format string) error {
	switch format {
	case "json":
		return writeJSON(w, a)
	case "yaml":
		return writeYAML(w, a)
	}

	fmt.Fprintf(w, "Paper type:  %s (%s)\n", a.Classification.TypeDescription, a.PaperType)
	fmt.Fprintf(w, "Confidence:  %.2f\n", a.Classification.Confidence)
	if a.Metadata.Title != "" {
		fmt.Fprintf(w, "Title:       %s\n", a.Metadata.Title)
	}
	if a.Metadata.DOI != "" {
		fmt.Fprintf(w, "DOI:         %s\n", a.Metadata.DOI)
	}

	tmpl, ok := template.Lookup(a.PaperType)
	if !ok {
		return nil
	}
	for _, f := range tmpl.Fields {
		fmt.Fprintf(w, "\n%s\n", f.Label)
		fmt.Fprintf(w, "  %s\n", a.Modules[f.Name])
	}
	return nil
}
