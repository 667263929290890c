// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/template"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported paper types and their fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return writeTypes(cmd.OutOrStdout(), analyze.New(), jsonOutput)
	},
}

func init() {
	typesCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(typesCmd)
}

// writeTypes lists the paper types e supports. The text form keeps the
// template field order; JSON matches GET /paper-types.
func writeTypes(w io.Writer, e *analyze.Extractor, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, map[string]any{"supported_types": e.SupportedTypes()})
	}

	for i, t := range template.All() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n  %s\n", t.Type.Description(), t.Type, t.Type.Summary())
		for _, f := range t.Fields {
			fmt.Fprintf(w, "  - %-22s %s\n", f.Name, f.Label)
		}
	}
	return nil
}
