// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored analyses and maintain the metadata cache",
	Long: `History reads the analyses stored by "serve" and "analyze --save" from
the SQLite database given by --db or store.path.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	st, err := historyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	records, err := st.ListAnalyses(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if records == nil {
			records = []types.AnalysisRecord{}
		}
		return writeJSON(cmd.OutOrStdout(), records)
	}
	return formatHistory(cmd.OutOrStdout(), records)
}

func formatHistory(w io.Writer, records []types.AnalysisRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No analyses found.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-19s  %-17s  %-5s  %s\n", "ID", "Created", "Type", "Conf", "Title/DOI")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range records {
		label := r.DOI
		if label == "" {
			label = r.Analysis.Metadata.Title
		}
		if len([]rune(label)) > 30 {
			label = string([]rune(label)[:27]) + "..."
		}
		fmt.Fprintf(w, "%-36s  %-19s  %-17s  %.2f   %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Analysis.PaperType,
			r.Analysis.Classification.Confidence, label)
	}
	fmt.Fprintf(w, "\n%d analyses\n", len(records))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "text", "json", "yaml"); err != nil {
		return err
	}

	st, err := historyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetAnalysis(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, rec)
	case "yaml":
		return writeYAML(out, rec)
	}
	fmt.Fprintf(out, "ID:          %s\n", rec.ID)
	fmt.Fprintf(out, "Created:     %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Source:      %s\n", rec.Source)
	return writeAnalysis(out, &rec.Analysis, "text")
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored analyses to YAML or JSON",
	Long: `Export writes the stored analyses (optionally filtered by --type and
--limit) to stdout, or to the file given by --output.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if err := checkFormat(format, "yaml", "json"); err != nil {
		return err
	}

	st, err := historyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if format == "json" {
		err = st.ExportJSON(cmd.Context(), w, opts)
	} else {
		err = st.ExportYAML(cmd.Context(), w, opts)
	}
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
	}
	return nil
}

// --- purge-cache subcommand ---

var historyPurgeCacheCmd = &cobra.Command{
	Use:   "purge-cache",
	Short: "Delete DOI metadata cache entries older than store.cache_ttl",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPurgeCache,
}

func runHistoryPurgeCache(cmd *cobra.Command, args []string) error {
	st, err := historyStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return purgeCache(cmd.Context(), cmd.OutOrStdout(), st)
}

func purgeCache(ctx context.Context, w io.Writer, st *store.Store) error {
	n, err := st.PurgeMetadata(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Purged %d expired cache entries.\n", n)
	return nil
}

// --- shared helpers ---

func historyStore() (*store.Store, error) {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	if cfg.Store.Path == "" {
		return nil, errors.New("no database configured: set --db or store.path")
	}
	return openStore(cfg.Store)
}

func listOptsFromFlags(cmd *cobra.Command) (store.ListOptions, error) {
	paperType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.ListOptions{Limit: limit, PaperType: types.PaperType(paperType)}
	if paperType != "" && !opts.PaperType.Valid() {
		return opts, fmt.Errorf("unknown paper type %q: use clinical_research, case_report or basic_research", paperType)
	}
	return opts, nil
}

func init() {
	// Filter flags shared by list and export.
	historyCmd.PersistentFlags().String("type", "", "filter by paper type")
	historyCmd.PersistentFlags().Int("limit", 0, "maximum analyses (0 = 50, negative = all)")

	historyListCmd.Flags().Bool("json", false, "output as JSON")
	historyShowCmd.Flags().String("format", "text", "output format: text, json or yaml")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPurgeCacheCmd)

	rootCmd.AddCommand(historyCmd)
}
