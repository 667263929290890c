// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/resolve"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Classify a paper and extract its fields",
	Long: `Analyze reads paper text from a file, or from stdin when the argument is
"-" or omitted, classifies it and prints the extracted fields. With --doi
the text is the title and abstract resolved from CrossRef or PubMed.

With --save and a database (--db or store.path) the analysis is stored in
the history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("doi", "", "resolve this DOI or doi.org URL instead of reading text")
	analyzeCmd.Flags().String("title", "", "paper title recorded with text input")
	analyzeCmd.Flags().String("format", "text", "output format: text, json or yaml")
	analyzeCmd.Flags().Bool("save", false, "store the analysis in the history database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	doiFlag, _ := cmd.Flags().GetString("doi")
	title, _ := cmd.Flags().GetString("title")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if err := checkFormat(format, "text", "json", "yaml"); err != nil {
		return err
	}
	if doiFlag != "" && len(args) > 0 {
		return errors.New("provide either a file or --doi, not both")
	}

	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	if save && st == nil {
		return errors.New("--save requires a database: set --db or store.path")
	}

	var (
		text   string
		meta   *types.PaperMetadata
		source = types.SourceText
		doi    string
	)
	if doiFlag != "" {
		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
		defer cancel()
		meta, err = newResolver(cfg.Resolver, st, log, nil).Resolve(ctx, doiFlag)
		if err != nil {
			return err
		}
		text = resolve.FullText(meta)
		source, doi = types.SourceDOI, meta.DOI
	} else {
		text, err = readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if title != "" {
			meta = &types.PaperMetadata{Title: title, Authors: []string{}, Keywords: []string{}}
		}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < cfg.Server.MinTextLength {
		return fmt.Errorf("text too short: %d characters, minimum %d", n, cfg.Server.MinTextLength)
	}

	a, err := analyze.New().Extract(text, meta)
	if err != nil {
		return err
	}

	if save {
		rec, err := st.SaveAnalysis(cmd.Context(), source, doi, a)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved analysis %s\n", rec.ID)
	}

	return writeAnalysis(cmd.OutOrStdout(), a, format)
}

// readInput reads the named file, or stdin when args is empty or "-".
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
