// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-analyzer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds registry credentials loaded from the secrets
// directory at startup.
var loadedSecrets = secrets.Secrets{}

// rootCmd is the base command for the paper-analyzer CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-analyzer",
	Short: "Classify scientific papers and extract structured fields",
	Long: `paper-analyzer classifies a paper's text as clinical research, a case
report or basic research, then extracts the fields of that genre's template
(background, methods, diagnosis, mechanism and so on) with keyword scoring
and regular-expression rules.

Text comes from a file, stdin, or a DOI resolved through CrossRef and
PubMed. The serve subcommand exposes the same analysis over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./paper-analyzer.yaml or ~/.config/paper-analyzer/paper-analyzer.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of plain-text secret files")
	pf.String("db", "", "SQLite database for the metadata cache and analysis history (empty disables)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("store.path", pf.Lookup("db"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-analyzer"))
		}
	}

	viper.SetEnvPrefix("PAPER_ANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
