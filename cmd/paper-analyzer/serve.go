// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/metrics"
	"github.com/pdiddy/paper-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes analysis over HTTP: POST /analyze/text and /analyze/doi,
GET /paper-types, /health and /metrics. With --db (or store.path) resolved
DOI metadata is cached and every analysis is stored and can be fetched
from GET /analyses/:id.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	opts := []server.Option{server.WithLogger(log.Named("http"))}
	if st != nil {
		defer st.Close()
		opts = append(opts, server.WithHistory(st))
		log.Info("analysis history enabled", logging.String("path", cfg.Store.Path))
	}

	m := metrics.New()
	opts = append(opts,
		server.WithMetrics(m),
		server.WithResolver(newResolver(cfg.Resolver, st, log, m)),
	)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg.Server, analyze.New(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
