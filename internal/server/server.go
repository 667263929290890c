// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the analyzer over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/metrics"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const (
	defaultAddr            = ":8000"
	defaultMinTextLength   = 10
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultVersion         = "dev"
)

// MetadataResolver turns a DOI or DOI URL into paper metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, input string) (*types.PaperMetadata, error)
}

// History stores analyses so they can be fetched by ID later.
type History interface {
	SaveAnalysis(ctx context.Context, source types.AnalysisSource, doi string, a *types.Analysis) (*types.AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id string) (*types.AnalysisRecord, error)
}

// Server is the HTTP API. Handlers share read-only state and may run
// concurrently.
type Server struct {
	cfg       types.ServerConfig
	extractor *analyze.Extractor
	resolver  MetadataResolver
	history   History
	log       logging.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithResolver enables POST /analyze/doi.
func WithResolver(r MetadataResolver) Option { return func(s *Server) { s.resolver = r } }

// WithHistory stores every analysis and enables GET /analyses/:id.
func WithHistory(h History) Option { return func(s *Server) { s.history = h } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option { return func(s *Server) { s.log = l } }

// WithMetrics instruments requests and serves GET /metrics.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Server) { s.metrics = m } }

// New builds the router. Zero values in cfg take their defaults.
func New(cfg types.ServerConfig, extractor *analyze.Extractor, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = defaultMinTextLength
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}

	s := &Server{
		cfg:       cfg,
		extractor: extractor,
		log:       logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		requestID(),
		requestLogger(s.log),
		instrument(s.metrics),
		recovery(s.log),
	)
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "no route for "+c.Request.URL.Path)
	})

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/paper-types", s.handlePaperTypes)
	r.POST("/analyze/text", s.handleAnalyzeText)
	r.POST("/analyze/doi", s.handleAnalyzeDOI)
	r.GET("/analyses/:id", s.handleGetAnalysis)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	return r
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down", logging.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
