// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/metrics"
	"github.com/pdiddy/paper-analyzer/internal/resolve"
	"github.com/pdiddy/paper-analyzer/internal/secrets"
	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// appConfig is the resolved configuration for one command invocation.
type appConfig struct {
	Server   types.ServerConfig
	Resolver types.ResolverConfig
	Store    types.StoreConfig
	Log      logging.Config
}

// setDefaults registers the default for every configuration key on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.min_text_length", 10)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("resolver.timeout", 10*time.Second)
	v.SetDefault("resolver.max_retries", 3)
	v.SetDefault("resolver.mailto", "")
	v.SetDefault("resolver.ncbi_api_key", "")
	v.SetDefault("resolver.user_agent", "")
	v.SetDefault("store.path", "")
	v.SetDefault("store.cache_ttl", 720*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// loadConfig reads the configuration from viper. Secrets fill the resolver
// credentials that are not configured explicitly.
func loadConfig(v *viper.Viper, s secrets.Secrets) appConfig {
	return appConfig{
		Server: types.ServerConfig{
			Addr:            v.GetString("server.addr"),
			MinTextLength:   v.GetInt("server.min_text_length"),
			RequestTimeout:  v.GetDuration("server.request_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			Version:         version,
		},
		Resolver: types.ResolverConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("resolver.timeout"),
				UserAgent: v.GetString("resolver.user_agent"),
			},
			Mailto:     s.Get(secrets.CrossRefMailto, v.GetString("resolver.mailto")),
			NCBIAPIKey: s.Get(secrets.NCBIAPIKey, v.GetString("resolver.ncbi_api_key")),
			MaxRetries: v.GetInt("resolver.max_retries"),
		},
		Store: types.StoreConfig{
			Path:     v.GetString("store.path"),
			CacheTTL: v.GetDuration("store.cache_ttl"),
		},
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

// openStore opens the SQLite store, or returns nil when no path is set.
func openStore(cfg types.StoreConfig) (*store.Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.Path, err)
	}
	return st, nil
}

// newResolver builds a resolver, cached through st when it is non-nil.
func newResolver(cfg types.ResolverConfig, st *store.Store, log logging.Logger, m *metrics.Metrics) *resolve.Resolver {
	opts := []resolve.Option{
		resolve.WithLogger(log.Named("resolve")),
		resolve.WithMetrics(m),
	}
	if st != nil {
		opts = append(opts, resolve.WithCache(st))
	}
	return resolve.New(cfg, opts...)
}
