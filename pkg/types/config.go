package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyzer/0.1 (mailto:team@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolverConfig holds settings for DOI metadata resolution.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto is the contact address sent to CrossRef for the polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// NCBIAPIKey is an optional E-utilities key for higher PubMed rate limits.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the SQLite metadata cache and analysis history.
type StoreConfig struct {
	// Path is the SQLite database file. An empty path disables the store.
	Path string `json:"path" yaml:"path"`

	// CacheTTL is how long resolved DOI metadata stays fresh (default 30 days).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// MinTextLength is the minimum trimmed text length accepted for
	// analysis (default 10 characters).
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`

	// RequestTimeout bounds DOI resolution for a single request (default 30s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Version is reported by the root endpoint.
	Version string `json:"version" yaml:"version"`
}
