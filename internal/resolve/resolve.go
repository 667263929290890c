// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a DOI, doi.org URL or DOI-bearing string into paper
// metadata. CrossRef is tried first, then PubMed, then OpenAlex; results
// can be cached so repeat lookups skip the network.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-analyzer/internal/httputil"
	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/metrics"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var (
	// ErrInvalidDOI is returned when the input holds no DOI.
	ErrInvalidDOI = errors.New("invalid DOI")

	// ErrNotFound is returned when no registry knows the DOI.
	ErrNotFound = errors.New("DOI not found")
)

// Registry endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	crossrefAPIBase  = "https://api.crossref.org/works/"
	pubmedSearchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedSummaryURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
	openAlexAPIBase  = "https://api.openalex.org/works/"
	doiBase          = "https://doi.org/"
)

// Metadata sources, also used as metric labels.
const (
	SourceCache    = "cache"
	SourceCrossRef = "crossref"
	SourcePubMed   = "pubmed"
	SourceOpenAlex = "openalex"
)

// Cache stores resolved metadata by DOI.
type Cache interface {
	GetMetadata(ctx context.Context, doi string) (*types.PaperMetadata, bool, error)
	PutMetadata(ctx context.Context, meta *types.PaperMetadata) error
}

// Resolver looks up DOI metadata. It is safe for concurrent use.
type Resolver struct {
	client  *httputil.Client
	mailto  string
	ncbiKey string
	cache   Cache
	log     logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache serves and stores lookups through c.
func WithCache(c Cache) Option { return func(r *Resolver) { r.cache = c } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option { return func(r *Resolver) { r.log = l } }

// WithMetrics records lookup outcomes on m.
func WithMetrics(m *metrics.Metrics) Option { return func(r *Resolver) { r.metrics = m } }

// New returns a Resolver configured from cfg. When cfg.UserAgent is empty a
// default carrying the mailto address is used, as CrossRef's polite pool
// asks.
func New(cfg types.ResolverConfig, opts ...Option) *Resolver {
	httpCfg := cfg.HTTPConfig
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = "paper-analyzer/1.0"
		if cfg.Mailto != "" {
			httpCfg.UserAgent += " (mailto:" + cfg.Mailto + ")"
		}
	}
	r := &Resolver{
		client:  httputil.NewClient(httpCfg, cfg.MaxRetries),
		mailto:  cfg.Mailto,
		ncbiKey: cfg.NCBIAPIKey,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve extracts the DOI from input and returns its metadata. It fails
// with ErrInvalidDOI when input has no DOI and ErrNotFound when every
// registry reports the DOI unknown. Other errors are upstream failures.
func (r *Resolver) Resolve(ctx context.Context, input string) (*types.PaperMetadata, error) {
	doi, ok := ExtractDOI(input)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDOI, input)
	}
	log := r.log.With(logging.String("doi", doi))

	if r.cache != nil {
		meta, hit, err := r.cache.GetMetadata(ctx, doi)
		switch {
		case err != nil:
			log.Warn("metadata cache read failed", logging.Err(err))
		case hit:
			r.metrics.ObserveLookup(SourceCache, metrics.OutcomeHit)
			log.Debug("metadata cache hit")
			return meta, nil
		}
	}

	sources := []struct {
		name  string
		fetch func(context.Context, string) (*types.PaperMetadata, error)
	}{
		{SourceCrossRef, r.fetchCrossRef},
		{SourcePubMed, r.fetchPubMed},
		{SourceOpenAlex, r.fetchOpenAlex},
	}

	var upstream []error
	for _, src := range sources {
		meta, err := src.fetch(ctx, doi)
		if err == nil {
			r.metrics.ObserveLookup(src.name, metrics.OutcomeFound)
			log.Info("resolved DOI", logging.String("source", src.name))
			r.store(ctx, log, meta)
			return meta, nil
		}
		if errors.Is(err, ErrNotFound) {
			r.metrics.ObserveLookup(src.name, metrics.OutcomeNotFound)
		} else {
			r.metrics.ObserveLookup(src.name, metrics.OutcomeError)
			upstream = append(upstream, err)
		}
		log.Warn("metadata lookup failed", logging.String("source", src.name), logging.Err(err))

		if ctx.Err() != nil {
			return nil, fmt.Errorf("resolving %s: %w", doi, ctx.Err())
		}
	}

	if len(upstream) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, doi)
	}
	return nil, fmt.Errorf("resolving %s: %w", doi, errors.Join(upstream...))
}

func (r *Resolver) store(ctx context.Context, log logging.Logger, meta *types.PaperMetadata) {
	if r.cache == nil {
		return
	}
	if err := r.cache.PutMetadata(ctx, meta); err != nil {
		log.Warn("metadata cache write failed", logging.Err(err))
	}
}

// FullText composes the text analyzed for a resolved paper: the title, a
// blank line and the abstract, or the title alone when there is no
// abstract.
func FullText(meta *types.PaperMetadata) string {
	if meta == nil {
		return ""
	}
	title := strings.TrimSpace(meta.Title)
	abstract := strings.TrimSpace(meta.Abstract)
	if abstract == "" {
		return title
	}
	return strings.TrimSpace(title + "\n\n" + abstract)
}

// mapStatus turns a 404 from a registry into ErrNotFound.
func mapStatus(err error) error {
	var se *httputil.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w (%v)", ErrNotFound, err)
	}
	return err
}
