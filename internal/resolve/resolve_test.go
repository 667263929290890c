// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/internal/httputil"
	"github.com/pdiddy/paper-analyzer/internal/metrics"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func TestExtractDOI(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare DOI", "10.1000/xyz123", "10.1000/xyz123", true},
		{"plos DOI", "10.1371/journal.pone.0123456", "10.1371/journal.pone.0123456", true},
		{"doi.org URL", "https://doi.org/10.1000/xyz123", "10.1000/xyz123", true},
		{"dx.doi.org URL", "http://dx.doi.org/10.1000/xyz123", "10.1000/xyz123", true},
		{"escaped URL", "https://doi.org/10.1002%2Fjcc.1234", "10.1002/jcc.1234", true},
		{"doi prefix", "doi: 10.1000/xyz123", "10.1000/xyz123", true},
		{"in prose", "see 10.1016/S0140-6736(20)30183-5.", "10.1016/S0140-6736(20)30183-5", true},
		{"whitespace", "  10.1000/xyz123\n", "10.1000/xyz123", true},
		{"not a doi", "not a doi", "", false},
		{"empty", "", "", false},
		{"prefix only", "10.1000/", "", false},
		{"no registrant", "10./abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDOI(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractDOI(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractDOI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCrossRefMetadata(t *testing.T) {
	w := crossrefWork{
		Title:          []string{"Test Article"},
		Author:         []crossrefAuthor{{Given: "John", Family: "Doe"}, {Family: "Consortium"}},
		ContainerTitle: []string{"Test Journal"},
		PublishedPrint: &crossrefDate{DateParts: [][]int{{2023, 1, 1}}},
		Abstract:       "<jats:p>Test abstract &amp; more</jats:p>",
		Subject:        []string{"Medicine"},
		Volume:         "1",
		Issue:          "1",
		Page:           "1-10",
	}

	got := w.metadata("10.1000/test")
	assert.Equal(t, &types.PaperMetadata{
		DOI:             "10.1000/test",
		Title:           "Test Article",
		Authors:         []string{"John Doe", "Consortium"},
		Journal:         "Test Journal",
		PublicationDate: "2023-1-1",
		Abstract:        "Test abstract & more",
		Keywords:        []string{"Medicine"},
		Volume:          "1",
		Issue:           "1",
		Pages:           "1-10",
		URL:             "https://doi.org/10.1000/test",
	}, got)
}

func TestCrossRefDate(t *testing.T) {
	tests := []struct {
		name string
		d    *crossrefDate
		want string
	}{
		{"nil", nil, ""},
		{"empty", &crossrefDate{}, ""},
		{"full", &crossrefDate{DateParts: [][]int{{2021, 12, 3}}}, "2021-12-3"},
		{"year month", &crossrefDate{DateParts: [][]int{{2021, 6}}}, "2021-6"},
		{"null parts", &crossrefDate{DateParts: [][]int{{0}}}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String(), tt.name)
	}
}

func TestCrossRefMetadata_OnlineDateFallback(t *testing.T) {
	w := crossrefWork{PublishedOnline: &crossrefDate{DateParts: [][]int{{2022, 5}}}}
	got := w.metadata("10.1/x")
	assert.Equal(t, "2022-5", got.PublicationDate)
	assert.NotNil(t, got.Authors)
	assert.NotNil(t, got.Keywords)
}

func TestFullText(t *testing.T) {
	assert.Equal(t, "Title\n\nAbstract text.", FullText(&types.PaperMetadata{Title: "Title", Abstract: " Abstract text. "}))
	assert.Equal(t, "Title only", FullText(&types.PaperMetadata{Title: "Title only"}))
	assert.Equal(t, "Abstract only", FullText(&types.PaperMetadata{Abstract: "Abstract only"}))
	assert.Equal(t, "", FullText(&types.PaperMetadata{}))
	assert.Equal(t, "", FullText(nil))
}

// registry fakes CrossRef, PubMed and OpenAlex on one httptest server.
type registry struct {
	crossrefStatus int
	pubmedIDs      string
	openAlexFound  bool
	crossrefCalls  int32
	pubmedCalls    int32
	openAlexCalls  int32
	gotMailto      string
}

const crossrefJSON = `{
  "status": "ok",
  "message": {
    "title": ["Anticoagulation in Atrial Fibrillation"],
    "author": [{"given": "Jane", "family": "Roe"}],
    "container-title": ["Heart Journal"],
    "published-online": {"date-parts": [[2024, 3, 15]]},
    "abstract": "<jats:p>A randomized controlled trial of patients.</jats:p>",
    "volume": "12",
    "page": "100-110"
  }
}`

const esummaryJSON = `{
  "result": {
    "uids": ["38000001"],
    "38000001": {
      "title": "PubMed Title",
      "authors": [{"name": "Roe J"}, {"name": "Doe J"}],
      "source": "Heart J",
      "pubdate": "2024 Mar",
      "volume": "12",
      "issue": "3",
      "pages": "100-10"
    }
  }
}`

const openAlexJSON = `{
  "title": "OpenAlex Title",
  "publication_date": "2024-03-15",
  "publication_year": 2024,
  "authorships": [{"author": {"display_name": "Jane Roe"}}],
  "abstract_inverted_index": {"cell": [0], "culture": [1], "experiments": [2, 5], "and": [3], "more": [4]},
  "primary_location": {"source": {"display_name": "Cell Reports"}},
  "biblio": {"volume": "7", "issue": "2", "first_page": "11", "last_page": "19"},
  "keywords": [{"display_name": "Autophagy"}]
}`

func (f *registry) start(t *testing.T) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/works/10.1000/xyz123":
			atomic.AddInt32(&f.crossrefCalls, 1)
			f.gotMailto = r.URL.Query().Get("mailto")
			if f.crossrefStatus != http.StatusOK {
				w.WriteHeader(f.crossrefStatus)
				return
			}
			fmt.Fprint(w, crossrefJSON)
		case "/esearch":
			atomic.AddInt32(&f.pubmedCalls, 1)
			fmt.Fprintf(w, `{"esearchresult": {"idlist": [%s]}}`, f.pubmedIDs)
		case "/esummary":
			if r.URL.Query().Get("id") != "38000001" {
				http.Error(w, "bad id", http.StatusBadRequest)
				return
			}
			fmt.Fprint(w, esummaryJSON)
		case "/openalex/doi:10.1000/xyz123":
			atomic.AddInt32(&f.openAlexCalls, 1)
			if !f.openAlexFound {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, openAlexJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	origCR, origSearch, origSummary, origOA := crossrefAPIBase, pubmedSearchURL, pubmedSummaryURL, openAlexAPIBase
	crossrefAPIBase = ts.URL + "/works/"
	pubmedSearchURL = ts.URL + "/esearch"
	pubmedSummaryURL = ts.URL + "/esummary"
	openAlexAPIBase = ts.URL + "/openalex/"
	t.Cleanup(func() {
		crossrefAPIBase, pubmedSearchURL, pubmedSummaryURL, openAlexAPIBase = origCR, origSearch, origSummary, origOA
	})
}

func newTestResolver(opts ...Option) *Resolver {
	cfg := types.ResolverConfig{Mailto: "team@example.org", MaxRetries: 1}
	return New(cfg, opts...)
}

func TestResolve_CrossRef(t *testing.T) {
	f := &registry{crossrefStatus: http.StatusOK}
	f.start(t)
	m := metrics.New()

	meta, err := newTestResolver(WithMetrics(m)).Resolve(context.Background(), "https://doi.org/10.1000/xyz123")
	require.NoError(t, err)

	assert.Equal(t, "10.1000/xyz123", meta.DOI)
	assert.Equal(t, "Anticoagulation in Atrial Fibrillation", meta.Title)
	assert.Equal(t, []string{"Jane Roe"}, meta.Authors)
	assert.Equal(t, "Heart Journal", meta.Journal)
	assert.Equal(t, "2024-3-15", meta.PublicationDate)
	assert.Equal(t, "A randomized controlled trial of patients.", meta.Abstract)
	assert.Equal(t, SourceCrossRef, meta.Source)
	assert.Equal(t, "team@example.org", f.gotMailto)
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.pubmedCalls))
	assert.Contains(t, scrape(t, m), `paper_analyzer_resolver_lookups_total{outcome="found",source="crossref"} 1`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestResolve_PubMedFallback(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			f := &registry{crossrefStatus: status, pubmedIDs: `"38000001"`}
			f.start(t)

			meta, err := newTestResolver().Resolve(context.Background(), "10.1000/xyz123")
			require.NoError(t, err)
			assert.Equal(t, "PubMed Title", meta.Title)
			assert.Equal(t, []string{"Roe J", "Doe J"}, meta.Authors)
			assert.Equal(t, "Heart J", meta.Journal)
			assert.Equal(t, "2024 Mar", meta.PublicationDate)
			assert.Equal(t, "", meta.Abstract)
			assert.Equal(t, SourcePubMed, meta.Source)
		})
	}
}

func TestResolve_OpenAlexFallback(t *testing.T) {
	f := &registry{crossrefStatus: http.StatusNotFound, openAlexFound: true}
	f.start(t)
	m := metrics.New()

	meta, err := newTestResolver(WithMetrics(m)).Resolve(context.Background(), "10.1000/xyz123")
	require.NoError(t, err)
	assert.Equal(t, "OpenAlex Title", meta.Title)
	assert.Equal(t, []string{"Jane Roe"}, meta.Authors)
	assert.Equal(t, "Cell Reports", meta.Journal)
	assert.Equal(t, "2024-03-15", meta.PublicationDate)
	assert.Equal(t, "cell culture experiments and more experiments", meta.Abstract)
	assert.Equal(t, "11-19", meta.Pages)
	assert.Equal(t, []string{"Autophagy"}, meta.Keywords)
	assert.Equal(t, SourceOpenAlex, meta.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.pubmedCalls))

	out := scrape(t, m)
	assert.Contains(t, out, `paper_analyzer_resolver_lookups_total{outcome="not_found",source="crossref"} 1`)
	assert.Contains(t, out, `paper_analyzer_resolver_lookups_total{outcome="not_found",source="pubmed"} 1`)
	assert.Contains(t, out, `paper_analyzer_resolver_lookups_total{outcome="found",source="openalex"} 1`)
}

func TestReconstructAbstract(t *testing.T) {
	assert.Equal(t, "", reconstructAbstract(nil))
	assert.Equal(t, "a b a", reconstructAbstract(map[string][]int{"a": {0, 2}, "b": {1}}))
}

func TestResolve_NotFound(t *testing.T) {
	f := &registry{crossrefStatus: http.StatusNotFound}
	f.start(t)

	_, err := newTestResolver().Resolve(context.Background(), "10.1000/xyz123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResolve_UpstreamFailure(t *testing.T) {
	f := &registry{crossrefStatus: http.StatusBadGateway}
	f.start(t)

	_, err := newTestResolver().Resolve(context.Background(), "10.1000/xyz123")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidDOI))
	assert.Contains(t, err.Error(), "CrossRef API request")
}

func TestResolve_InvalidDOI(t *testing.T) {
	_, err := newTestResolver().Resolve(context.Background(), "not a doi")
	assert.True(t, errors.Is(err, ErrInvalidDOI))
}

// memCache is an in-memory Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string]types.PaperMetadata
	puts int
}

func (c *memCache) GetMetadata(_ context.Context, doi string) (*types.PaperMetadata, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.data[doi]
	if !ok {
		return nil, false, nil
	}
	return &m, true, nil
}

func (c *memCache) PutMetadata(_ context.Context, meta *types.PaperMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[meta.DOI] = *meta
	c.puts++
	return nil
}

func TestResolve_Cache(t *testing.T) {
	f := &registry{crossrefStatus: http.StatusOK}
	f.start(t)
	cache := &memCache{data: map[string]types.PaperMetadata{}}
	m := metrics.New()
	r := newTestResolver(WithCache(cache), WithMetrics(m))

	first, err := r.Resolve(context.Background(), "10.1000/xyz123")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "doi: 10.1000/xyz123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.crossrefCalls), "second lookup served from cache")
	assert.Equal(t, 1, cache.puts)
	assert.Contains(t, scrape(t, m), `paper_analyzer_resolver_lookups_total{outcome="hit",source="cache"} 1`)
}
