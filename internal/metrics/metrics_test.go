// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/analyze/text", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/analyze/text", 200, 30*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/analyze/text", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/analyze/text", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/analyze/text", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestObserveClassification(t *testing.T) {
	m := New()
	m.ObserveClassification(types.CaseReport, 0.88)
	m.ObserveClassification(types.CaseReport, 0.75)
	m.ObserveClassification(types.BasicResearch, 0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.classifications.WithLabelValues("case_report")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classifications.WithLabelValues("basic_research")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.confidence))
}

func TestObserveLookup(t *testing.T) {
	m := New()
	m.ObserveLookup("crossref", OutcomeFound)
	m.ObserveLookup("cache", OutcomeHit)
	m.ObserveLookup("cache", OutcomeHit)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("crossref", OutcomeFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues("cache", OutcomeHit)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
		m.ObserveClassification(types.ClinicalResearch, 0.9)
		m.ObserveLookup("pubmed", OutcomeError)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLookup("crossref", OutcomeNotFound)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `paper_analyzer_resolver_lookups_total{outcome="not_found",source="crossref"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IsolatedRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveLookup("cache", OutcomeHit)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.lookups.WithLabelValues("cache", OutcomeHit)))
}
