// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus counters and histograms for the HTTP
// API, the classifier and the DOI resolver. Each Metrics owns a private
// registry; a nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const namespace = "paper_analyzer"

// Lookup outcomes recorded by ObserveLookup.
const (
	OutcomeHit      = "hit"
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds the registered collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	classifications *prometheus.CounterVec
	confidence      prometheus.Histogram
	lookups         *prometheus.CounterVec
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   durationBuckets,
		}, []string{"method", "route"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Analyses by winning paper type.",
		}, []string{"paper_type"}),
		confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_confidence",
			Help:      "Confidence of the winning paper type.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_lookups_total",
			Help:      "DOI metadata lookups by source and outcome.",
		}, []string{"source", "outcome"}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.classifications, m.confidence, m.lookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveClassification records the outcome of one analysis.
func (m *Metrics) ObserveClassification(t types.PaperType, confidence float64) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(string(t)).Inc()
	m.confidence.Observe(confidence)
}

// ObserveLookup records one metadata lookup against source ("cache",
// "crossref", "pubmed", "openalex").
func (m *Metrics) ObserveLookup(source, outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(source, outcome).Inc()
}
