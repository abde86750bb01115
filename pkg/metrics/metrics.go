// Package metrics defines the Prometheus collectors the engine updates on
// every public operation. Each engine instance owns a private registry so
// that constructing more than one engine in the same process — as the test
// suite does — never collides on collector names.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors a SearchEngine updates.
type Metrics struct {
	registry *prometheus.Registry

	DocsIndexedTotal   prometheus.Counter
	DocsRemovedTotal   prometheus.Counter
	DuplicatesRemoved  prometheus.Counter
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram
	BatchSize          prometheus.Histogram
	MatchQueriesTotal  *prometheus.CounterVec
}

// New creates and registers the engine's collectors on a fresh, private
// registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		DocsIndexedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_docs_indexed_total",
			Help: "Total documents added to the index.",
		}),
		DocsRemovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_docs_removed_total",
			Help: "Total documents removed from the index.",
		}),
		DuplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_duplicates_removed_total",
			Help: "Total documents removed by duplicate detection.",
		}),
		SearchQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_search_queries_total",
			Help: "Total FindTopDocuments calls by outcome (hit, empty, error).",
		}, []string{"outcome"}),
		SearchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_search_latency_seconds",
			Help:    "FindTopDocuments latency in seconds.",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		SearchResultsCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_search_results_count",
			Help:    "Number of results returned per FindTopDocuments call.",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_batch_size",
			Help:    "Number of queries per ProcessQueries batch.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		MatchQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_match_queries_total",
			Help: "Total MatchDocument calls by outcome (matched, empty, error).",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.DocsIndexedTotal,
		m.DocsRemovedTotal,
		m.DuplicatesRemoved,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.BatchSize,
		m.MatchQueriesTotal,
	)

	return m
}

// Handler returns an HTTP handler that scrapes this instance's private
// registry. Only used by the CLI harness for local inspection; the engine
// itself never listens on a socket.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
