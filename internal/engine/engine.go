// Package engine wires the index store, ranker, matcher, and batch
// executor into the single SearchEngine type client code constructs.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/requestlog"
	"github.com/ImZritel/y-cpp-my/internal/searcher/executor"
	"github.com/ImZritel/y-cpp-my/internal/searcher/matcher"
	"github.com/ImZritel/y-cpp-my/internal/searcher/ranker"
	"github.com/ImZritel/y-cpp-my/pkg/config"
	"github.com/ImZritel/y-cpp-my/pkg/logger"
	"github.com/ImZritel/y-cpp-my/pkg/metrics"
	"github.com/ImZritel/y-cpp-my/pkg/tracing"
)

// Policy re-exports ranker.Policy: every engine operation that can run in
// parallel shares the same Sequential/Parallel vocabulary.
type Policy = ranker.Policy

const (
	Sequential = ranker.Sequential
	Parallel   = ranker.Parallel
)

// Predicate re-exports ranker.Predicate for callers that only import
// package engine.
type Predicate = ranker.Predicate

// ScoredDoc re-exports ranker.ScoredDoc.
type ScoredDoc = ranker.ScoredDoc

// SearchEngine is the top-level handle clients construct and call.
type SearchEngine struct {
	store      *index.Store
	ranker     *ranker.Ranker
	executor   *executor.BatchExecutor
	requestLog *requestlog.Log
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New builds a SearchEngine with the given stop words and configuration.
func New(stopWords []string, cfg *config.Config) (*SearchEngine, error) {
	if cfg == nil {
		defaults, err := config.Load("")
		if err != nil {
			return nil, err
		}
		cfg = defaults
	}

	store, err := index.NewStore(stopWords)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	r := ranker.New(store, cfg.Index.ShardCount)

	return &SearchEngine{
		store:      store,
		ranker:     r,
		executor:   executor.New(r, m),
		requestLog: requestlog.New(cfg.RequestLog.WindowSize),
		metrics:    m,
		logger:     logger.WithComponent("engine"),
	}, nil
}

// Metrics exposes the engine's private Prometheus registry handle, for a
// host (e.g. the CLI harness) that wants to scrape it locally.
func (e *SearchEngine) Metrics() *metrics.Metrics {
	return e.metrics
}

// RequestLog exposes the engine's bounded empty-query logbook.
func (e *SearchEngine) RequestLog() *requestlog.Log {
	return e.requestLog
}

// AddDocument indexes text under id with the given status and ratings.
func (e *SearchEngine) AddDocument(ctx context.Context, id int, text string, status index.StatusTag, ratings []int) error {
	return tracing.Trace(ctx, "engine.AddDocument", func(context.Context) error {
		err := e.store.AddDocument(id, text, status, ratings)
		if err != nil {
			e.logger.Warn("add document failed", "id", id, "error", err)
			return err
		}
		e.metrics.DocsIndexedTotal.Inc()
		e.logger.Debug("document added", "id", id, "status", status)
		return nil
	})
}

// RemoveDocument unlinks id from the index.
func (e *SearchEngine) RemoveDocument(ctx context.Context, id int, policy Policy) error {
	return tracing.Trace(ctx, "engine.RemoveDocument", func(context.Context) error {
		err := e.store.RemoveDocument(id, policy == Parallel)
		if err != nil {
			e.logger.Warn("remove document failed", "id", id, "error", err)
			return err
		}
		e.metrics.DocsRemovedTotal.Inc()
		e.logger.Debug("document removed", "id", id)
		return nil
	})
}

// FindTopDocuments ranks query against predicate (documents tagged ACTUAL
// if predicate is the zero value) and returns at most
// ranker.MaxResultDocumentCount results. Every call is recorded in the
// engine's RequestLog and timed into the SearchLatency histogram.
func (e *SearchEngine) FindTopDocuments(ctx context.Context, query string, predicate Predicate, policy Policy) ([]ScoredDoc, error) {
	start := time.Now()
	var docs []ScoredDoc
	err := tracing.Trace(ctx, "engine.FindTopDocuments", func(context.Context) error {
		var err error
		docs, err = e.ranker.FindTop(query, predicate, policy)
		return err
	})
	e.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		e.requestLog.Record(true)
		return nil, err
	}
	e.metrics.SearchResultsCount.Observe(float64(len(docs)))
	if len(docs) == 0 {
		e.metrics.SearchQueriesTotal.WithLabelValues("empty").Inc()
	} else {
		e.metrics.SearchQueriesTotal.WithLabelValues("hit").Inc()
	}
	e.requestLog.Record(len(docs) == 0)
	return docs, nil
}

// MatchDocument reports which of query's plus-terms occur in document id.
func (e *SearchEngine) MatchDocument(ctx context.Context, query string, id int, policy Policy) ([]string, index.StatusTag, error) {
	var terms []string
	var status index.StatusTag
	err := tracing.Trace(ctx, "engine.MatchDocument", func(context.Context) error {
		var err error
		terms, status, err = matcher.Match(e.store, query, id, matcher.Policy(policy))
		return err
	})
	if err != nil {
		e.metrics.MatchQueriesTotal.WithLabelValues("error").Inc()
		return nil, 0, err
	}
	if len(terms) == 0 {
		e.metrics.MatchQueriesTotal.WithLabelValues("empty").Inc()
	} else {
		e.metrics.MatchQueriesTotal.WithLabelValues("matched").Inc()
	}
	return terms, status, nil
}

// WordFrequencies returns a copy of the term->tf mapping for id, or an
// empty map if id is not live.
func (e *SearchEngine) WordFrequencies(id int) map[string]float64 {
	return e.store.WordFrequencies(id)
}

// DocCount returns the number of currently live documents.
func (e *SearchEngine) DocCount() int {
	return e.store.DocCount()
}

// IterIDs returns the currently live document ids in ascending order.
func (e *SearchEngine) IterIDs() []int {
	return e.store.IterIDs()
}

// ProcessQueries runs a batch of queries in parallel, one result slice per
// query, in input order.
func (e *SearchEngine) ProcessQueries(ctx context.Context, queries []string, predicate Predicate, policy Policy) ([][]ScoredDoc, []error) {
	return e.executor.Process(ctx, queries, predicate, policy)
}

// ProcessQueriesJoined runs a batch of queries in parallel and flattens
// their results into a single slice, in input order.
func (e *SearchEngine) ProcessQueriesJoined(ctx context.Context, queries []string, predicate Predicate, policy Policy) ([]ScoredDoc, []error) {
	return e.executor.ProcessJoined(ctx, queries, predicate, policy)
}
