// Package executor fans a batch of queries out across goroutines and
// collects their ranked results back into input order.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ImZritel/y-cpp-my/internal/searcher/ranker"
	"github.com/ImZritel/y-cpp-my/pkg/logger"
	"github.com/ImZritel/y-cpp-my/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const component = "batch-executor"

// BatchExecutor runs a batch of queries in parallel against a single
// Ranker. Identical (query, predicate, policy) combinations whose
// rankings are in flight at the same time on this executor, whether in
// one Process/ProcessJoined call or in concurrent calls, are coalesced
// through a singleflight.Group: they rank once and the result fans out to
// every caller waiting on it. A duplicate that starts after the earlier
// ranking has finished ranks again. Process and ProcessJoined return
// identical results with or without that coalescing.
type BatchExecutor struct {
	ranker  *ranker.Ranker
	group   singleflight.Group
	metrics *metrics.Metrics
}

// New builds a BatchExecutor over r. m may be nil, in which case batch
// metrics are skipped.
func New(r *ranker.Ranker, m *metrics.Metrics) *BatchExecutor {
	return &BatchExecutor{
		ranker:  r,
		metrics: m,
	}
}

// Process runs every query in queries against predicate under policy and
// returns one result slice per query, in input order. A malformed query
// contributes an empty slice at its index plus a non-nil error at the
// same index in the returned error slice; it never aborts the rest of
// the batch.
func (e *BatchExecutor) Process(ctx context.Context, queries []string, predicate ranker.Predicate, policy ranker.Policy) ([][]ranker.ScoredDoc, []error) {
	if e.metrics != nil {
		e.metrics.BatchSize.Observe(float64(len(queries)))
	}

	results := make([][]ranker.ScoredDoc, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			log := logger.FromContext(logger.WithQueryID(ctx, query)).With("component", component)
			if ctx.Err() != nil {
				errs[idx] = ctx.Err()
				results[idx] = []ranker.ScoredDoc{}
				return
			}
			// Every result-affecting parameter goes into the coalescing key:
			// two callers sharing a query string but differing predicates or
			// policies must never receive each other's in-flight result.
			sfKey := fmt.Sprintf("%s\x00%s\x00%d", query, predicate.Key, policy)
			start := time.Now()
			v, err, _ := e.group.Do(sfKey, func() (any, error) {
				return e.ranker.FindTop(query, predicate, policy)
			})
			if e.metrics != nil {
				e.metrics.SearchLatency.Observe(time.Since(start).Seconds())
			}
			if err != nil {
				log.Warn("batch query failed", "error", err)
				errs[idx] = err
				results[idx] = []ranker.ScoredDoc{}
				return
			}
			docs := v.([]ranker.ScoredDoc)
			out := make([]ranker.ScoredDoc, len(docs))
			copy(out, docs)
			results[idx] = out
		}(i, q)
	}
	wg.Wait()
	return results, errs
}

// ProcessJoined runs Process and flattens the per-query results into a
// single slice, preserving input order.
func (e *BatchExecutor) ProcessJoined(ctx context.Context, queries []string, predicate ranker.Predicate, policy ranker.Policy) ([]ranker.ScoredDoc, []error) {
	results, errs := e.Process(ctx, queries, predicate, policy)
	total := 0
	for _, r := range results {
		total += len(r)
	}
	joined := make([]ranker.ScoredDoc, 0, total)
	for _, r := range results {
		joined = append(joined, r...)
	}
	return joined, errs
}
