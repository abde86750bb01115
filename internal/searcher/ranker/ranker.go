// Package ranker computes TF-IDF relevance over an index.Store and returns
// the top-ranked matching documents for a parsed query.
package ranker

import (
	"log/slog"
	"math"
	"sync"

	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/searcher/merger"
	"github.com/ImZritel/y-cpp-my/internal/searcher/parser"
	"github.com/ImZritel/y-cpp-my/pkg/logger"
)

// MaxResultDocumentCount bounds how many documents FindTop ever returns.
const MaxResultDocumentCount = 5

// Policy selects how FindTop fans work across goroutines.
type Policy int

const (
	Sequential Policy = iota
	Parallel
)

// ScoredDoc is a single ranked result.
type ScoredDoc = merger.ScoredDoc

// Predicate filters candidate documents during accumulation; only
// documents for which Match returns true ever contribute relevance. Key
// identifies the filter for callers (e.g. BatchExecutor) that need to tell
// two Predicates apart without inspecting their closures — predicates that
// filter differently must carry different keys.
type Predicate struct {
	Key   string
	Match func(id index.DocID, status index.StatusTag, rating int) bool
}

// AnyStatus accepts every document regardless of status or rating.
var AnyStatus = Predicate{
	Key:   "any",
	Match: func(index.DocID, index.StatusTag, int) bool { return true },
}

// WithStatus returns a Predicate that accepts only documents tagged want.
func WithStatus(want index.StatusTag) Predicate {
	return Predicate{
		Key: "status:" + want.String(),
		Match: func(_ index.DocID, status index.StatusTag, _ int) bool {
			return status == want
		},
	}
}

// defaultPredicate is what FindTop uses when the caller passes a zero-value
// Predicate, matching the original project's no-argument FindTopDocuments
// overload, which defaults to DocumentStatus::ACTUAL.
func defaultPredicate() Predicate {
	return WithStatus(index.StatusActual)
}

// Ranker holds the sharding parameter used by the Parallel policy.
type Ranker struct {
	store      *index.Store
	shardCount int
	logger     *slog.Logger
}

// New builds a Ranker over store. shardCount configures the ConcurrentMap
// the Parallel policy accumulates into.
func New(store *index.Store, shardCount int) *Ranker {
	return &Ranker{
		store:      store,
		shardCount: shardCount,
		logger:     logger.WithComponent("ranker"),
	}
}

// FindTop parses query, accumulates TF-IDF relevance over its plus-terms
// (restricted to documents predicate accepts), removes any document
// reachable through a minus-term, and returns at most
// MaxResultDocumentCount results ordered by (-relevance, -rating, id).
func (r *Ranker) FindTop(query string, predicate Predicate, policy Policy) ([]ScoredDoc, error) {
	q, err := parser.Parse(query, r.store.IsStopWord)
	if err != nil {
		return nil, err
	}
	if predicate.Match == nil {
		predicate = defaultPredicate()
	}

	totalDocs := r.store.DocCount()
	if totalDocs == 0 || len(q.Plus) == 0 {
		return []ScoredDoc{}, nil
	}

	var relevance map[index.DocID]float64
	if policy == Parallel {
		relevance = r.accumulateParallel(q, predicate, totalDocs)
	} else {
		relevance = r.accumulateSequential(q, predicate, totalDocs)
	}

	for _, term := range q.Minus {
		r.store.ForEachPosting(term, func(doc index.DocID, _ float64) {
			delete(relevance, doc)
		})
	}

	docs := make([]ScoredDoc, 0, len(relevance))
	for id, rel := range relevance {
		meta, ok := r.store.DocMeta(id)
		if !ok {
			continue
		}
		docs = append(docs, ScoredDoc{ID: id, Relevance: rel, Rating: meta.Rating})
	}

	return merger.TopK(docs, MaxResultDocumentCount), nil
}

func (r *Ranker) idf(term string, totalDocs int) (float64, bool) {
	df := r.store.TermDocFrequency(term)
	if df == 0 {
		return 0, false
	}
	return math.Log(float64(totalDocs) / float64(df)), true
}

func (r *Ranker) accumulateSequential(q parser.Query, predicate Predicate, totalDocs int) map[index.DocID]float64 {
	relevance := make(map[index.DocID]float64)
	for _, term := range q.Plus {
		idf, ok := r.idf(term, totalDocs)
		if !ok {
			continue
		}
		r.store.ForEachPosting(term, func(doc index.DocID, tf float64) {
			meta, ok := r.store.DocMeta(doc)
			if !ok || !predicate.Match(doc, meta.Status, meta.Rating) {
				return
			}
			relevance[doc] += tf * idf
		})
	}
	return relevance
}

func (r *Ranker) accumulateParallel(q parser.Query, predicate Predicate, totalDocs int) map[index.DocID]float64 {
	acc := index.NewConcurrentMap[index.DocID, float64](r.shardCount, index.HashDocID)

	var wg sync.WaitGroup
	for _, term := range q.Plus {
		idf, ok := r.idf(term, totalDocs)
		if !ok {
			continue
		}
		postings := r.store.PostingsSnapshot(term)
		wg.Add(1)
		go func(postings map[index.DocID]float64, idf float64) {
			defer wg.Done()
			for doc, tf := range postings {
				meta, ok := r.store.DocMeta(doc)
				if !ok || !predicate.Match(doc, meta.Status, meta.Rating) {
					continue
				}
				contribution := tf * idf
				acc.Update(doc, func(current float64) float64 {
					return current + contribution
				})
			}
		}(postings, idf)
	}
	wg.Wait()

	return acc.BuildOrdinaryMap()
}
