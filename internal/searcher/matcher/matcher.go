// Package matcher decides which terms of a query a given document
// contains, honoring the minus-term short-circuit rule.
package matcher

import (
	"sort"
	"sync"

	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/searcher/parser"
	apperrors "github.com/ImZritel/y-cpp-my/pkg/errors"
)

// Policy selects how Match fans work across goroutines.
type Policy int

const (
	Sequential Policy = iota
	Parallel
)

// Match returns the sorted subset of query's plus-terms present in
// document id, and that document's status. If any minus-term of query is
// present in the document, it returns an empty term slice instead (the
// minus-word short-circuit) without inspecting the plus-terms at all.
func Match(store *index.Store, query string, id index.DocID, policy Policy) ([]string, index.StatusTag, error) {
	meta, ok := store.DocMeta(id)
	if !ok {
		return nil, 0, apperrors.Newf(apperrors.ErrUnknownDoc, "id=%d", id)
	}

	q, err := parser.Parse(query, store.IsStopWord)
	if err != nil {
		return nil, 0, err
	}

	docTerms := store.WordFrequencies(id)

	var hasMinus bool
	if policy == Parallel {
		hasMinus = anyPresentParallel(q.Minus, docTerms)
	} else {
		hasMinus = anyPresentSequential(q.Minus, docTerms)
	}
	if hasMinus {
		return []string{}, meta.Status, nil
	}

	var matched []string
	if policy == Parallel {
		matched = collectPresentParallel(q.Plus, docTerms)
	} else {
		matched = collectPresentSequential(q.Plus, docTerms)
	}
	return matched, meta.Status, nil
}

func anyPresentSequential(terms []string, docTerms map[string]float64) bool {
	for _, t := range terms {
		if _, ok := docTerms[t]; ok {
			return true
		}
	}
	return false
}

func anyPresentParallel(terms []string, docTerms map[string]float64) bool {
	if len(terms) <= 1 {
		return anyPresentSequential(terms, docTerms)
	}
	var found sync.Map
	var wg sync.WaitGroup
	for _, t := range terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			if _, ok := docTerms[term]; ok {
				found.Store(true, true)
			}
		}(t)
	}
	wg.Wait()
	_, ok := found.Load(true)
	return ok
}

func collectPresentSequential(terms []string, docTerms map[string]float64) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := docTerms[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func collectPresentParallel(terms []string, docTerms map[string]float64) []string {
	if len(terms) <= 1 {
		return collectPresentSequential(terms, docTerms)
	}
	var mu sync.Mutex
	var wg sync.WaitGroup
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			if _, ok := docTerms[term]; ok {
				mu.Lock()
				out = append(out, term)
				mu.Unlock()
			}
		}(t)
	}
	wg.Wait()
	sort.Strings(out)
	return out
}
