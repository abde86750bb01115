// Package merger truncates a set of scored documents down to the top-K
// using a bounded heap, rather than sorting the whole set and slicing.
package merger

import "container/heap"

// Epsilon is the relevance-equality tolerance used when ranking ties.
const Epsilon = 1e-6

// ScoredDoc is a single ranked result.
type ScoredDoc struct {
	ID        int
	Relevance float64
	Rating    int
}

// isBetter reports whether a should be ordered ahead of b: higher
// relevance wins outright unless the two are within Epsilon of each
// other, in which case higher rating wins, and failing that the smaller
// doc id wins so the final order is fully deterministic.
func isBetter(a, b ScoredDoc) bool {
	diff := a.Relevance - b.Relevance
	if diff < 0 {
		diff = -diff
	}
	if diff >= Epsilon {
		return a.Relevance > b.Relevance
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.ID < b.ID
}

// TopK keeps the best limit ScoredDocs out of docs, in best-first order.
// docs need not be sorted. limit <= 0 returns all docs, sorted.
func TopK(docs []ScoredDoc, limit int) []ScoredDoc {
	if limit <= 0 {
		limit = len(docs)
	}
	h := &worstFirstHeap{}
	heap.Init(h)
	for _, d := range docs {
		heap.Push(h, d)
		if h.Len() > limit {
			heap.Pop(h)
		}
	}
	out := make([]ScoredDoc, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(ScoredDoc)
	}
	return out
}

// worstFirstHeap is a min-heap ordered so that heap.Pop always removes the
// single worst-ranked element currently held, letting TopK evict losers as
// it scans.
type worstFirstHeap []ScoredDoc

func (h worstFirstHeap) Len() int { return len(h) }

func (h worstFirstHeap) Less(i, j int) bool {
	return isBetter(h[j], h[i])
}

func (h worstFirstHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *worstFirstHeap) Push(x any) {
	*h = append(*h, x.(ScoredDoc))
}

func (h *worstFirstHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
