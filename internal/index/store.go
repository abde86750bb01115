// Package index owns the engine's two mirrored inverted indices and the
// concurrency primitives ranking and matching build on top of them.
package index

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/ImZritel/y-cpp-my/pkg/errors"
	"github.com/ImZritel/y-cpp-my/internal/tokenizer"
)

// Term is a single indexed or queried word.
type Term = string

// DocID identifies a document. Must be non-negative.
type DocID = int

// StatusTag classifies a document's publication state.
type StatusTag int

const (
	StatusActual StatusTag = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

func (s StatusTag) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// DocumentMeta is everything the store keeps about a live document besides
// its position in the two term indices.
type DocumentMeta struct {
	Status  StatusTag
	Rating  int
	Content string
}

// Store holds the term_to_docs / doc_to_terms mirror and the documents they
// reference. A single RWMutex enforces the single-writer/multi-reader
// model: queries take RLock, mutations take Lock.
type Store struct {
	mu         sync.RWMutex
	stopWords  map[string]struct{}
	termToDocs map[Term]map[DocID]float64
	docToTerms map[DocID]map[Term]float64
	docs       map[DocID]*DocumentMeta
	liveIDs    map[DocID]struct{}
}

// NewStore builds an empty Store with the given stop words. Stop words
// containing a control byte are rejected up front since they could never
// be matched against a validated query term anyway.
func NewStore(stopWords []string) (*Store, error) {
	s := &Store{
		stopWords:  make(map[string]struct{}, len(stopWords)),
		termToDocs: make(map[Term]map[DocID]float64),
		docToTerms: make(map[DocID]map[Term]float64),
		docs:       make(map[DocID]*DocumentMeta),
		liveIDs:    make(map[DocID]struct{}),
	}
	for _, w := range stopWords {
		if tokenizer.HasControlByte(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidTerm, "stop word %q", w)
		}
		if w != "" {
			s.stopWords[w] = struct{}{}
		}
	}
	return s, nil
}

// IsStopWord reports whether term is in the fixed stop-word set.
func (s *Store) IsStopWord(term Term) bool {
	_, ok := s.stopWords[term]
	return ok
}

// AddDocument tokenizes text, drops stop words, computes term frequencies,
// and links the document into both indices. Fails without mutating state
// if id is negative, already live, or text contains an invalid term.
func (s *Store) AddDocument(id DocID, text string, status StatusTag, ratings []int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrNegativeID, "id=%d", id)
	}
	terms := tokenizer.Tokenize(text)
	for _, t := range terms {
		if tokenizer.HasControlByte(t) || t == "-" || strings.HasPrefix(t, "--") {
			return apperrors.Newf(apperrors.ErrInvalidTerm, "document %d contains %q", id, t)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[id]; exists {
		return apperrors.Newf(apperrors.ErrDuplicateID, "id=%d", id)
	}

	counts := make(map[Term]int)
	nonStop := 0
	for _, t := range terms {
		if s.IsStopWord(t) {
			continue
		}
		counts[t]++
		nonStop++
	}

	s.docs[id] = &DocumentMeta{
		Status:  status,
		Rating:  computeRating(ratings),
		Content: text,
	}
	s.liveIDs[id] = struct{}{}

	if nonStop == 0 {
		return nil
	}

	termTF := make(map[Term]float64, len(counts))
	for term, c := range counts {
		tf := float64(c) / float64(nonStop)
		termTF[term] = tf
		inner, ok := s.termToDocs[term]
		if !ok {
			inner = make(map[DocID]float64)
			s.termToDocs[term] = inner
		}
		inner[id] = tf
	}
	s.docToTerms[id] = termTF
	return nil
}

// RemoveDocument unlinks id from both indices. parallel selects whether the
// per-term unlink step runs across goroutines (safe: each goroutine only
// ever touches the one inner map for its own term) or sequentially.
func (s *Store) RemoveDocument(id DocID, parallel bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[id]; !exists {
		return apperrors.Newf(apperrors.ErrUnknownDoc, "id=%d", id)
	}

	terms := s.docToTerms[id]
	var emptied []Term
	if parallel && len(terms) > 1 {
		emptied = s.unlinkParallel(id, terms)
	} else {
		emptied = s.unlinkSequential(id, terms)
	}
	for _, t := range emptied {
		delete(s.termToDocs, t)
	}

	delete(s.docToTerms, id)
	delete(s.docs, id)
	delete(s.liveIDs, id)
	return nil
}

func (s *Store) unlinkSequential(id DocID, terms map[Term]float64) []Term {
	emptied := make([]Term, 0, len(terms))
	for term := range terms {
		inner := s.termToDocs[term]
		delete(inner, id)
		if len(inner) == 0 {
			emptied = append(emptied, term)
		}
	}
	return emptied
}

func (s *Store) unlinkParallel(id DocID, terms map[Term]float64) []Term {
	var wg sync.WaitGroup
	var mu sync.Mutex
	emptied := make([]Term, 0, len(terms))
	for term := range terms {
		wg.Add(1)
		go func(t Term) {
			defer wg.Done()
			inner := s.termToDocs[t]
			delete(inner, id)
			if len(inner) == 0 {
				mu.Lock()
				emptied = append(emptied, t)
				mu.Unlock()
			}
		}(term)
	}
	wg.Wait()
	return emptied
}

// WordFrequencies returns a copy of doc_to_terms[id], or an empty map if
// id is absent or has no non-stop terms.
func (s *Store) WordFrequencies(id DocID) map[Term]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.docToTerms[id]
	out := make(map[Term]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// DocMeta returns a copy of the metadata for id.
func (s *Store) DocMeta(id DocID) (DocumentMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.docs[id]
	if !ok {
		return DocumentMeta{}, false
	}
	return *meta, true
}

// DocCount returns the number of currently live documents.
func (s *Store) DocCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// IterIDs returns the currently live ids in ascending order.
func (s *Store) IterIDs() []DocID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]DocID, 0, len(s.liveIDs))
	for id := range s.liveIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// TermDocFrequency returns |term_to_docs[term]|, the document frequency
// used as the denominator of IDF.
func (s *Store) TermDocFrequency(term Term) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.termToDocs[term])
}

// PostingsSnapshot returns a copy of term_to_docs[term] (doc id -> tf).
func (s *Store) PostingsSnapshot(term Term) map[DocID]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.termToDocs[term]
	out := make(map[DocID]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ForEachPosting invokes fn for every (doc, tf) pair indexed under term,
// without copying the underlying map. fn must not mutate the Store.
func (s *Store) ForEachPosting(term Term, fn func(doc DocID, tf float64)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for doc, tf := range s.termToDocs[term] {
		fn(doc, tf)
	}
}

// DocTermSet returns the set of distinct terms in doc_to_terms[id], used by
// the deduplicator to compare document vocabularies.
func (s *Store) DocTermSet(id DocID) map[Term]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.docToTerms[id]
	out := make(map[Term]struct{}, len(src))
	for term := range src {
		out[term] = struct{}{}
	}
	return out
}

func computeRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
