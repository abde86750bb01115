package index

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/ImZritel/y-cpp-my/pkg/errors"
)

func TestAddDocumentComputesTermFrequency(t *testing.T) {
	store, err := NewStore([]string{"in", "the"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddDocument(42, "cat in the city", StatusActual, []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	freqs := store.WordFrequencies(42)
	if len(freqs) != 2 {
		t.Fatalf("expected 2 non-stop terms, got %d: %v", len(freqs), freqs)
	}
	sum := 0.0
	for _, tf := range freqs {
		sum += tf
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("term frequencies should sum to 1.0, got %f", sum)
	}
	if tf, ok := freqs["cat"]; !ok || math.Abs(tf-0.5) > 1e-9 {
		t.Errorf("cat tf = %v, want 0.5", tf)
	}
}

func TestAddDocumentRejectsDuplicateAndNegativeID(t *testing.T) {
	store, _ := NewStore(nil)
	if err := store.AddDocument(1, "a b", StatusActual, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.AddDocument(1, "c d", StatusActual, nil); !errors.Is(err, apperrors.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if err := store.AddDocument(-1, "c d", StatusActual, nil); !errors.Is(err, apperrors.ErrNegativeID) {
		t.Errorf("expected ErrNegativeID, got %v", err)
	}
}

func TestAddDocumentRejectsControlByte(t *testing.T) {
	store, _ := NewStore(nil)
	err := store.AddDocument(1, "clean dirty\x01term", StatusActual, nil)
	if !errors.Is(err, apperrors.ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
	if store.DocCount() != 0 {
		t.Error("a rejected AddDocument must not mutate the store")
	}
}

func TestMirrorInvariantHoldsAcrossMutation(t *testing.T) {
	store, _ := NewStore([]string{"a"})
	docs := map[int]string{
		42: "a b c d",
		43: "b c d e",
		0:  "c d e f n",
	}
	for id, text := range docs {
		if err := store.AddDocument(id, text, StatusActual, []int{1}); err != nil {
			t.Fatal(err)
		}
	}
	assertMirrorInvariant(t, store)

	if err := store.RemoveDocument(43, true); err != nil {
		t.Fatal(err)
	}
	assertMirrorInvariant(t, store)

	if _, ok := store.DocMeta(43); ok {
		t.Error("removed document still has metadata")
	}
}

func TestRemoveDocumentUnknownID(t *testing.T) {
	store, _ := NewStore(nil)
	if err := store.RemoveDocument(99, false); !errors.Is(err, apperrors.ErrUnknownDoc) {
		t.Errorf("expected ErrUnknownDoc, got %v", err)
	}
}

func TestStopWordsNeverIndexed(t *testing.T) {
	store, _ := NewStore([]string{"in", "the"})
	if err := store.AddDocument(1, "cat in the city", StatusActual, nil); err != nil {
		t.Fatal(err)
	}
	if store.TermDocFrequency("in") != 0 {
		t.Error("stop word \"in\" should never appear in term_to_docs")
	}
	if store.TermDocFrequency("cat") != 1 {
		t.Error("non-stop term \"cat\" should be indexed")
	}
}

func TestIterIDsAscending(t *testing.T) {
	store, _ := NewStore(nil)
	for _, id := range []int{5, 1, 3, 2, 4} {
		if err := store.AddDocument(id, "x", StatusActual, nil); err != nil {
			t.Fatal(err)
		}
	}
	ids := store.IterIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IterIDs not ascending: %v", ids)
		}
	}
}

func assertMirrorInvariant(t *testing.T, store *Store) {
	t.Helper()
	store.mu.RLock()
	defer store.mu.RUnlock()
	for term, docs := range store.termToDocs {
		if len(docs) == 0 {
			t.Errorf("term %q has an empty posting map (no-empty-entry invariant violated)", term)
		}
		for doc, tf := range docs {
			mirrored, ok := store.docToTerms[doc][term]
			if !ok || mirrored != tf {
				t.Errorf("mirror invariant violated for term %q doc %d: term_to_docs=%v doc_to_terms=%v", term, doc, tf, mirrored)
			}
		}
	}
	for doc, terms := range store.docToTerms {
		for term, tf := range terms {
			mirrored, ok := store.termToDocs[term][doc]
			if !ok || mirrored != tf {
				t.Errorf("mirror invariant violated for doc %d term %q", doc, term)
			}
		}
	}
}

