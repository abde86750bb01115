package matcher

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ImZritel/y-cpp-my/internal/index"
	apperrors "github.com/ImZritel/y-cpp-my/pkg/errors"
)

func TestMatchMinusWordShortCircuit(t *testing.T) {
	store, err := index.NewStore([]string{"in", "the"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddDocument(43, "the big brown deogi named shen city", index.StatusIrrelevant, []int{0, 1, 2}); err != nil {
		t.Fatal(err)
	}

	terms, status, err := Match(store, "deogi -brown", 43, Sequential)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 0 {
		t.Errorf("expected empty terms on minus-word hit, got %v", terms)
	}
	if status != index.StatusIrrelevant {
		t.Errorf("status = %v, want IRRELEVANT", status)
	}
}

func TestMatchReturnsPresentPlusTerms(t *testing.T) {
	store, _ := index.NewStore(nil)
	if err := store.AddDocument(1, "curly hair and brown eyes", index.StatusActual, nil); err != nil {
		t.Fatal(err)
	}
	terms, _, err := Match(store, "brown hair green", 1, Sequential)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(terms, []string{"brown", "hair"}) {
		t.Errorf("terms = %v, want [brown hair]", terms)
	}
}

func TestMatchUnknownDoc(t *testing.T) {
	store, _ := index.NewStore(nil)
	_, _, err := Match(store, "anything", 7, Sequential)
	if !errors.Is(err, apperrors.ErrUnknownDoc) {
		t.Errorf("expected ErrUnknownDoc, got %v", err)
	}
}

func TestMatchSequentialAndParallelAgree(t *testing.T) {
	store, _ := index.NewStore(nil)
	if err := store.AddDocument(1, "alpha beta gamma delta epsilon zeta eta theta", index.StatusActual, nil); err != nil {
		t.Fatal(err)
	}
	seqTerms, seqStatus, err := Match(store, "beta delta theta iota -kappa", 1, Sequential)
	if err != nil {
		t.Fatal(err)
	}
	parTerms, parStatus, err := Match(store, "beta delta theta iota -kappa", 1, Parallel)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seqTerms, parTerms) || seqStatus != parStatus {
		t.Errorf("sequential and parallel diverged: (%v,%v) vs (%v,%v)", seqTerms, seqStatus, parTerms, parStatus)
	}
}

func TestMatchMinusHitSkipsEvenWhenPlusTermsPresent(t *testing.T) {
	store, _ := index.NewStore(nil)
	if err := store.AddDocument(1, "brown eyes curly hair", index.StatusActual, nil); err != nil {
		t.Fatal(err)
	}
	terms, _, err := Match(store, "brown -hair", 1, Parallel)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 0 {
		t.Errorf("expected short-circuit to empty, got %v", terms)
	}
}
