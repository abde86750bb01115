// Package parser turns raw query text into the deduplicated plus/minus term
// sets the ranker and matcher operate on.
package parser

import (
	"sort"
	"strings"

	"github.com/ImZritel/y-cpp-my/internal/tokenizer"
	apperrors "github.com/ImZritel/y-cpp-my/pkg/errors"
)

// Query is a parsed search query: the terms a document must contain
// (Plus) and the terms that disqualify it (Minus). Both are sorted and
// deduplicated.
type Query struct {
	Plus  []string
	Minus []string
}

// Parse tokenizes raw on spaces, strips a leading "-" into the minus set,
// drops stop words, and validates every surviving term.
//
// A bare "-" or a term beginning with "--" is a malformed query. A term
// containing a control byte is an invalid term, checked only after the
// stop-word filter so that a stop word is never rejected for bytes no one
// will ever search on.
func Parse(raw string, isStopWord func(string) bool) (Query, error) {
	plusSet := make(map[string]struct{})
	minusSet := make(map[string]struct{})

	for _, tok := range tokenizer.Tokenize(raw) {
		minus := false
		term := tok
		if strings.HasPrefix(term, "-") {
			minus = true
			if term == "-" {
				return Query{}, apperrors.Newf(apperrors.ErrMalformedQuery, "bare %q", tok)
			}
			if strings.HasPrefix(term, "--") {
				return Query{}, apperrors.Newf(apperrors.ErrMalformedQuery, "double dash %q", tok)
			}
			term = term[1:]
		}

		if isStopWord != nil && isStopWord(term) {
			continue
		}
		if tokenizer.HasControlByte(term) {
			return Query{}, apperrors.Newf(apperrors.ErrInvalidTerm, "%q", term)
		}

		if minus {
			minusSet[term] = struct{}{}
		} else {
			plusSet[term] = struct{}{}
		}
	}

	return Query{
		Plus:  sortedKeys(plusSet),
		Minus: sortedKeys(minusSet),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
