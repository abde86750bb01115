// Package printer formats engine results for console output.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/searcher/ranker"
)

// ScoredDoc prints one ranked result as "{ document_id = 42, relevance =
// 0.173287, rating = 2 }", the format the original project's document
// stream operator produced.
func ScoredDoc(w io.Writer, d ranker.ScoredDoc) {
	fmt.Fprintf(w, "{ document_id = %d, relevance = %f, rating = %d }\n", d.ID, d.Relevance, d.Rating)
}

// ScoredDocs prints every result in docs, one per line.
func ScoredDocs(w io.Writer, docs []ranker.ScoredDoc) {
	for _, d := range docs {
		ScoredDoc(w, d)
	}
}

// MatchResult prints a MatchDocument outcome as "{ document_id = 42,
// status = ACTUAL, words = brown city }".
func MatchResult(w io.Writer, id int, status index.StatusTag, terms []string) {
	fmt.Fprintf(w, "{ document_id = %d, status = %s, words = %s }\n", id, status, strings.Join(terms, " "))
}

// RequestLogSummary prints the current empty-result count and window size.
func RequestLogSummary(w io.Writer, noResultCount, windowLen int) {
	fmt.Fprintf(w, "Total empty requests: %d (window: %d)\n", noResultCount, windowLen)
}
