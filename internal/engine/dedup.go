package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/ImZritel/y-cpp-my/pkg/tracing"
)

// RemoveDuplicates scans live documents in ascending id order and removes
// every document whose term set duplicates one already seen, keeping the
// smallest id in each equivalence class. It returns the removed ids, in
// the order they were removed (ascending, since the scan itself is
// ascending).
func (e *SearchEngine) RemoveDuplicates(ctx context.Context) []int {
	var removed []int
	_ = tracing.Trace(ctx, "engine.RemoveDuplicates", func(context.Context) error {
		seen := make(map[string]struct{})
		var candidates []int
		for _, id := range e.store.IterIDs() {
			key := termSetSignature(e.store.DocTermSet(id))
			if _, dup := seen[key]; dup {
				candidates = append(candidates, id)
				continue
			}
			seen[key] = struct{}{}
		}

		for _, id := range candidates {
			if err := e.store.RemoveDocument(id, false); err != nil {
				e.logger.Warn("duplicate removal failed", "id", id, "error", err)
				continue
			}
			e.metrics.DuplicatesRemoved.Inc()
			e.logger.Info("duplicate document removed", "id", id)
			removed = append(removed, id)
		}
		return nil
	})
	return removed
}

// termSetSignature builds a canonical string key for a term set: since no
// indexed term may contain a control byte, 0x00 is a safe, unambiguous
// separator between sorted terms.
func termSetSignature(terms map[string]struct{}) string {
	keys := make([]string, 0, len(terms))
	for t := range terms {
		keys = append(keys, t)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x00")
}
