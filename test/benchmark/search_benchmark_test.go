package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/ImZritel/y-cpp-my/internal/index"
	"github.com/ImZritel/y-cpp-my/internal/searcher/executor"
	"github.com/ImZritel/y-cpp-my/internal/searcher/parser"
	"github.com/ImZritel/y-cpp-my/internal/searcher/ranker"
	"github.com/ImZritel/y-cpp-my/pkg/metrics"
)

// BenchmarkQueryParse measures query parsing latency for queries of
// varying complexity.
func BenchmarkQueryParse(b *testing.B) {
	store, err := index.NewStore([]string{"a", "an", "the"})
	if err != nil {
		b.Fatal(err)
	}
	queries := []struct {
		name  string
		query string
	}{
		{"simple", "distributed systems"},
		{"with_minus", "search -analytics -platform"},
		{"long", "distributed search analytics platform indexing query processing ranking caching sharding"},
		{"long_with_minus", "distributed search analytics -platform -indexing query -processing ranking"},
	}

	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				parsed, err := parser.Parse(q.query, store.IsStopWord)
				if err != nil {
					b.Fatal(err)
				}
				_ = parsed
			}
		})
	}
}

// BenchmarkFindTop measures TF-IDF ranking under both policies at
// increasing corpus sizes.
func BenchmarkFindTop(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, numDocs := range sizes {
		store := buildStore(b, numDocs)
		r := ranker.New(store, 5000)

		b.Run(fmt.Sprintf("sequential_docs_%d", numDocs), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results, err := r.FindTop("search distributed", ranker.Predicate{}, ranker.Sequential)
				if err != nil {
					b.Fatal(err)
				}
				_ = results
			}
		})

		b.Run(fmt.Sprintf("parallel_docs_%d", numDocs), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results, err := r.FindTop("search distributed", ranker.Predicate{}, ranker.Parallel)
				if err != nil {
					b.Fatal(err)
				}
				_ = results
			}
		})
	}
}

// BenchmarkBatchExecutorProcess measures batch query throughput at
// increasing batch sizes, including duplicate queries that exercise the
// singleflight coalescing path.
func BenchmarkBatchExecutorProcess(b *testing.B) {
	store := buildStore(b, 5000)
	r := ranker.New(store, 5000)
	m := metrics.New()
	exec := executor.New(r, m)

	batchSizes := []int{1, 8, 32, 128}
	for _, size := range batchSizes {
		queries := make([]string, size)
		for i := range queries {
			queries[i] = fmt.Sprintf("search %s", []string{"distributed", "analytics", "ranking"}[i%3])
		}

		b.Run(fmt.Sprintf("batch_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results, _ := exec.Process(context.Background(), queries, ranker.Predicate{}, ranker.Sequential)
				_ = results
			}
		})
	}
}
