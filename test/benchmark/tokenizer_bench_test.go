package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ImZritel/y-cpp-my/internal/tokenizer"
)

var sampleTexts = map[string]string{
	"short": "the quick brown fox jumps over the lazy dog",
	"medium": `in memory search engines accumulate relevance across a sharded
		concurrent map so that plus terms and minus terms can be evaluated without
		a single global lock guarding the whole index store`,
	"long": strings.Repeat(`information retrieval systems tokenize raw text on whitespace
		before computing term frequency and inverse document frequency against the
		live document count, then truncate to the top ranked results with a bounded
		heap instead of sorting the entire candidate set. `, 20),
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				terms := tokenizer.Tokenize(text)
				_ = terms
			}
		})
	}
}

func BenchmarkTokenizeParallel(b *testing.B) {
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			terms := tokenizer.Tokenize(text)
			_ = terms
		}
	})
}

func BenchmarkHasControlByte(b *testing.B) {
	words := []string{
		"curly", "fashionable", "groomed", "expressive", "starling",
		"collar", "tail", "eyes", "cat", "dog",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range words {
			_ = tokenizer.HasControlByte(w)
		}
	}
}

func BenchmarkTokenizeVaryingSize(b *testing.B) {
	sizes := []int{10, 100, 500, 1000, 5000}
	baseWord := "curly cat fluffy tail groomed eyes "
	for _, size := range sizes {
		text := strings.Repeat(baseWord, size/len(baseWord)+1)[:size]
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				terms := tokenizer.Tokenize(text)
				_ = terms
			}
		})
	}
}
