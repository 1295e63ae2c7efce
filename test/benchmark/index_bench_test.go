package benchmark

import (
	"fmt"
	"testing"
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index"
)

func benchDoc(i int) document.Document {
	return document.Document{
		ID:        fmt.Sprintf("doc-%d", i),
		Type:      document.TypePost,
		Title:     "campus discovery benchmark",
		Content:   "this is a benchmark document with several terms for measuring the indexing performance of the inverted index",
		CreatedAt: time.Now(),
	}
}

// BenchmarkIndexAdd measures per-document insert throughput into the
// in-memory inverted index.
func BenchmarkIndexAdd(b *testing.B) {
	ix := index.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Add(benchDoc(i))
	}
}

// BenchmarkIndexCandidates measures single-term candidate retrieval over
// 10 000 documents.
func BenchmarkIndexCandidates(b *testing.B) {
	ix := index.New()
	for i := 0; i < 10000; i++ {
		ix.Add(benchDoc(i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		candidates := ix.Candidates([]string{"benchmark"}, "")
		_ = candidates
	}
}

// BenchmarkIndexCandidatesParallel measures concurrent read throughput.
func BenchmarkIndexCandidatesParallel(b *testing.B) {
	ix := index.New()
	for i := 0; i < 10000; i++ {
		ix.Add(benchDoc(i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			candidates := ix.Candidates([]string{"benchmark"}, "")
			_ = candidates
		}
	})
}

// BenchmarkIndexAddRemove measures the full document update cycle.
func BenchmarkIndexAddRemove(b *testing.B) {
	ix := index.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := benchDoc(i)
		ix.Add(doc)
		ix.Remove(doc.ID)
	}
}
