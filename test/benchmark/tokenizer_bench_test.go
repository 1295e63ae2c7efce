// Package benchmark contains Go benchmarks for the tokenizer, inverted
// index, and search pipeline, measuring throughput and allocation behaviour.
package benchmark

import (
	"strings"
	"testing"

	"github.com/campuslabs/discovery/internal/index/tokenizer"
)

var sampleTexts = map[string]string{
	"short": "Study group forming for the CS 201 midterm next tuesday",
	"medium": `The campus makerspace is hosting an open workshop this weekend covering
        3d printing, laser cutting, and basic electronics. All skill levels welcome,
        no prior experience required. Bring a project idea or join one of the group
        builds. Safety training runs at the top of every hour and takes about twenty
        minutes. Snacks provided by the engineering student council.`,
	"long": strings.Repeat(`Campus discovery surfaces posts, people, spaces, tools, and
        events through a single search box. Text is normalized through lowercasing,
        punctuation stripping, and suffix stemming before being matched against the
        inverted index. Hashtags and mentions survive normalization so community
        conventions stay searchable. Results are ranked by term frequency weighted
        against document frequency, then boosted for recency and engagement so the
        feed favors what the campus is talking about right now. `, 20),
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := tokenizer.Tokenize(text)
				_ = tokens
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
			tokens := tokenizer.Tokenize(text)
			_ = tokens
		}
	})
}
