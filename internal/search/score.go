package search

import (
	"math"
	"strings"
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index/tokenizer"
)

const (
	highlightWindow   = 20
	snippetMaxLen     = 200
	recencyFloor      = 0.5
	recencyHalfWindow = 365.0
)

// typeBoosts weight document kinds against one another; tools and people
// surface slightly ahead of plain posts for the same textual relevance.
var typeBoosts = map[document.DocType]float64{
	document.TypePost:  1.0,
	document.TypeUser:  1.2,
	document.TypeSpace: 1.1,
	document.TypeTool:  1.3,
	document.TypeEvent: 1.1,
}

// scoreDocuments computes a TF-IDF relevance score for every candidate,
// then applies the type, recency, engagement, and exact-phrase boost
// multipliers in that order. Snippets and highlights are generated here so
// the rest of the pipeline works on plain scoredDoc records.
func (e *Engine) scoreDocuments(candidates []document.Document, tokens []string, rawQuery string, now time.Time) []scoredDoc {
	totalDocs := e.index.DocCount()
	phrases := quotedPhrases(rawQuery)

	scored := make([]scoredDoc, 0, len(candidates))
	for _, doc := range candidates {
		docTokens := tokenizer.Tokenize(doc.Content + " " + doc.Title)
		var score float64
		var highlights []Highlight

		for _, token := range tokens {
			tf := termFrequency(token, docTokens)
			if tf == 0 {
				continue
			}
			df := e.index.TokenDocCount(token)
			idf := math.Log(float64(totalDocs) / float64(df+1))
			score += tf * idf

			if h, ok := highlightFor(token, doc.Content); ok {
				highlights = append(highlights, h)
			}
		}

		score *= typeBoost(doc.Type)
		score *= recencyBoost(doc.CreatedAt, now)
		score *= engagementBoost(doc.Metadata.Engagement)
		for _, phrase := range phrases {
			if containsFold(doc.Content, phrase) || containsFold(doc.Title, phrase) {
				score *= 2
			}
		}

		scored = append(scored, scoredDoc{
			doc:        doc,
			score:      score,
			highlights: highlights,
			snippet:    makeSnippet(doc.Content, tokens),
		})
	}
	return scored
}

// termFrequency is the token's occurrence count divided by the document's
// total token count, zero for an empty document.
func termFrequency(token string, docTokens []string) float64 {
	if len(docTokens) == 0 {
		return 0
	}
	count := 0
	for _, t := range docTokens {
		if t == token {
			count++
		}
	}
	return float64(count) / float64(len(docTokens))
}

func typeBoost(t document.DocType) float64 {
	if boost, ok := typeBoosts[t]; ok {
		return boost
	}
	return 1.0
}

// recencyBoost decays linearly from 1.0 to a floor of 0.5 over one year;
// documents older than a year never drop below half credit.
func recencyBoost(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	return math.Max(recencyFloor, 1-days/recencyHalfWindow)
}

// engagementBoost is 1 + ln(engagement+1)/10, exactly 1.0 for untouched
// documents.
func engagementBoost(engagement int) float64 {
	if engagement < 0 {
		engagement = 0
	}
	return 1 + math.Log(float64(engagement)+1)/10
}

// quotedPhrases extracts the double-quoted substrings of a raw query, in
// order. An unterminated quote contributes nothing.
func quotedPhrases(query string) []string {
	var phrases []string
	for {
		start := strings.IndexByte(query, '"')
		if start < 0 {
			break
		}
		rest := query[start+1:]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		if end > 0 {
			phrases = append(phrases, rest[:end])
		}
		query = rest[end+1:]
	}
	return phrases
}

// highlightFor locates the first case-insensitive occurrence of token in
// content and extracts a window of twenty characters either side, clamped
// to the string bounds. At most one highlight per matched token.
func highlightFor(token, content string) (Highlight, bool) {
	idx := strings.Index(strings.ToLower(content), token)
	if idx < 0 {
		return Highlight{}, false
	}
	start := idx - highlightWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(token) + highlightWindow
	if end > len(content) {
		end = len(content)
	}
	return Highlight{
		Field:      "content",
		Text:       content[start:end],
		StartIndex: start,
		EndIndex:   end,
	}, true
}

// makeSnippet splits content into sentences and returns the one containing
// the most query tokens, trimmed and truncated to 200 characters. Ties keep
// the earliest sentence; with no matches the first sentence wins.
func makeSnippet(content string, tokens []string) string {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return ""
	}
	best := sentences[0]
	bestCount := -1
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		count := 0
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				count++
			}
		}
		if count > bestCount {
			best = sentence
			bestCount = count
		}
	}
	best = strings.TrimSpace(best)
	if len(best) > snippetMaxLen {
		best = best[:snippetMaxLen] + "..."
	}
	return best
}

func splitSentences(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
