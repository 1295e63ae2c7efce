package search

import (
	"strings"

	"github.com/campuslabs/discovery/internal/index/tokenizer"
)

const maxSuggestions = 5

// SuggestTables holds the seed data behind both suggestion mechanisms.
// They are injected at engine construction so deployments can swap in
// campus-specific vocabularies without code changes.
type SuggestTables struct {
	// CommonQueries are matched by token overlap against the live query.
	CommonQueries []string
	// Corrections maps frequent typos to their replacement, applied by
	// substring replace over the raw query text.
	Corrections map[string]string
	// PopularQueries feed the standalone autocomplete endpoint via
	// case-insensitive substring containment.
	PopularQueries []string
}

// DefaultSuggestTables returns the stock campus vocabulary.
func DefaultSuggestTables() SuggestTables {
	return SuggestTables{
		CommonQueries: []string{
			"study groups near me",
			"cs study group",
			"campus events this week",
			"intramural sports",
			"free food on campus",
			"research opportunities",
			"tutoring center hours",
			"club fair",
			"office hours",
			"career fair prep",
		},
		Corrections: map[string]string{
			"libary":     "library",
			"calender":   "calendar",
			"proffesor":  "professor",
			"schedual":   "schedule",
			"dorm room":  "housing",
			"intermural": "intramural",
		},
		PopularQueries: []string{
			"study groups",
			"campus events",
			"student clubs",
			"research opportunities",
			"intramural sports",
			"office hours",
			"tutoring",
			"career fair",
			"free food",
			"housing",
		},
	}
}

// querySuggestions produces the suggestion strip attached to a search
// response: common queries sharing at least one token with the live query,
// plus typo corrections applied to the raw text. Capped at five.
func (e *Engine) querySuggestions(rawQuery string, tokens []string) []string {
	suggestions := make([]string, 0, maxSuggestions)

	if len(tokens) > 0 {
		tokenSet := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			tokenSet[t] = struct{}{}
		}
		for _, common := range e.tables.CommonQueries {
			if len(suggestions) >= maxSuggestions {
				return suggestions
			}
			for _, ct := range tokenizer.Tokenize(common) {
				if _, ok := tokenSet[ct]; ok {
					if !contains(suggestions, common) {
						suggestions = append(suggestions, common)
					}
					break
				}
			}
		}
	}

	lower := strings.ToLower(rawQuery)
	for _, c := range e.corrections {
		if len(suggestions) >= maxSuggestions {
			break
		}
		if strings.Contains(lower, c.typo) {
			suggestions = append(suggestions, strings.ReplaceAll(lower, c.typo, c.fix))
		}
	}
	return suggestions
}

// Suggest returns standalone autocomplete suggestions for a partial query
// of at least two characters, matching the popular-query table by
// case-insensitive substring containment. It never consults the index.
func (e *Engine) Suggest(query string, limit int) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = maxSuggestions
	}
	suggestions := make([]Suggestion, 0, limit)
	for _, popular := range e.tables.PopularQueries {
		if len(suggestions) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(popular), query) {
			suggestions = append(suggestions, Suggestion{
				Text:  popular,
				Type:  "query",
				Score: 1.0,
			})
		}
	}
	return suggestions
}
