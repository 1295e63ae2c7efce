package search

import (
	"testing"

	"github.com/campuslabs/discovery/internal/index"
	"github.com/campuslabs/discovery/internal/index/tokenizer"
)

func TestQuerySuggestionsTokenOverlap(t *testing.T) {
	e, _ := newTestEngine()

	got := e.querySuggestions("study", tokenizer.Tokenize("study"))

	want := []string{"study groups near me", "cs study group"}
	if len(got) != len(want) {
		t.Fatalf("suggestions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQuerySuggestionsTypoCorrection(t *testing.T) {
	e, _ := newTestEngine()

	got := e.querySuggestions("libary hours", tokenizer.Tokenize("libary hours"))

	found := false
	for _, s := range got {
		if s == "library hours" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions = %v, want the corrected query %q included", got, "library hours")
	}
}

func TestQuerySuggestionsCapped(t *testing.T) {
	tables := SuggestTables{
		CommonQueries: []string{
			"campus events", "campus tours", "campus map",
			"campus jobs", "campus housing", "campus dining",
		},
	}
	e := NewEngine(index.New(), tables)

	got := e.querySuggestions("campus", tokenizer.Tokenize("campus"))
	if len(got) != maxSuggestions {
		t.Errorf("got %d suggestions, want cap of %d", len(got), maxSuggestions)
	}
}

func TestQuerySuggestionsEmptyQuery(t *testing.T) {
	e, _ := newTestEngine()
	if got := e.querySuggestions("", nil); len(got) != 0 {
		t.Errorf("empty query produced suggestions: %v", got)
	}
}

func TestSuggest(t *testing.T) {
	e, _ := newTestEngine()

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"prefix match", "career", 5, []string{"career fair"}},
		{"mid-string match", "food", 5, []string{"free food"}},
		{"case insensitive", "STUDY", 5, []string{"study groups"}},
		{"surrounding whitespace trimmed", "  career  ", 5, []string{"career fair"}},
		{"too short", "s", 5, []string{}},
		{"no match", "quantum", 5, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Suggest(tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Suggest(%q) returned %d suggestions, want %d", tt.query, len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Text != tt.want[i] {
					t.Errorf("Suggest(%q)[%d] = %q, want %q", tt.query, i, s.Text, tt.want[i])
				}
				if s.Type != "query" || s.Score != 1.0 {
					t.Errorf("suggestion %+v, want type query and score 1.0", s)
				}
			}
		})
	}
}

func TestSuggestLimit(t *testing.T) {
	e := NewEngine(index.New(), SuggestTables{
		PopularQueries: []string{"go talks", "go runtime", "go modules", "go generics"},
	})
	if got := e.Suggest("go", 2); len(got) != 2 {
		t.Errorf("got %d suggestions, want limit of 2", len(got))
	}
	// Non-positive limit falls back to the default cap.
	if got := e.Suggest("go", 0); len(got) != 4 {
		t.Errorf("got %d suggestions with zero limit, want all 4", len(got))
	}
}
