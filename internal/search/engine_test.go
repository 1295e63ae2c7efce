package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index"
)

// newTestEngine returns an engine with a frozen clock so recency and
// trending math is deterministic.
func newTestEngine() (*Engine, time.Time) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	e := NewEngine(index.New(), DefaultSuggestTables())
	e.now = func() time.Time { return now }
	return e, now
}

func testDoc(id string, docType document.DocType, title, content string, createdAt time.Time, engagement int) document.Document {
	return document.Document{
		ID:        id,
		Type:      docType,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Metadata:  document.Metadata{Engagement: engagement},
	}
}

func resultIDs(r Result) []string {
	out := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		out = append(out, item.ID)
	}
	return out
}

func TestSearchBasicRetrieval(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "Data Structures Study Group", "Weekly study group for CS 201.", now.Add(-time.Hour), 5))
	e.IndexDocument(testDoc("p2", document.TypePost, "Intramural Soccer", "Sign up closes friday.", now.Add(-time.Hour), 5))
	e.IndexDocument(testDoc("p3", document.TypePost, "Dining Menu", "New dining hall menu posted.", now.Add(-time.Hour), 5))

	result := e.Search(Query{Text: "study group"})

	if result.Total != 1 {
		t.Fatalf("Total = %d, want 1", result.Total)
	}
	if result.Items[0].ID != "p1" {
		t.Errorf("top hit = %s, want p1", result.Items[0].ID)
	}
	if result.Items[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", result.Items[0].Score)
	}
	if result.Page != 1 {
		t.Errorf("Page = %d, want default 1", result.Page)
	}
	if result.SearchTimeMs < 0 {
		t.Errorf("SearchTimeMs = %d, want non-negative", result.SearchTimeMs)
	}
}

func TestSearchTypeScope(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "Chess Club Tournament", "Open chess tournament saturday.", now, 0))
	e.IndexDocument(testDoc("u1", document.TypeUser, "Chess Enthusiast", "President of the chess club.", now, 0))
	e.IndexDocument(testDoc("s1", document.TypeSpace, "Chess Club", "Official chess club space.", now, 0))

	result := e.Search(Query{Text: "chess", Type: SearchUsers})
	if result.Total != 1 || result.Items[0].ID != "u1" {
		t.Errorf("users scope returned %v, want only u1", resultIDs(result))
	}

	result = e.Search(Query{Text: "chess", Type: SearchAll})
	if result.Total != 3 {
		t.Errorf("all scope Total = %d, want 3", result.Total)
	}
}

func TestSearchEmptyQueryBrowsesAll(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "one", "first post here", now, 0))
	e.IndexDocument(testDoc("p2", document.TypePost, "two", "second post here", now, 0))
	e.IndexDocument(testDoc("e1", document.TypeEvent, "three", "campus event tonight", now, 0))

	result := e.Search(Query{})
	if result.Total != 3 {
		t.Errorf("empty query Total = %d, want every indexed document", result.Total)
	}

	result = e.Search(Query{Type: SearchEvents})
	if result.Total != 1 || result.Items[0].ID != "e1" {
		t.Errorf("empty query with events scope returned %v, want [e1]", resultIDs(result))
	}
}

func TestSearchORSemantics(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("a", document.TypePost, "alpha", "only alpha content here", now, 0))
	e.IndexDocument(testDoc("b", document.TypePost, "beta", "only beta content here", now, 0))
	e.IndexDocument(testDoc("c", document.TypePost, "gamma", "neither term appears", now, 0))

	result := e.Search(Query{Text: "alpha beta"})
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2 (either term matches)", result.Total)
	}
	for _, id := range resultIDs(result) {
		if id == "c" {
			t.Error("document matching no query term was returned")
		}
	}
}

func TestSearchPagination(t *testing.T) {
	e, now := newTestEngine()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("p%d", i)
		e.IndexDocument(testDoc(id, document.TypePost, "Lecture notes", "Shared lecture notes for the midterm.", now.Add(-time.Duration(i)*time.Hour), 0))
	}

	page1 := e.Search(Query{Text: "lecture", Pagination: Pagination{Page: 1, Limit: 2}})
	if page1.Total != 5 || len(page1.Items) != 2 || !page1.HasMore {
		t.Fatalf("page 1: total=%d items=%d hasMore=%v, want 5/2/true", page1.Total, len(page1.Items), page1.HasMore)
	}

	page3 := e.Search(Query{Text: "lecture", Pagination: Pagination{Page: 3, Limit: 2}})
	if page3.Total != 5 || len(page3.Items) != 1 || page3.HasMore {
		t.Fatalf("page 3: total=%d items=%d hasMore=%v, want 5/1/false", page3.Total, len(page3.Items), page3.HasMore)
	}

	beyond := e.Search(Query{Text: "lecture", Pagination: Pagination{Page: 10, Limit: 2}})
	if beyond.Total != 5 || len(beyond.Items) != 0 || beyond.HasMore {
		t.Fatalf("page 10: total=%d items=%d hasMore=%v, want 5/0/false", beyond.Total, len(beyond.Items), beyond.HasMore)
	}

	// Total counts the filtered set, never the page.
	seen := make(map[string]bool)
	for page := 1; page <= 3; page++ {
		r := e.Search(Query{Text: "lecture", Pagination: Pagination{Page: page, Limit: 2}})
		for _, id := range resultIDs(r) {
			if seen[id] {
				t.Errorf("document %s appeared on more than one page", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 5 {
		t.Errorf("pages covered %d distinct documents, want 5", len(seen))
	}
}

func TestSearchInvalidPaginationDefaults(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "one", "some post content", now, 0))

	result := e.Search(Query{Text: "post", Pagination: Pagination{Page: -3, Limit: 0}})
	if result.Page != 1 {
		t.Errorf("Page = %d, want clamped to 1", result.Page)
	}
	if len(result.Items) != 1 {
		t.Errorf("items = %d, want 1 under the default limit", len(result.Items))
	}
}

func TestSearchFiltersApply(t *testing.T) {
	e, now := newTestEngine()
	hot := testDoc("hot", document.TypePost, "Popular thread", "Everyone is talking about the career fair.", now.Add(-time.Hour), 80)
	cold := testDoc("cold", document.TypePost, "Quiet thread", "Also about the career fair.", now.Add(-time.Hour), 2)
	e.IndexDocument(hot)
	e.IndexDocument(cold)

	result := e.Search(Query{Text: "career", Filters: Filters{MinEngagement: 50}})
	if result.Total != 1 || result.Items[0].ID != "hot" {
		t.Errorf("filtered results = %v, want only hot", resultIDs(result))
	}

	// Facets reflect the filtered set, so the excluded doc is invisible there too.
	if len(result.Facets.Types) != 1 || result.Facets.Types[0].Count != 1 {
		t.Errorf("facets = %+v, want a single post counted once", result.Facets.Types)
	}
}

func TestSearchFacetTotalsMatchFilteredSet(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "Robotics demo", "Robotics club demo day.", now.Add(-time.Hour), 0))
	e.IndexDocument(testDoc("p2", document.TypePost, "Robotics parts", "Spare robotics parts available.", now.Add(-2*24*time.Hour), 0))
	e.IndexDocument(testDoc("e1", document.TypeEvent, "Robotics showcase", "End of term robotics showcase.", now.Add(-10*24*time.Hour), 0))

	result := e.Search(Query{Text: "robotics", Pagination: Pagination{Page: 1, Limit: 1}})

	sum := 0
	for _, fv := range result.Facets.Types {
		sum += fv.Count
	}
	if sum != result.Total {
		t.Errorf("type facet counts sum to %d, want Total %d (full filtered set, not the page)", sum, result.Total)
	}
	sum = 0
	for _, fv := range result.Facets.TimeRanges {
		sum += fv.Count
	}
	if sum != result.Total {
		t.Errorf("time facet counts sum to %d, want %d", sum, result.Total)
	}
}

func TestSearchTrendingVersusPopular(t *testing.T) {
	e, now := newTestEngine()
	// Fresh doc with modest engagement against a month-old doc with a big
	// total: popular favors the total, trending favors engagement per day.
	fresh := testDoc("fresh", document.TypePost, "New thread", "Discussion about campus housing.", now.Add(-2*time.Hour), 10)
	stale := testDoc("stale", document.TypePost, "Old thread", "Long discussion about campus housing.", now.Add(-30*24*time.Hour), 100)
	e.IndexDocument(fresh)
	e.IndexDocument(stale)

	popular := e.Search(Query{Text: "housing", SortBy: SortPopular})
	if got := resultIDs(popular); got[0] != "stale" {
		t.Errorf("popular order = %v, want stale first", got)
	}

	trending := e.Search(Query{Text: "housing", SortBy: SortTrending})
	if got := resultIDs(trending); got[0] != "fresh" {
		t.Errorf("trending order = %v, want fresh first", got)
	}
}

func TestSearchRecentOrder(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("old", document.TypePost, "old", "midterm review session", now.Add(-48*time.Hour), 0))
	e.IndexDocument(testDoc("new", document.TypePost, "new", "midterm review session", now.Add(-time.Hour), 0))

	result := e.Search(Query{Text: "midterm", SortBy: SortRecent})
	if got := resultIDs(result); got[0] != "new" || got[1] != "old" {
		t.Errorf("recent order = %v, want [new old]", got)
	}
}

func TestSearchSuggestionsAttached(t *testing.T) {
	e, _ := newTestEngine()

	result := e.Search(Query{Text: "libary"})
	found := false
	for _, s := range result.Suggestions {
		if s == "library" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want the typo correction included", result.Suggestions)
	}
}

func TestIndexRemoveLifecycle(t *testing.T) {
	e, now := newTestEngine()
	e.IndexDocument(testDoc("p1", document.TypePost, "Bake sale", "Fundraiser bake sale wednesday.", now, 0))
	if e.DocCount() != 1 {
		t.Fatalf("DocCount = %d, want 1", e.DocCount())
	}

	e.RemoveDocument("p1")
	if e.DocCount() != 0 {
		t.Errorf("DocCount = %d after removal, want 0", e.DocCount())
	}
	if result := e.Search(Query{Text: "fundraiser"}); result.Total != 0 {
		t.Errorf("removed document still searchable: %v", resultIDs(result))
	}

	// Unknown ids are ignored.
	e.RemoveDocument("p1")
	e.RemoveDocument("never-indexed")
}

func TestSearchEmptyIndex(t *testing.T) {
	e, _ := newTestEngine()
	result := e.Search(Query{Text: "anything"})
	if result.Total != 0 || len(result.Items) != 0 || result.HasMore {
		t.Errorf("empty index result = %+v, want no hits", result)
	}
	if result.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}
