package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index"
	"github.com/campuslabs/discovery/internal/search"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	engine := search.NewEngine(index.New(), search.DefaultSuggestTables())
	now := time.Now()
	docs := []document.Document{
		{ID: "p1", Type: document.TypePost, Title: "Study Group", Content: "Weekly study group for the CS midterm.", CreatedAt: now, Metadata: document.Metadata{Engagement: 12, Tags: []string{"cs"}}},
		{ID: "p2", Type: document.TypePost, Title: "Bake Sale", Content: "Fundraiser outside the union.", CreatedAt: now},
		{ID: "u1", Type: document.TypeUser, Title: "Maya Chen", Content: "CS senior, runs a study group.", CreatedAt: now},
	}
	for _, d := range docs {
		engine.IndexDocument(d)
	}
	return New(engine, nil, nil, nil, 20, 100)
}

func doSearch(t *testing.T, h *Handler, target string) (*httptest.ResponseRecorder, search.Result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	var result search.Result
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return rec, result
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, result := doSearch(t, h, "/api/v1/search?q=study")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2 (post and user both mention the term)", result.Total)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestSearchEndpointEmptyQueryBrowses(t *testing.T) {
	h := newTestHandler(t)
	rec, result := doSearch(t, h, "/api/v1/search")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (empty q is browse-all)", rec.Code)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d, want all indexed documents", result.Total)
	}
}

func TestSearchEndpointTypeScope(t *testing.T) {
	h := newTestHandler(t)
	_, result := doSearch(t, h, "/api/v1/search?q=study&type=users")
	if result.Total != 1 || result.Items[0].ID != "u1" {
		t.Errorf("users scope Total = %d, want only u1", result.Total)
	}
}

func TestSearchEndpointFilters(t *testing.T) {
	h := newTestHandler(t)
	_, result := doSearch(t, h, "/api/v1/search?q=study&tags=cs&min_engagement=5")
	if result.Total != 1 || result.Items[0].ID != "p1" {
		t.Errorf("filtered Total = %d, want only the tagged engaged post", result.Total)
	}
}

func TestSearchEndpointBadParams(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name   string
		target string
	}{
		{"unknown type", "/api/v1/search?q=x&type=widgets"},
		{"unknown sort", "/api/v1/search?q=x&sort=best"},
		{"zero page", "/api/v1/search?q=x&page=0"},
		{"non-numeric page", "/api/v1/search?q=x&page=two"},
		{"zero limit", "/api/v1/search?q=x&limit=0"},
		{"unknown time range", "/api/v1/search?q=x&time_range=decade"},
		{"bad verified flag", "/api/v1/search?q=x&verified=maybe"},
		{"negative min engagement", "/api/v1/search?q=x&min_engagement=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doSearch(t, h, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected an error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestSearchEndpointLimitClamped(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := doSearch(t, h, "/api/v1/search?limit=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (over-limit clamps, not rejects)", rec.Code)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=study", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Suggestions []search.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Suggestions) == 0 {
		t.Error("expected at least one suggestion for a popular prefix")
	}
	for _, s := range body.Suggestions {
		if s.Type != "query" {
			t.Errorf("suggestion type = %q, want query", s.Type)
		}
	}
}

func TestSuggestEndpointBadLimit(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=study&limit=-2", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCacheEndpointsWithoutCache(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CacheStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("CacheStats status = %d, want 200 with disabled marker", rec.Code)
	}
	var stats map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil || stats["status"] != "disabled" {
		t.Errorf("CacheStats body = %s, want disabled status", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.CacheInvalidate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cache/invalidate", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("CacheInvalidate status = %d, want 503 when caching is off", rec.Code)
	}
}

func TestSplitParam(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"cs", []string{"cs"}},
		{"cs,math", []string{"cs", "math"}},
		{" cs , math ", []string{"cs", "math"}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := splitParam(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitParam(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitParam(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
