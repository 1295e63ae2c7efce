package search

import (
	"testing"
	"time"

	"github.com/campuslabs/discovery/internal/document"
)

func TestGenerateFacets(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	filtered := []scoredDoc{
		{doc: document.Document{
			Type: document.TypePost, CreatedAt: now.Add(-30 * time.Minute),
			Metadata: document.Metadata{AuthorName: "Maya Chen", SpaceName: "CS Hub", Tags: []string{"cs", "study"}},
		}},
		{doc: document.Document{
			Type: document.TypePost, CreatedAt: now.Add(-5 * time.Hour),
			Metadata: document.Metadata{AuthorName: "Maya Chen", Tags: []string{"cs"}},
		}},
		{doc: document.Document{
			Type: document.TypeEvent, CreatedAt: now.Add(-3 * 24 * time.Hour),
			Metadata: document.Metadata{SpaceName: "CS Hub", Tags: []string{"study"}},
		}},
		{doc: document.Document{
			Type: document.TypeUser, CreatedAt: now.Add(-200 * 24 * time.Hour),
		}},
	}

	facets := generateFacets(filtered, now)

	sum := 0
	for _, fv := range facets.Types {
		sum += fv.Count
	}
	if sum != len(filtered) {
		t.Errorf("type facet counts sum to %d, want %d", sum, len(filtered))
	}
	if facets.Types[0].Value != "post" || facets.Types[0].Count != 2 {
		t.Errorf("top type facet = %+v, want post/2", facets.Types[0])
	}

	if len(facets.Authors) != 1 || facets.Authors[0].Value != "Maya Chen" || facets.Authors[0].Count != 2 {
		t.Errorf("authors facet = %+v, want only Maya Chen with 2", facets.Authors)
	}
	if len(facets.Spaces) != 1 || facets.Spaces[0].Count != 2 {
		t.Errorf("spaces facet = %+v, want CS Hub with 2", facets.Spaces)
	}

	wantTags := []FacetValue{{Value: "cs", Count: 2}, {Value: "study", Count: 2}}
	if len(facets.Tags) != 2 {
		t.Fatalf("tags facet = %+v, want 2 values", facets.Tags)
	}
	for i, want := range wantTags {
		if facets.Tags[i] != want {
			t.Errorf("tags[%d] = %+v, want %+v (count desc, value tiebreak)", i, facets.Tags[i], want)
		}
	}

	buckets := make(map[string]int)
	for _, fv := range facets.TimeRanges {
		buckets[fv.Value] = fv.Count
	}
	for bucket, want := range map[string]int{"Last hour": 1, "Today": 1, "This week": 1, "Older": 1} {
		if buckets[bucket] != want {
			t.Errorf("time bucket %q = %d, want %d", bucket, buckets[bucket], want)
		}
	}
}

func TestAgeBucket(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Minute, "Last hour"},
		{time.Hour, "Last hour"},
		{5 * time.Hour, "Today"},
		{3 * 24 * time.Hour, "This week"},
		{20 * 24 * time.Hour, "This month"},
		{90 * 24 * time.Hour, "Older"},
	}
	for _, tt := range tests {
		if got := ageBucket(now.Add(-tt.age), now); got != tt.want {
			t.Errorf("ageBucket(age=%v) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestGenerateFacetsEmptySet(t *testing.T) {
	facets := generateFacets(nil, time.Now())
	if len(facets.Types) != 0 || len(facets.Authors) != 0 || len(facets.Tags) != 0 {
		t.Errorf("empty input should produce empty facets, got %+v", facets)
	}
}
