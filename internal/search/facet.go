package search

import (
	"sort"
	"time"
)

// generateFacets aggregates the full filtered set (not the current page)
// into drill-down counts by type, author name, space name, tag, and a
// coarse age bucket. Output order is count-descending with value ties
// broken lexically, so a fixed input always produces the same facets.
func generateFacets(filtered []scoredDoc, now time.Time) Facets {
	types := make(map[string]int)
	authors := make(map[string]int)
	spaces := make(map[string]int)
	tags := make(map[string]int)
	timeRanges := make(map[string]int)

	for _, sd := range filtered {
		doc := sd.doc
		types[string(doc.Type)]++
		if doc.Metadata.AuthorName != "" {
			authors[doc.Metadata.AuthorName]++
		}
		if doc.Metadata.SpaceName != "" {
			spaces[doc.Metadata.SpaceName]++
		}
		for _, tag := range doc.Metadata.Tags {
			tags[tag]++
		}
		timeRanges[ageBucket(doc.CreatedAt, now)]++
	}

	return Facets{
		Types:      facetValues(types),
		Authors:    facetValues(authors),
		Spaces:     facetValues(spaces),
		Tags:       facetValues(tags),
		TimeRanges: facetValues(timeRanges),
	}
}

func ageBucket(createdAt, now time.Time) string {
	age := now.Sub(createdAt)
	switch {
	case age <= time.Hour:
		return "Last hour"
	case age <= 24*time.Hour:
		return "Today"
	case age <= 7*24*time.Hour:
		return "This week"
	case age <= 30*24*time.Hour:
		return "This month"
	}
	return "Older"
}

func facetValues(counts map[string]int) []FacetValue {
	values := make([]FacetValue, 0, len(counts))
	for value, count := range counts {
		values = append(values, FacetValue{Value: value, Count: count})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	return values
}
