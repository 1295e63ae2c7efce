package search

import (
	"math"
	"sort"
	"time"
)

// sortResults orders the filtered set per the requested mode. Score ties
// break on document id so repeated queries return a stable order.
func sortResults(scored []scoredDoc, sortBy SortMode, now time.Time) {
	switch sortBy {
	case SortRecent:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].doc.CreatedAt.After(scored[j].doc.CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].doc.Metadata.Engagement > scored[j].doc.Metadata.Engagement
		})
	case SortTrending:
		sort.SliceStable(scored, func(i, j int) bool {
			return trendingScore(scored[i], now) > trendingScore(scored[j], now)
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].doc.ID < scored[j].doc.ID
		})
	}
}

// trendingScore is engagement per day of age, independent of the relevance
// score. A same-day post divides by one, so modest fresh engagement can
// outrank a large stale total.
func trendingScore(sd scoredDoc, now time.Time) float64 {
	days := now.Sub(sd.doc.CreatedAt).Hours() / 24
	return float64(sd.doc.Metadata.Engagement) / math.Max(1, days)
}

// paginate projects one one-indexed page of the sorted set into result
// items. Total and HasMore are computed against the full filtered length.
func paginate(sorted []scoredDoc, p Pagination) (items []Item, hasMore bool) {
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	hasMore = end < len(sorted)

	if start < 0 || start >= len(sorted) {
		return []Item{}, hasMore
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	items = make([]Item, 0, end-start)
	for _, sd := range sorted[start:end] {
		highlights := sd.highlights
		if highlights == nil {
			highlights = []Highlight{}
		}
		items = append(items, Item{
			ID:         sd.doc.ID,
			Type:       sd.doc.Type,
			Title:      sd.doc.Title,
			Content:    sd.doc.Content,
			Snippet:    sd.snippet,
			Score:      sd.score,
			Highlights: highlights,
			Metadata:   sd.doc.Metadata,
			CreatedAt:  sd.doc.CreatedAt,
			UpdatedAt:  sd.doc.UpdatedAt,
		})
	}
	return items, hasMore
}
