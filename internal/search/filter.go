package search

import "time"

// applyFilters keeps the scored documents satisfying every set predicate.
// Filtering runs after scoring: a filtered-out document still had its score
// computed. Predicates on optional metadata fields pass documents that lack
// the field; only an explicitly non-matching value excludes.
func applyFilters(scored []scoredDoc, f Filters, now time.Time) []scoredDoc {
	kept := make([]scoredDoc, 0, len(scored))
	for _, sd := range scored {
		if !matchesFilters(sd, f, now) {
			continue
		}
		kept = append(kept, sd)
	}
	return kept
}

func matchesFilters(sd scoredDoc, f Filters, now time.Time) bool {
	doc := sd.doc
	md := doc.Metadata

	if f.TimeRange != "" && f.TimeRange != RangeAll {
		if doc.CreatedAt.Before(now.Add(-rangeWindow(f.TimeRange))) {
			return false
		}
	}
	if len(f.Authors) > 0 && md.AuthorID != "" && !contains(f.Authors, md.AuthorID) {
		return false
	}
	if len(f.Spaces) > 0 && md.SpaceID != "" && !contains(f.Spaces, md.SpaceID) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(md.Tags, f.Tags) {
		return false
	}
	if len(f.PostTypes) > 0 && md.PostType != "" && !contains(f.PostTypes, md.PostType) {
		return false
	}
	if len(f.UserTypes) > 0 && md.UserType != "" && !contains(f.UserTypes, md.UserType) {
		return false
	}
	if len(f.Locations) > 0 && md.Location != "" && !contains(f.Locations, md.Location) {
		return false
	}
	if f.Verified != nil && md.IsVerified != *f.Verified {
		return false
	}
	if f.HasAttachments != nil && md.HasAttachments != *f.HasAttachments {
		return false
	}
	if f.MinEngagement > 0 && md.Engagement < f.MinEngagement {
		return false
	}
	return true
}

func rangeWindow(tr TimeRange) time.Duration {
	switch tr {
	case RangeHour:
		return time.Hour
	case RangeDay:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	case RangeYear:
		return 365 * 24 * time.Hour
	}
	return 0
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
