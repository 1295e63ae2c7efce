package search

import (
	"time"

	"github.com/campuslabs/discovery/internal/document"
)

// TimeRange restricts results to a rolling window ending now.
type TimeRange string

const (
	RangeHour  TimeRange = "hour"
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// SortMode selects the result ordering.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortRecent    SortMode = "recent"
	SortPopular   SortMode = "popular"
	SortTrending  SortMode = "trending"
)

// SearchType scopes a query to one document type, or to all of them.
type SearchType string

const (
	SearchAll    SearchType = "all"
	SearchPosts  SearchType = "posts"
	SearchUsers  SearchType = "users"
	SearchSpaces SearchType = "spaces"
	SearchTools  SearchType = "tools"
	SearchEvents SearchType = "events"
)

// DocType maps the plural query scope onto the document type it selects.
// SearchAll and unknown values map to the empty type, meaning no filter.
func (s SearchType) DocType() document.DocType {
	switch s {
	case SearchPosts:
		return document.TypePost
	case SearchUsers:
		return document.TypeUser
	case SearchSpaces:
		return document.TypeSpace
	case SearchTools:
		return document.TypeTool
	case SearchEvents:
		return document.TypeEvent
	}
	return ""
}

// Filters is the AND-conjunction of structured predicates applied after
// scoring. Nil/empty fields disable the corresponding predicate. List
// filters on optional metadata fields (Authors, Spaces, PostTypes,
// UserTypes, Locations) pass documents that lack the field entirely; Tags
// requires a non-empty intersection.
type Filters struct {
	TimeRange      TimeRange `json:"timeRange,omitempty"`
	Authors        []string  `json:"authors,omitempty"`
	Spaces         []string  `json:"spaces,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	PostTypes      []string  `json:"postTypes,omitempty"`
	UserTypes      []string  `json:"userTypes,omitempty"`
	Locations      []string  `json:"locations,omitempty"`
	Verified       *bool     `json:"verified,omitempty"`
	HasAttachments *bool     `json:"hasAttachments,omitempty"`
	MinEngagement  int       `json:"minEngagement,omitempty"`
}

// Pagination selects a one-indexed page of results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Query is the full search request.
type Query struct {
	Text       string     `json:"query"`
	Filters    Filters    `json:"filters"`
	Pagination Pagination `json:"pagination"`
	SortBy     SortMode   `json:"sortBy"`
	Type       SearchType `json:"searchType"`
}

// Highlight marks one matched region of a document field.
type Highlight struct {
	Field      string `json:"field"`
	Text       string `json:"text"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

// Item is one search hit as returned to callers.
type Item struct {
	ID         string            `json:"id"`
	Type       document.DocType  `json:"type"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Snippet    string            `json:"snippet"`
	Score      float64           `json:"score"`
	Highlights []Highlight       `json:"highlights"`
	Metadata   document.Metadata `json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// FacetValue is one bucket in a facet dimension.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets aggregates the full filtered result set (not just the current
// page) along the dimensions the UI renders as drill-downs.
type Facets struct {
	Types      []FacetValue `json:"types"`
	Authors    []FacetValue `json:"authors"`
	Spaces     []FacetValue `json:"spaces"`
	Tags       []FacetValue `json:"tags"`
	TimeRanges []FacetValue `json:"timeRanges"`
}

// Result is the full response for one search call.
type Result struct {
	Items        []Item   `json:"items"`
	Total        int      `json:"total"`
	Page         int      `json:"page"`
	HasMore      bool     `json:"hasMore"`
	Suggestions  []string `json:"suggestions"`
	Facets       Facets   `json:"facets"`
	SearchTimeMs int64    `json:"searchTime"`
}

// Suggestion is one standalone autocomplete suggestion.
type Suggestion struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// scoredDoc is the internal pipeline record carrying a document through
// scoring, filtering, and sorting before projection into an Item.
type scoredDoc struct {
	doc        document.Document
	score      float64
	highlights []Highlight
	snippet    string
}
