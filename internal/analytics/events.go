// Package analytics collects search and indexing events, ships them to
// Kafka, and aggregates them in-process for the stats endpoint.
package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventIndexDoc   EventType = "index_document"
	EventRemoveDoc  EventType = "remove_document"
	EventZeroResult EventType = "zero_result"
)

// SearchEvent describes one executed query.
type SearchEvent struct {
	Type       EventType `json:"type"`
	Query      string    `json:"query"`
	SearchType string    `json:"search_type"`
	SortBy     string    `json:"sort_by"`
	TotalHits  int       `json:"total_hits"`
	Returned   int       `json:"returned"`
	LatencyMs  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
}

// IndexEvent describes one document added to or removed from the index.
type IndexEvent struct {
	Type       EventType `json:"type"`
	DocumentID string    `json:"document_id"`
	DocType    string    `json:"doc_type"`
	Timestamp  time.Time `json:"timestamp"`
}
