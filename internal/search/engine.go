// Package search implements the campus discovery engine: TF-IDF scoring
// with type/recency/engagement boosts over an in-memory inverted index,
// followed by structured filtering, sorting, pagination, facet aggregation,
// and query suggestions.
//
// The pipeline for one query is: tokenize, retrieve candidates from the
// index (OR semantics across tokens, browse-all when the query is empty),
// score every candidate, filter, sort, paginate, then derive suggestions
// and facets from the filtered set.
package search

import (
	"log/slog"
	"sort"
	"time"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/index"
	"github.com/campuslabs/discovery/internal/index/tokenizer"
	"github.com/campuslabs/discovery/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// correction is one typo rule, kept as a sorted slice so suggestion output
// is deterministic for a fixed query.
type correction struct {
	typo string
	fix  string
}

// Engine owns one Index and exposes the search and document lifecycle
// operations. Construct it once at application wiring time and pass it to
// whatever needs it; there is no package-level instance.
type Engine struct {
	index       *index.Index
	tables      SuggestTables
	corrections []correction
	logger      *slog.Logger
	now         func() time.Time
}

// NewEngine creates an Engine over the given index with the given
// suggestion tables.
func NewEngine(ix *index.Index, tables SuggestTables) *Engine {
	corrections := make([]correction, 0, len(tables.Corrections))
	for typo, fix := range tables.Corrections {
		corrections = append(corrections, correction{typo: typo, fix: fix})
	}
	sort.Slice(corrections, func(i, j int) bool {
		return corrections[i].typo < corrections[j].typo
	})
	return &Engine{
		index:       ix,
		tables:      tables,
		corrections: corrections,
		logger:      logger.WithComponent("search-engine"),
		now:         time.Now,
	}
}

// IndexDocument makes doc retrievable. Updating an existing document goes
// through remove-then-add so stale postings are fully retracted.
func (e *Engine) IndexDocument(doc document.Document) {
	e.index.Add(doc)
	e.logger.Debug("document indexed", "id", doc.ID, "type", doc.Type)
}

// RemoveDocument retracts the document with the given id; unknown ids are
// a no-op.
func (e *Engine) RemoveDocument(id string) {
	e.index.Remove(id)
	e.logger.Debug("document removed", "id", id)
}

// DocCount returns the number of indexed documents.
func (e *Engine) DocCount() int {
	return e.index.DocCount()
}

// Search runs the full query pipeline and returns one page of results with
// facets and suggestions computed over the complete filtered set.
func (e *Engine) Search(q Query) Result {
	start := time.Now()
	now := e.now()

	page := q.Pagination.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Pagination.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	tokens := tokenizer.Tokenize(q.Text)
	candidates := e.index.Candidates(tokens, q.Type.DocType())
	scored := e.scoreDocuments(candidates, tokens, q.Text, now)
	filtered := applyFilters(scored, q.Filters, now)
	sortResults(filtered, q.SortBy, now)
	items, hasMore := paginate(filtered, Pagination{Page: page, Limit: limit})

	result := Result{
		Items:        items,
		Total:        len(filtered),
		Page:         page,
		HasMore:      hasMore,
		Suggestions:  e.querySuggestions(q.Text, tokens),
		Facets:       generateFacets(filtered, now),
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
	e.logger.Debug("search executed",
		"query", q.Text,
		"type", q.Type,
		"candidates", len(candidates),
		"total", result.Total,
		"returned", len(items),
	)
	return result
}
