// Package handler translates HTTP query parameters into engine queries and
// serves the search, suggest, and cache admin endpoints.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campuslabs/discovery/internal/analytics"
	"github.com/campuslabs/discovery/internal/search"
	searchcache "github.com/campuslabs/discovery/internal/search/cache"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/metrics"
)

// Handler serves the search API. Cache, collector, and metrics are optional.
type Handler struct {
	engine       *search.Engine
	cache        *searchcache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	maxLimit     int
	logger       *slog.Logger
}

// New creates a Handler around an engine.
func New(engine *search.Engine, cache *searchcache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultLimit, maxLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &Handler{
		engine:       engine,
		cache:        cache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger.WithComponent("search-handler"),
	}
}

// Search handles GET /api/v1/search. An empty q is a browse-all query, so
// it is accepted rather than rejected.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query, err := h.parseQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result *search.Result
	cacheHit := false
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, query, func() (*search.Result, error) {
			res := h.engine.Search(query)
			return &res, nil
		})
		if err != nil {
			log.Error("search execution failed", "query", query.Text, "error", err)
			h.observe("error", cacheHit, start, 0)
			h.writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
	} else {
		res := h.engine.Search(query)
		result = &res
	}

	latencyMs := time.Since(start).Milliseconds()
	outcome := "ok"
	if result.Total == 0 {
		outcome = "zero_result"
	}
	h.observe(outcome, cacheHit, start, len(result.Items))

	log.Info("search completed",
		"query", query.Text,
		"type", query.Type,
		"total", result.Total,
		"returned", len(result.Items),
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)

	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		h.collector.Track(analytics.SearchEvent{
			Type:       eventType,
			Query:      query.Text,
			SearchType: string(query.Type),
			SortBy:     string(query.SortBy),
			TotalHits:  result.Total,
			Returned:   len(result.Items),
			LatencyMs:  latencyMs,
			CacheHit:   cacheHit,
			Timestamp:  time.Now().UTC(),
			RequestID:  logger.RequestID(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Suggest handles GET /api/v1/suggest.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": h.engine.Suggest(q, limit),
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

// parseQuery maps URL query parameters onto a search.Query. List parameters
// accept comma-separated values.
func (h *Handler) parseQuery(r *http.Request) (search.Query, error) {
	params := r.URL.Query()

	query := search.Query{
		Text:   params.Get("q"),
		Type:   search.SearchAll,
		SortBy: search.SortRelevance,
		Pagination: search.Pagination{
			Page:  1,
			Limit: h.defaultLimit,
		},
	}

	if v := params.Get("type"); v != "" {
		st := search.SearchType(v)
		switch st {
		case search.SearchAll, search.SearchPosts, search.SearchUsers,
			search.SearchSpaces, search.SearchTools, search.SearchEvents:
			query.Type = st
		default:
			return query, &badParamError{"type", v}
		}
	}
	if v := params.Get("sort"); v != "" {
		sm := search.SortMode(v)
		switch sm {
		case search.SortRelevance, search.SortRecent, search.SortPopular, search.SortTrending:
			query.SortBy = sm
		default:
			return query, &badParamError{"sort", v}
		}
	}
	if v := params.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return query, &badParamError{"page", v}
		}
		query.Pagination.Page = page
	}
	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return query, &badParamError{"limit", v}
		}
		if limit > h.maxLimit {
			limit = h.maxLimit
		}
		query.Pagination.Limit = limit
	}
	if v := params.Get("time_range"); v != "" {
		tr := search.TimeRange(v)
		switch tr {
		case search.RangeHour, search.RangeDay, search.RangeWeek,
			search.RangeMonth, search.RangeYear, search.RangeAll:
			query.Filters.TimeRange = tr
		default:
			return query, &badParamError{"time_range", v}
		}
	}
	query.Filters.Authors = splitParam(params.Get("authors"))
	query.Filters.Spaces = splitParam(params.Get("spaces"))
	query.Filters.Tags = splitParam(params.Get("tags"))
	query.Filters.PostTypes = splitParam(params.Get("post_types"))
	query.Filters.UserTypes = splitParam(params.Get("user_types"))
	query.Filters.Locations = splitParam(params.Get("locations"))
	if v := params.Get("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return query, &badParamError{"verified", v}
		}
		query.Filters.Verified = &verified
	}
	if v := params.Get("has_attachments"); v != "" {
		has, err := strconv.ParseBool(v)
		if err != nil {
			return query, &badParamError{"has_attachments", v}
		}
		query.Filters.HasAttachments = &has
	}
	if v := params.Get("min_engagement"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil || min < 0 {
			return query, &badParamError{"min_engagement", v}
		}
		query.Filters.MinEngagement = min
	}
	return query, nil
}

func (h *Handler) observe(outcome string, cacheHit bool, start time.Time, returned int) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
	}
	if h.cache == nil {
		cacheStatus = "disabled"
	}
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(time.Since(start).Seconds())
	h.metrics.SearchResultsCount.Observe(float64(returned))
	if cacheHit {
		h.metrics.CacheHitsTotal.Inc()
	} else if h.cache != nil {
		h.metrics.CacheMissesTotal.Inc()
	}
}

type badParamError struct {
	param string
	value string
}

func (e *badParamError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for parameter " + strconv.Quote(e.param)
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	values := parts[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
