// Package cache implements a Redis-backed search result cache. Concurrent
// identical misses are collapsed through singleflight so the engine computes
// each distinct query once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/campuslabs/discovery/internal/search"
	"github.com/campuslabs/discovery/pkg/config"
	"github.com/campuslabs/discovery/pkg/logger"
	pkgredis "github.com/campuslabs/discovery/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "discovery:search:"

// QueryCache caches search.Result values keyed by a digest of the full
// query (text, filters, sort, type, and page window).
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a QueryCache over an established Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: logger.WithComponent("query-cache"),
	}
}

// Get returns the cached result for q, if present.
func (c *QueryCache) Get(ctx context.Context, q search.Query) (*search.Result, bool) {
	key := c.buildKey(q)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result search.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", q.Text, "key", key)
	return &result, true
}

// Set stores a result for q with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, q search.Query, result *search.Result) {
	key := c.buildKey(q)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for q or computes and stores it.
// The returned bool reports whether the result came from cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	q search.Query,
	computeFn func() (*search.Result, error),
) (*search.Result, bool, error) {
	if result, ok := c.Get(ctx, q); ok {
		return result, true, nil
	}
	key := c.buildKey(q)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.Get(ctx, q); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, q, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*search.Result), false, nil
}

// Invalidate deletes every cached search result. Called after index
// mutations so stale pages never outlive a document update.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(q search.Query) string {
	hash := sha256.Sum256([]byte(canonicalQuery(q)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// canonicalQuery renders a query as a stable string so equivalent queries
// share one cache entry regardless of term or filter-list order.
func canonicalQuery(q search.Query) string {
	terms := strings.Fields(strings.ToLower(q.Text))
	sort.Strings(terms)

	parts := []string{
		strings.Join(terms, ","),
		"type=" + string(q.Type),
		"sort=" + string(q.SortBy),
		fmt.Sprintf("page=%d,limit=%d", q.Pagination.Page, q.Pagination.Limit),
		"range=" + string(q.Filters.TimeRange),
		"authors=" + sortedList(q.Filters.Authors),
		"spaces=" + sortedList(q.Filters.Spaces),
		"tags=" + sortedList(q.Filters.Tags),
		"posttypes=" + sortedList(q.Filters.PostTypes),
		"usertypes=" + sortedList(q.Filters.UserTypes),
		"locations=" + sortedList(q.Filters.Locations),
		fmt.Sprintf("mineng=%d", q.Filters.MinEngagement),
	}
	if q.Filters.Verified != nil {
		parts = append(parts, fmt.Sprintf("verified=%t", *q.Filters.Verified))
	}
	if q.Filters.HasAttachments != nil {
		parts = append(parts, fmt.Sprintf("attachments=%t", *q.Filters.HasAttachments))
	}
	return strings.Join(parts, "|")
}

func sortedList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
