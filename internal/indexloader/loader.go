// Package indexloader applies document events from Kafka to the in-memory
// search engine and re-seeds the engine from the catalog at startup.
package indexloader

import (
	"context"
	"log/slog"
	"time"

	"github.com/campuslabs/discovery/internal/analytics"
	"github.com/campuslabs/discovery/internal/catalog"
	"github.com/campuslabs/discovery/internal/ingest"
	"github.com/campuslabs/discovery/internal/search"
	searchcache "github.com/campuslabs/discovery/internal/search/cache"
	"github.com/campuslabs/discovery/pkg/kafka"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/metrics"
)

// Loader wires the documents topic into the engine. Catalog, cache,
// collector, and metrics are all optional; a nil dependency disables the
// corresponding side effect.
type Loader struct {
	engine    *search.Engine
	catalog   *catalog.Catalog
	cache     *searchcache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a Loader for the given engine.
func New(engine *search.Engine, cat *catalog.Catalog, cache *searchcache.QueryCache, collector *analytics.Collector, m *metrics.Metrics) *Loader {
	return &Loader{
		engine:    engine,
		catalog:   cat,
		cache:     cache,
		collector: collector,
		metrics:   m,
		logger:    logger.WithComponent("index-loader"),
	}
}

// Seed loads every active catalog document into the engine. Called once at
// startup before the consumer starts; the fallback demonstration dataset is
// the caller's concern when no catalog is configured.
func (l *Loader) Seed(ctx context.Context) (int, error) {
	if l.catalog == nil {
		return 0, nil
	}
	docs, err := l.catalog.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	for _, doc := range docs {
		l.engine.IndexDocument(doc)
	}
	l.syncDocCount()
	l.logger.Info("index seeded from catalog", "documents", len(docs))
	return len(docs), nil
}

// Handler returns the Kafka MessageHandler that applies document events.
// Updates go through remove-then-add so stale postings are fully retracted.
// Malformed events are logged and dropped rather than redelivered forever.
func (l *Loader) Handler() kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[ingest.DocumentEvent](value)
		if err != nil {
			l.logger.Error("failed to decode document event", "key", string(key), "error", err)
			return nil
		}

		switch event.Op {
		case ingest.OpUpsert:
			l.engine.RemoveDocument(event.Document.ID)
			l.engine.IndexDocument(event.Document)
			if l.metrics != nil {
				l.metrics.DocsIndexedTotal.Inc()
			}
			l.track(analytics.IndexEvent{
				Type:       analytics.EventIndexDoc,
				DocumentID: event.Document.ID,
				DocType:    string(event.Document.Type),
				Timestamp:  time.Now().UTC(),
			})
			if l.catalog != nil {
				if err := l.catalog.SetStatus(ctx, event.Document.ID, catalog.StatusIndexed); err != nil {
					l.logger.Error("failed to mark document indexed",
						"doc_id", event.Document.ID,
						"error", err,
					)
				}
			}
		case ingest.OpDelete:
			l.engine.RemoveDocument(event.DocumentID)
			if l.metrics != nil {
				l.metrics.DocsRemovedTotal.Inc()
			}
			l.track(analytics.IndexEvent{
				Type:       analytics.EventRemoveDoc,
				DocumentID: event.DocumentID,
				Timestamp:  time.Now().UTC(),
			})
		default:
			l.logger.Warn("unknown document event op", "op", event.Op, "key", string(key))
			return nil
		}

		l.syncDocCount()
		l.invalidateCache(ctx)
		return nil
	}
}

func (l *Loader) track(event analytics.IndexEvent) {
	if l.collector != nil {
		l.collector.Track(event)
	}
}

func (l *Loader) syncDocCount() {
	if l.metrics != nil {
		l.metrics.IndexDocCount.Set(float64(l.engine.DocCount()))
	}
}

func (l *Loader) invalidateCache(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx); err != nil {
		l.logger.Error("cache invalidation after index mutation failed", "error", err)
	}
}
