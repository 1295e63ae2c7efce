// Package publisher persists accepted documents to the catalog and
// publishes document events to Kafka for the search service to apply.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuslabs/discovery/internal/catalog"
	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/ingest"
	pkgerrors "github.com/campuslabs/discovery/pkg/errors"
	"github.com/campuslabs/discovery/pkg/kafka"
	"github.com/campuslabs/discovery/pkg/logger"
)

// Publisher coordinates catalog persistence and Kafka event production.
type Publisher struct {
	catalog  *catalog.Catalog
	producer *kafka.Producer
	logger   *slog.Logger
}

// New creates a Publisher. catalog may be nil when the service runs without
// Postgres; events then flow through Kafka only.
func New(cat *catalog.Catalog, producer *kafka.Producer) *Publisher {
	return &Publisher{
		catalog:  cat,
		producer: producer,
		logger:   logger.WithComponent("publisher"),
	}
}

// Ingest persists the document as PENDING and publishes an upsert event.
// A Kafka failure after persistence leaves the document PENDING in the
// catalog; it will be picked up by the next startup re-seed.
func (p *Publisher) Ingest(ctx context.Context, req *ingest.Request) (*ingest.Response, error) {
	now := time.Now().UTC()
	doc := document.Document{
		ID:        req.ID,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	if p.catalog != nil {
		if err := p.catalog.Upsert(ctx, doc, catalog.StatusPending); err != nil {
			return nil, fmt.Errorf("persisting document: %w: %w", pkgerrors.ErrCatalogUnavailable, err)
		}
	}

	event := kafka.Event{
		Key: doc.ID,
		Value: ingest.DocumentEvent{
			Op:         ingest.OpUpsert,
			Document:   doc,
			DocumentID: doc.ID,
			EmittedAt:  now,
		},
	}
	if err := p.producer.Publish(ctx, event); err != nil {
		p.logger.Error("failed to publish document event, document stuck in PENDING",
			"doc_id", doc.ID,
			"error", err,
		)
		return nil, fmt.Errorf("publishing document event: %w: %w", pkgerrors.ErrInternal, err)
	}
	return &ingest.Response{DocumentID: doc.ID, Status: catalog.StatusPending}, nil
}

// Delete marks the document DELETED in the catalog and publishes a delete
// event.
func (p *Publisher) Delete(ctx context.Context, id string) error {
	if p.catalog != nil {
		if err := p.catalog.SetStatus(ctx, id, catalog.StatusDeleted); err != nil {
			return fmt.Errorf("marking document deleted: %w: %w", pkgerrors.ErrCatalogUnavailable, err)
		}
	}
	event := kafka.Event{
		Key: id,
		Value: ingest.DocumentEvent{
			Op:         ingest.OpDelete,
			DocumentID: id,
			EmittedAt:  time.Now().UTC(),
		},
	}
	if err := p.producer.Publish(ctx, event); err != nil {
		return fmt.Errorf("publishing delete event: %w: %w", pkgerrors.ErrInternal, err)
	}
	return nil
}
