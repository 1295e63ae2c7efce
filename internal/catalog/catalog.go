// Package catalog persists documents in PostgreSQL. The catalog is the
// durable source the search service re-seeds its in-memory index from at
// startup; document status tracks each record through the pipeline
// (PENDING on ingest, INDEXED once applied, DELETED on removal).
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/postgres"
)

const (
	StatusPending = "PENDING"
	StatusIndexed = "INDEXED"
	StatusDeleted = "DELETED"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	doc_type   TEXT NOT NULL,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	metadata   JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	status     TEXT NOT NULL DEFAULT 'PENDING'
);
CREATE INDEX IF NOT EXISTS documents_status_idx ON documents (status);
`

// Catalog wraps the documents table.
type Catalog struct {
	db     *postgres.Client
	logger *slog.Logger
}

// New creates a Catalog over an established Postgres client.
func New(db *postgres.Client) *Catalog {
	return &Catalog{
		db:     db,
		logger: logger.WithComponent("catalog"),
	}
}

// EnsureSchema creates the documents table if it does not exist.
func (c *Catalog) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating catalog schema: %w", err)
	}
	return nil
}

// Upsert writes a document with the given status, replacing any previous
// row with the same id.
func (c *Catalog) Upsert(ctx context.Context, doc document.Document, status string) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata for %s: %w", doc.ID, err)
	}
	return c.db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, doc_type, title, content, metadata, created_at, updated_at, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				doc_type = EXCLUDED.doc_type,
				title = EXCLUDED.title,
				content = EXCLUDED.content,
				metadata = EXCLUDED.metadata,
				created_at = EXCLUDED.created_at,
				updated_at = EXCLUDED.updated_at,
				status = EXCLUDED.status`,
			doc.ID, string(doc.Type), doc.Title, doc.Content, metadata,
			doc.CreatedAt, doc.UpdatedAt, status,
		)
		if err != nil {
			return fmt.Errorf("upserting document %s: %w", doc.ID, err)
		}
		return nil
	})
}

// SetStatus updates the pipeline status of one document.
func (c *Catalog) SetStatus(ctx context.Context, id, status string) error {
	res, err := c.db.DB.ExecContext(ctx,
		`UPDATE documents SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating status of %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.logger.Debug("status update matched no rows", "id", id, "status", status)
	}
	return nil
}

// ListActive returns every non-deleted document, oldest first, for index
// re-seeding at startup.
func (c *Catalog) ListActive(ctx context.Context) ([]document.Document, error) {
	rows, err := c.db.DB.QueryContext(ctx, `
		SELECT id, doc_type, title, content, metadata, created_at, updated_at
		FROM documents
		WHERE status <> $1
		ORDER BY created_at`, StatusDeleted)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var doc document.Document
		var docType string
		var metadata []byte
		if err := rows.Scan(&doc.ID, &docType, &doc.Title, &doc.Content,
			&metadata, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		doc.Type = document.DocType(docType)
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			c.logger.Warn("skipping document with bad metadata", "id", doc.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}
	return docs, nil
}

// Ping verifies catalog connectivity for health checks.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.DB.PingContext(ctx)
}
