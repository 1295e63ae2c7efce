// Package ingest defines the request types and Kafka event schema for the
// document ingestion pipeline.
package ingest

import (
	"time"

	"github.com/campuslabs/discovery/internal/document"
)

// Event operations carried on the documents topic.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// Request is the JSON body accepted by the ingestion HTTP endpoint.
// CreatedAt/UpdatedAt default to the ingestion time when omitted.
type Request struct {
	ID        string            `json:"id"`
	Type      document.DocType  `json:"type"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Metadata  document.Metadata `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty"`
}

// Response is returned to the caller after a document is accepted.
type Response struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}

// DocumentEvent is the Kafka message payload consumed by the search
// service. Delete events carry only the document id.
type DocumentEvent struct {
	Op         string            `json:"op"`
	Document   document.Document `json:"document,omitempty"`
	DocumentID string            `json:"document_id"`
	EmittedAt  time.Time         `json:"emitted_at"`
}
