// Package handler exposes the document ingestion HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campuslabs/discovery/internal/ingest"
	"github.com/campuslabs/discovery/internal/ingest/publisher"
	"github.com/campuslabs/discovery/internal/ingest/validator"
	pkgerrors "github.com/campuslabs/discovery/pkg/errors"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/metrics"
)

// Handler serves document create/update/delete requests.
type Handler struct {
	publisher *publisher.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a Handler. m may be nil in tests.
func New(pub *publisher.Publisher, m *metrics.Metrics) *Handler {
	return &Handler{
		publisher: pub,
		metrics:   m,
		logger:    logger.WithComponent("ingest-handler"),
	}
}

// Ingest handles POST /api/v1/documents. Re-submitting an existing id is an
// update: the search service retracts the old postings before re-indexing.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req ingest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.count("rejected")
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			h.count("rejected")
			h.writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": vErr.Fields,
			})
			return
		}
		h.count("rejected")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.publisher.Ingest(ctx, &req)
	if err != nil {
		log.Error("ingestion failed", "doc_id", req.ID, "error", err)
		h.count("failed")
		h.writeError(w, pkgerrors.HTTPStatusCode(err), "ingestion failed")
		return
	}

	log.Info("document accepted", "doc_id", resp.DocumentID, "type", req.Type)
	h.count("accepted")
	h.writeJSON(w, http.StatusAccepted, resp)
}

// Delete handles DELETE /api/v1/documents/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "document id is required")
		return
	}
	if err := h.publisher.Delete(ctx, id); err != nil {
		log.Error("delete failed", "doc_id", id, "error", err)
		h.writeError(w, pkgerrors.HTTPStatusCode(err), "delete failed")
		return
	}
	log.Info("document delete accepted", "doc_id", id)
	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": id,
		"status":      "DELETED",
	})
}

func (h *Handler) count(status string) {
	if h.metrics != nil {
		h.metrics.IngestRequestsTotal.WithLabelValues(status).Inc()
	}
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
