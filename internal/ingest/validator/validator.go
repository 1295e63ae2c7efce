// Package validator provides input validation for ingestion requests. It
// enforces id, type, title, and content constraints and returns per-field
// error details.
package validator

import (
	"fmt"
	"strings"

	"github.com/campuslabs/discovery/internal/ingest"
)

const (
	maxIDLength      = 255
	maxTitleLength   = 1024
	maxContentLength = 1048576
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateRequest checks an ingestion request and returns a
// ValidationError describing every failing field.
func ValidateRequest(req *ingest.Request) error {
	errs := make(map[string]string)

	id := strings.TrimSpace(req.ID)
	if id == "" {
		errs["id"] = "id is required"
	} else if len(id) > maxIDLength {
		errs["id"] = fmt.Sprintf("id must be at most %d characters", maxIDLength)
	}
	if !req.Type.Valid() {
		errs["type"] = fmt.Sprintf("unknown document type %q", req.Type)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if len(title) > maxTitleLength {
		errs["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		errs["content"] = "content is required and must not be empty"
	} else if len(content) > maxContentLength {
		errs["content"] = fmt.Sprintf("content must be at most %d characters", maxContentLength)
	}
	if req.Metadata.Engagement < 0 {
		errs["metadata.engagement"] = "engagement must not be negative"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
