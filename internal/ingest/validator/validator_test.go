package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/ingest"
)

func validRequest() *ingest.Request {
	return &ingest.Request{
		ID:      "post-123",
		Type:    document.TypePost,
		Title:   "Study group forming",
		Content: "Looking for two more people for the algorithms study group.",
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ingest.Request)
		wantField string
	}{
		{"valid request", func(r *ingest.Request) {}, ""},
		{"missing id", func(r *ingest.Request) { r.ID = "" }, "id"},
		{"whitespace id", func(r *ingest.Request) { r.ID = "   " }, "id"},
		{"overlong id", func(r *ingest.Request) { r.ID = strings.Repeat("x", 256) }, "id"},
		{"unknown type", func(r *ingest.Request) { r.Type = "widget" }, "type"},
		{"missing title", func(r *ingest.Request) { r.Title = "" }, "title"},
		{"overlong title", func(r *ingest.Request) { r.Title = strings.Repeat("t", 1025) }, "title"},
		{"missing content", func(r *ingest.Request) { r.Content = "" }, "content"},
		{"whitespace content", func(r *ingest.Request) { r.Content = " \n\t " }, "content"},
		{"overlong content", func(r *ingest.Request) { r.Content = strings.Repeat("c", 1048577) }, "content"},
		{"negative engagement", func(r *ingest.Request) { r.Metadata.Engagement = -1 }, "metadata.engagement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := ValidateRequest(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRequest() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateRequest() = %v, want *ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields = %v, want an entry for %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestValidateRequestCollectsAllFailures(t *testing.T) {
	req := &ingest.Request{Type: "bogus"}
	err := ValidateRequest(req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ValidateRequest() = %v, want *ValidationError", err)
	}
	for _, field := range []string{"id", "type", "title", "content"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Fields missing %q: %v", field, verr.Fields)
		}
	}
	if verr.Error() == "" {
		t.Error("Error() should describe the failing fields")
	}
}

func TestValidateRequestBoundaryLengths(t *testing.T) {
	req := validRequest()
	req.ID = strings.Repeat("x", 255)
	req.Title = strings.Repeat("t", 1024)
	req.Content = strings.Repeat("c", 1048576)
	if err := ValidateRequest(req); err != nil {
		t.Errorf("at-limit lengths should validate, got %v", err)
	}
}
