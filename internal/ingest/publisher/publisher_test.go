package publisher

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/campuslabs/discovery/internal/catalog"
	"github.com/campuslabs/discovery/internal/document"
	"github.com/campuslabs/discovery/internal/ingest"
	pkgerrors "github.com/campuslabs/discovery/pkg/errors"
	"github.com/campuslabs/discovery/pkg/postgres"
)

// unreachableCatalog opens a lazy connection to a port nothing listens on,
// so the first query fails without needing a database in the test
// environment.
func unreachableCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	db, err := sql.Open("postgres", "host=127.0.0.1 port=9 user=discovery dbname=discovery sslmode=disable connect_timeout=1")
	if err != nil {
		t.Fatalf("opening connection: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return catalog.New(&postgres.Client{DB: db})
}

func TestIngestCatalogOutageYieldsCatalogUnavailable(t *testing.T) {
	pub := New(unreachableCatalog(t), nil)

	_, err := pub.Ingest(context.Background(), &ingest.Request{
		ID:      "post-1",
		Type:    document.TypePost,
		Title:   "Study group forming",
		Content: "Meeting in the library on Thursday evenings.",
	})
	if err == nil {
		t.Fatal("expected error when the catalog is unreachable")
	}
	if !errors.Is(err, pkgerrors.ErrCatalogUnavailable) {
		t.Errorf("error %v should match ErrCatalogUnavailable", err)
	}
	if got := pkgerrors.HTTPStatusCode(err); got != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatusCode = %d, want %d", got, http.StatusServiceUnavailable)
	}
}

func TestDeleteCatalogOutageYieldsCatalogUnavailable(t *testing.T) {
	pub := New(unreachableCatalog(t), nil)

	err := pub.Delete(context.Background(), "post-1")
	if err == nil {
		t.Fatal("expected error when the catalog is unreachable")
	}
	if !errors.Is(err, pkgerrors.ErrCatalogUnavailable) {
		t.Errorf("error %v should match ErrCatalogUnavailable", err)
	}
	if got := pkgerrors.HTTPStatusCode(err); got != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatusCode = %d, want %d", got, http.StatusServiceUnavailable)
	}
}
