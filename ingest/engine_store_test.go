package ingest

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
	"github.com/hmistry/gutensync/store/db"
)

func createSQLiteStore(t *testing.T) *store.Store {
	t.Helper()

	config.Opts.DSN = t.TempDir() + "/gutensync_test.db"
	d, err := db.NewDB(config.Opts.DSN)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return store.NewStore(d.DB)
}

// commitFailStore is the real store with the final commit forced to fail.
type commitFailStore struct {
	*store.Store
}

func (s *commitFailStore) ApplySyncBatch(batch *model.SyncBatch) error {
	return errors.New("disk full")
}

func TestSyncCatalogFailedCommitKeepsStoredBook(t *testing.T) {
	s := createSQLiteStore(t)

	seed := [][]string{{"84", "Text", "", "Frankenstein", "en", "Mary Wollstonecraft Shelley"}}
	if _, err := NewEngine(s).SyncCatalog(context.Background(), seed, nil); err != nil {
		t.Fatalf("Seeding sync failed: %v", err)
	}
	// Warm the book cache before the failing run
	if _, err := s.GetBook("84"); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(&commitFailStore{s})
	rows := [][]string{{"84", "Text", "", "A Title That Must Not Survive", "en", "Nobody"}}
	_, err := engine.SyncCatalog(context.Background(), rows, nil)
	if !errors.Is(err, ErrCommitFailed) {
		t.Fatalf("Expected ErrCommitFailed, got %v", err)
	}

	book, err := s.GetBook("84")
	if err != nil {
		t.Fatal(err)
	}
	if book == nil {
		t.Fatal("Book disappeared after failed commit")
	}
	if book.Title != "Frankenstein by Mary Wollstonecraft Shelley" {
		t.Errorf("Unpersisted update served after failed commit: %q", book.Title)
	}
	if book.ExplicitAuthor != "Mary Wollstonecraft Shelley" {
		t.Errorf("Unpersisted author served after failed commit: %q", book.ExplicitAuthor)
	}
}
