package store

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
)

// ApplySyncBatch commits one sync run in a single transaction. Inserts create
// new books, updates rewrite the catalog-owned columns only, and links append
// membership rows for the batch collection. Any failure rolls the whole batch
// back.
func (s *Store) ApplySyncBatch(batch *model.SyncBatch) error {
	if batch.Empty() {
		return nil
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	insertStmt := `
        INSERT INTO books (id, title, explicit_author, language_description, link)
        VALUES (?, ?, ?, ?, ?)
    `
	for _, book := range batch.Inserts {
		if _, err := tx.Exec(insertStmt,
			book.ID, book.Title, book.ExplicitAuthor, book.LanguageDescription, book.Link,
		); err != nil {
			return errors.Wrapf(err, "failed to insert book %s", book.ID)
		}
	}

	// Updates touch the catalog-owned columns only; last_read_location and
	// the local file names belong to the user.
	updateStmt := `
        UPDATE books
        SET title = ?, explicit_author = ?, language_description = ?, link = ?
        WHERE id = ?
    `
	for _, book := range batch.Updates {
		if _, err := tx.Exec(updateStmt,
			book.Title, book.ExplicitAuthor, book.LanguageDescription, book.Link, book.ID,
		); err != nil {
			return errors.Wrapf(err, "failed to update book %s", book.ID)
		}
	}

	if batch.Collection != nil {
		key := batch.Collection.Key()
		if batch.CollectionIsNew {
			if _, err := tx.Exec("INSERT INTO collections (date) VALUES (?)", key); err != nil {
				return errors.Wrapf(err, "failed to create collection %s", key)
			}
		}
		linkStmt := "INSERT INTO collection_books (collection_date, book_id) VALUES (?, ?)"
		for _, id := range batch.Links {
			if _, err := tx.Exec(linkStmt, key, id); err != nil {
				return errors.Wrapf(err, "failed to link book %s into %s", id, key)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit sync batch")
	}

	for _, book := range batch.Updates {
		s.BookCache.Delete(book.ID)
	}

	log.Debug("Applied sync batch",
		zap.Int("inserts", len(batch.Inserts)),
		zap.Int("updates", len(batch.Updates)),
		zap.Int("links", len(batch.Links)))
	return nil
}
