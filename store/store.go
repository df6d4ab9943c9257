package store

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound marks a write against a book id that is not stored.
var ErrNotFound = errors.New("book not found")

// Store wraps the sqlite handle. Writers serialize on dbLock; sqlite allows
// only one writer at a time and surfacing that as a Go mutex keeps busy
// errors out of the driver.
type Store struct {
	db     *sql.DB
	dbLock sync.Mutex

	BookCache sync.Map // map[string]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
