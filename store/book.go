package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
)

// GetBook returns one book by id, nil when it is not stored. The cached
// record is never handed out: callers get their own copy, so mutating the
// result cannot alter the cache before the change is committed.
func (s *Store) GetBook(id string) (*model.Book, error) {
	if cache, ok := s.BookCache.Load(id); ok {
		copied := *cache.(*model.Book)
		return &copied, nil
	}

	list, err := s.ListBooks(&model.FindBook{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	copied := *book
	return &copied, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "title LIKE ?"), append(args, "%"+*v+"%")
	}

	from := "books"
	if v := find.CollectionDate; v != nil {
		from = "books JOIN collection_books cb ON cb.book_id = books.id"
		where, args = append(where, "cb.collection_date = ?"), append(args, *v)
	}

	// Default order by title
	orderBy := []string{"title"}
	if find.OrderBy != nil {
		orderBy = []string{*find.OrderBy}
	}

	query := `
        SELECT
            books.id,
            books.title,
            books.explicit_author,
            books.language_description,
            books.link,
            books.last_read_location,
            books.local_file_name,
            books.local_cover_file_name
        FROM ` + from + `
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + strings.Join(orderBy, ", ")
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.ExplicitAuthor,
			&book.LanguageDescription,
			&book.Link,
			&book.LastReadLocation,
			&book.LocalFileName,
			&book.LocalCoverFileName,
		); err != nil {
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ListBookIDs loads the full id set in one query, the working set for an
// upsert pass over tens of thousands of rows.
func (s *Store) ListBookIDs() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT id FROM books")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (s *Store) CountBooks() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetReadingPosition stores the user's last read location, a fraction of the
// book in [0, 1].
func (s *Store) SetReadingPosition(id string, position float64) error {
	return s.setUserField(id, "last_read_location", position)
}

func (s *Store) SetLocalFileName(id, name string) error {
	return s.setUserField(id, "local_file_name", name)
}

func (s *Store) SetLocalCoverFileName(id, name string) error {
	return s.setUserField(id, "local_cover_file_name", name)
}

func (s *Store) setUserField(id, column string, value any) error {
	stmt := fmt.Sprintf("UPDATE books SET %s = ? WHERE id = ?", column)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	result, err := s.db.Exec(stmt, value, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrapf(ErrNotFound, "book %s", id)
	}

	s.BookCache.Delete(id)
	return nil
}
