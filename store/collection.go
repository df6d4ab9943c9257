package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hmistry/gutensync/model"
)

// GetCollection returns the collection for the given day with its full
// membership, nil when no collection exists for that day.
func (s *Store) GetCollection(date time.Time) (*model.Collection, error) {
	key := model.DayKey(date)

	var stored string
	err := s.db.QueryRow("SELECT date FROM collections WHERE date = ?", key).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	collection := &model.Collection{Date: model.DayOf(date)}

	rows, err := s.db.Query(
		"SELECT book_id FROM collection_books WHERE collection_date = ? ORDER BY rowid", key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		collection.BookIDs = append(collection.BookIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collection, nil
}

// ListCollections returns every collection day newest first, membership
// counts included but not the member ids.
func (s *Store) ListCollections() ([]*model.CollectionSummary, error) {
	query := `
        SELECT
            c.date,
            COUNT(cb.book_id)
        FROM collections c
        LEFT JOIN collection_books cb ON cb.collection_date = c.date
        GROUP BY c.date
        ORDER BY c.date DESC
    `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.CollectionSummary, 0)
	for rows.Next() {
		var summary model.CollectionSummary
		if err := rows.Scan(&summary.Date, &summary.BookCount); err != nil {
			return nil, err
		}
		list = append(list, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
