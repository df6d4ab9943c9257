package store

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hmistry/gutensync/model"
)

func (s *Store) AddSyncJob(job model.SyncJob) (*model.SyncJob, error) {
	stmt := `
    INSERT INTO sync_jobs (kind, status) VALUES (?, ?)
    RETURNING id, kind, status, created_at
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j model.SyncJob
	if err := tx.QueryRow(stmt, job.Kind, job.Status).Scan(
		&j.ID, &j.Kind, &j.Status, &j.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &j, nil
}

func (s *Store) UpdateSyncJob(job *model.SyncJob) error {
	stmt := `
    UPDATE sync_jobs
    SET status = ?, inserted = ?, updated = ?, linked = ?, skipped = ?, error = ?, finished_at = ?
    WHERE id = ?
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	_, err := s.db.Exec(stmt,
		job.Status, job.Inserted, job.Updated, job.Linked, job.Skipped,
		job.Error, job.FinishedAt, job.ID)
	return err
}

func (s *Store) GetSyncJob(id int) (*model.SyncJob, error) {
	query := `
    SELECT id, kind, status, inserted, updated, linked, skipped, error, created_at, finished_at
    FROM sync_jobs WHERE id = ?
    `
	var j model.SyncJob
	if err := s.db.QueryRow(query, id).Scan(
		&j.ID, &j.Kind, &j.Status, &j.Inserted, &j.Updated, &j.Linked,
		&j.Skipped, &j.Error, &j.CreatedAt, &j.FinishedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

func (s *Store) ListSyncJobs(limit int) ([]*model.SyncJob, error) {
	query := `
    SELECT id, kind, status, inserted, updated, linked, skipped, error, created_at, finished_at
    FROM sync_jobs ORDER BY id DESC LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.SyncJob, 0)
	for rows.Next() {
		var j model.SyncJob
		if err := rows.Scan(
			&j.ID, &j.Kind, &j.Status, &j.Inserted, &j.Updated, &j.Linked,
			&j.Skipped, &j.Error, &j.CreatedAt, &j.FinishedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
