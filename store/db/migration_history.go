package db

import (
	"context"
)

type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

func (d *DB) UpsertMigrationHistory(ctx context.Context, version string) (*MigrationHistory, error) {
	stmt := `
		INSERT INTO migration_history (
			version
		)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE
		SET
			version=EXCLUDED.version
		RETURNING version, created_ts
	`
	var migrationHistory MigrationHistory
	if err := d.DB.QueryRowContext(ctx, stmt, version).Scan(
		&migrationHistory.Version,
		&migrationHistory.CreatedTs,
	); err != nil {
		return nil, err
	}

	return &migrationHistory, nil
}

func (d *DB) FindMigrationHistoryList(ctx context.Context) ([]*MigrationHistory, error) {
	query := "SELECT `version`, `created_ts` FROM `migration_history` ORDER BY `created_ts` DESC"
	rows, err := d.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*MigrationHistory, 0)
	for rows.Next() {
		var mh MigrationHistory
		if err := rows.Scan(
			&mh.Version,
			&mh.CreatedTs,
		); err != nil {
			return nil, err
		}

		list = append(list, &mh)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
