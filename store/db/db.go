package db

import (
	"context"
	"database/sql"
	"embed"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/version"
)

type DB struct {
	*sql.DB
}

func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("Database URL is required")
	}

	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; the store serializes writes itself but a
	// second pooled connection would still race on the file lock.
	d.SetMaxOpenConns(1)

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

// Migrate applies the latest schema to a fresh database and records the
// running version in migration_history.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	if _, err := os.Stat(config.Opts.DSN); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "failed to check database file")
		}
		// Fresh database, create with the latest schema
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	history, err := d.FindMigrationHistoryList(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}
	if len(history) == 0 {
		// The file exists but carries no history, treat it as fresh
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	buf, err := migrationFS.ReadFile("migration/LATEST_SCHEMA.sql")
	if err != nil {
		return errors.Wrap(err, "failed to read latest schema file")
	}
	if _, err := d.DB.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to execute latest schema")
	}
	return nil
}
