package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema version Migrate brings the database to.
const SchemaVersion = 1

type migration struct {
	version     int
	description string
	statements  []string
}

var migrations = []migration{
	{
		version:     1,
		description: "imports, transactions, overrides",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS imports (
				id TEXT PRIMARY KEY,
				source TEXT NOT NULL,
				checksum TEXT NOT NULL UNIQUE,
				imported_at TEXT NOT NULL,
				row_count INTEGER NOT NULL,
				kept_count INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS transactions (
				id TEXT PRIMARY KEY,
				import_id TEXT NOT NULL REFERENCES imports(id),
				date TEXT NOT NULL,
				description TEXT NOT NULL,
				amount TEXT NOT NULL,
				category TEXT NOT NULL,
				merchant TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant)`,
			`CREATE TABLE IF NOT EXISTS overrides (
				txn_id TEXT PRIMARY KEY REFERENCES transactions(id),
				category TEXT NOT NULL DEFAULT '',
				merchant TEXT NOT NULL DEFAULT '',
				updated_at TEXT NOT NULL
			)`,
		},
	},
}

// Migrate applies pending migrations, tracking the version in PRAGMA user_version.
func (s *Store) Migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		s.log.Debug().Int("version", m.version).Str("description", m.description).Msg("applied migration")
	}
	return nil
}

func (s *Store) apply(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", m.version, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
	}
	if err := setVersion(ctx, tx, m.version); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", m.version, err)
	}
	return nil
}

func setVersion(ctx context.Context, tx *sql.Tx, version int) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	return nil
}
