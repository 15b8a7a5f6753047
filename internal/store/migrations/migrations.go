package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	sql     string
}

var all = []migration{
	{
		version: 1,
		sql: `CREATE TABLE IF NOT EXISTS query_history (
			id VARCHAR PRIMARY KEY,
			sql_text VARCHAR NOT NULL,
			outcome VARCHAR NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			error VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT now()
		)`,
	},
}

// Run applies pending migrations in order. Versions already recorded in
// schema_migrations are skipped.
func Run(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range all {
		var exists int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			continue
		}

		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return err
		}
		zap.S().Named("migrations").Infow("migration applied", "version", m.version)
	}

	return nil
}
