package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			frequency TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0,
			last_completed_time INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0)
		);`,
		// Timestamps are unix milliseconds; 0 means unset.
		`CREATE TABLE IF NOT EXISTS completed_tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			days_completed INTEGER NOT NULL,
			completed_at INTEGER NOT NULL,
			xp_awarded INTEGER NOT NULL DEFAULT -1
		);`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			user_id TEXT PRIMARY KEY,
			xp INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
			streak INTEGER NOT NULL DEFAULT 0 CHECK (streak >= 0),
			last_streak_date INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT PRIMARY KEY,
			notifications INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS notification_tokens (
			user_id TEXT NOT NULL,
			token TEXT NOT NULL,
			platform TEXT NOT NULL DEFAULT 'web',
			updated_at INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, token)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);`,
		// completed_at is unique per task so an undo always targets exactly one record.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_completed_tasks_parent_completed_at ON completed_tasks(user_id, parent_id, completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_notification_tokens_token ON notification_tokens(token);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Databases created before xp_awarded existed get the column with the
	// unknown marker on every old record.
	if err := addColumnIfMissing(ctx, db, "completed_tasks", "xp_awarded", "INTEGER NOT NULL DEFAULT -1"); err != nil {
		return err
	}

	return nil
}

func addColumnIfMissing(ctx context.Context, db *sql.DB, table, column, decl string) error {
	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n); err != nil {
		return fmt.Errorf("migrate: inspect %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl)); err != nil {
		return fmt.Errorf("migrate: add %s.%s: %w", table, column, err)
	}
	return nil
}
