package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// position keeps the collection's array order; sort_order is the
	// user-visible Order field used in manual mode.
	`CREATE TABLE IF NOT EXISTS todos (
		id           TEXT PRIMARY KEY,
		position     INTEGER NOT NULL,
		text         TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		start_at     TEXT,
		deadline     TEXT NOT NULL,
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		sort_order   INTEGER NOT NULL DEFAULT 0,
		manual_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_position ON todos(position)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		position   INTEGER NOT NULL,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_position ON notes(position)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id               TEXT PRIMARY KEY DEFAULT 'default',
		widget_enabled   INTEGER NOT NULL DEFAULT 0,
		widget_collapsed INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS store_revisions (
		key         TEXT PRIMARY KEY CHECK(key IN ('todos','notes','settings')),
		revision    INTEGER NOT NULL DEFAULT 0,
		fingerprint TEXT NOT NULL DEFAULT ''
	)`,
	`INSERT OR IGNORE INTO store_revisions (key) VALUES ('todos'), ('notes'), ('settings')`,
}
