package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/nudge/internal/db"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewFileDBPath returns a database path inside the test's temp dir. Tests that
// simulate the widget and popup as separate processes open it twice.
func NewFileDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nudge.db")
}

// OpenFileDB opens path and closes it when the test completes.
func OpenFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// Seed writes snap through a store on database and fails the test on error.
func Seed(t *testing.T, database *sql.DB, snap domain.Snapshot) {
	t.Helper()
	if err := repository.NewSQLiteStore(database).Set(context.Background(), snap); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
}
