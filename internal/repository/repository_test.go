package repository

import (
	"path/filepath"
	"testing"

	"tinymath/internal/database"
)

// newTestDB opens a throwaway SQLite database with the full schema applied
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}
