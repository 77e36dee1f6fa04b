// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"lunchVote/internal/platform/database"
)

// Open returns a migrated database stored under t.TempDir and closed on cleanup.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	if err := database.Migrate(db, models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
