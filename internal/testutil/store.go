// Package testutil builds seeded SQLite stores for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"economap/internal/config"
	"economap/internal/ingest"
	"economap/internal/store"
	"economap/internal/store/sqlite"
)

type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*store.ResultSet, error)
}

// EmptyStore opens a fresh SQLite database under t.TempDir.
func EmptyStore(t testing.TB) *sqlite.Client {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "economap.db"))
	if err != nil {
		t.Fatalf("opening sqlite store: %v", err)
	}
	t.Cleanup(func() { db.Close(ctx) })
	return db
}

// SeededStore returns a store holding the default fixture, ids 1..4.
func SeededStore(t testing.TB) *sqlite.Client {
	t.Helper()
	db := EmptyStore(t)
	if _, err := ingest.Run(context.Background(), db, config.DefaultFixture(), ingest.Options{}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return db
}

// Exec runs a statement through the store's query path.
func Exec(t testing.TB, db Querier, query string, args ...any) {
	t.Helper()
	if _, err := db.Query(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
