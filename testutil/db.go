// Package testutil provides shared helpers for integration tests.
// SQLite helpers need nothing but a temp directory and always run; Postgres
// helpers skip automatically when TEST_DATABASE_URL is not set.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/travelbook/internal/store"
)

// NewStore opens a migrated store on a fresh SQLite file in the test's temp
// directory. The store is closed automatically when the test finishes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "travelbook.db")
	s, err := store.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}

	t.Cleanup(func() { s.Close() })
	return s
}

// NewSQLDB opens a *sql.DB connected to the database specified by the
// TEST_DATABASE_URL environment variable using the pgx database/sql driver.
//
// Use this when driving goose migrations against Postgres directly.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := RequirePostgresDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// RequirePostgresDSN returns the TEST_DATABASE_URL environment variable value,
// skipping the test if it is not set.
func RequirePostgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres integration test")
	}
	return dsn
}
