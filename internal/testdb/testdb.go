//go:build integration

// Package testdb provides database helpers for integration tests. Tests using
// it are skipped when no database URL is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/scry-assist/internal/platform/postgres"
	"github.com/phrazzld/scry-assist/internal/store"
)

// Environment variables checked for a database URL, in order.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvScryTestDBURL   = "SCRY_TEST_DB_URL"
	EnvScryDatabaseURL = "SCRY_DATABASE_URL"
)

var errRollback = errors.New("testdb: rollback")

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvScryTestDBURL, EnvScryDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// GetTestDB connects to the test database and applies migrations. The test
// is skipped if no URL is configured; the connection is closed on cleanup.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skipf("%s not set, skipping database test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, url, Logger())
	if err != nil {
		t.Fatalf("failed to open test database %s: %v", postgres.MaskURL(url), err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(ctx, db, Logger()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can write freely without affecting each other.
func WithTx(t *testing.T, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		fn(ctx, tx)
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("test transaction failed: %v", err)
	}
}
