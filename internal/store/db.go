package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the postgres settings and note stores run on.
// *sql.DB and *sql.Tx both satisfy it, so a store built on a transaction
// (as the integration tests do) behaves like one built on the pool.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
