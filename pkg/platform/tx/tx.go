// Package tx holds the query surface shared by *sql.DB and *sql.Tx, so one
// store implementation can run standalone or inside a caller's transaction.
package tx

import (
	"context"
	"database/sql"
)

// Execer is the subset of *sql.DB and *sql.Tx that stores issue queries on.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
