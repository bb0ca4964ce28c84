package postgres

import (
	"context"
	"database/sql"
)

// Querier is the slice of database/sql the journal needs; *sql.DB satisfies it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure the interface is satisfied.
var _ Querier = (*sql.DB)(nil)
