// Package postgres contient les adaptateurs de persistance PostgreSQL (pgx).
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier est satisfait par *pgxpool.Pool et pgx.Tx : les repositories
// acceptent l'un ou l'autre, ce qui permet au TxRunner de les lier à une
// transaction sans dupliquer le code.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
