package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is embedded by every repository whose writes must share a
// pgx.Tx with another repository, e.g. posting an entry and moving balances.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is safe to defer: a committed or nil tx is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
