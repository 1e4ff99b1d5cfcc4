package repository

import (
	"context"
	"database/sql" // Required for sql.Result

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// contextKey is the type for context values set by this package.
type contextKey string

// transactionContextKey carries the active *sqlx.Tx, when one exists.
const transactionContextKey contextKey = "tx"

// getExecutor returns the transaction from the context if one is active,
// otherwise the base DB handle.
func getExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(transactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return sqlxTx
		}
	}
	return db
}
