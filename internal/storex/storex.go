// Package storex holds the shared database plumbing for the on-device state
// store: a narrow query interface satisfied by both *sql.DB and *sql.Tx, and
// a transaction helper.
package storex

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql the repositories use. Both *sql.DB
// and *sql.Tx satisfy it, so repository methods run identically inside and
// outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InTx runs fn inside a transaction, committing on success and rolling back
// on error or panic. Panics are rethrown after rollback.
func InTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, q Querier) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
