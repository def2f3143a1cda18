// Package dbx provides the small storage layer shared by repositories:
// DBTX (implemented by *sql.DB and *sql.Tx), a transaction helper, and the
// Postgres/SQLite dialect handling used to open and query either backend.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what the users and dogs repositories query through: *sql.DB for
// plain calls, *sql.Tx inside WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. It commits when fn returns nil
// and rolls back on an error or panic; panics are re-raised after rollback.
//
// DogService.Adopt uses it so the conditional adopt_owner update and the
// read of the updated row see the same snapshot:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    ok, err := s.repomanager.Dogs(tx).MarkAdopted(ctx, dogID, adopterID, msg, s.now())
//	    ...
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
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
