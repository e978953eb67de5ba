package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner starts a transaction. *pgxpool.Pool and pgxmock pools implement it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc runs inside a transaction
type TxFunc func(pgx.Tx) error

// WithTransaction commits when fn returns nil and rolls back on error or panic
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
