package pgsql

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txManager is implemented by repositories whose writes span several tables.
// A posting (transaction, invoice, items, entry and lines) is written in one of these.
type txManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx)
}

// BaseRepository holds the pool shared by the posting and reference repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin opens a read-committed write transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to open write transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateWriteError("failed to commit write transaction", err)
	}
	return nil
}

// Rollback is meant to be deferred right after Begin. After a commit it does nothing.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	// The caller reports the error that made it bail out, not the rollback's.
	_ = tx.Rollback(ctx)
}
