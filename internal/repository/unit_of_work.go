package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	maxCommitAttempts = 3

	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

type PgUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &PgUnitOfWork{pool: pool}
}

// ExecuteAndCommit 以 serializable 交易執行，序列化衝突時整個 action 重跑
func (u *PgUnitOfWork) ExecuteAndCommit(ctx context.Context, action func(ctx context.Context, repos Repositories) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	return retryOnSerializationFailure(ctx, maxCommitAttempts, func() error {
		return u.run(ctx, opts, true, action)
	})
}

func (u *PgUnitOfWork) ExecuteReadOnly(ctx context.Context, action func(ctx context.Context, repos Repositories) error) error {
	return u.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, false, action)
}

func (u *PgUnitOfWork) run(ctx context.Context, opts pgx.TxOptions, commit bool, action func(ctx context.Context, repos Repositories) error) error {
	tx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// 已提交時 Rollback 為 no-op
	defer tx.Rollback(ctx)

	if err := action(ctx, NewRepositories(tx)); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// retryOnSerializationFailure 重試次數用盡時回傳 ErrConcurrentUpdate
func retryOnSerializationFailure(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if !isSerializationFailure(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.WithComponent("database").Warn("Transaction conflict",
			zap.Int("attempt", attempt), zap.Error(err))
	}
	return fmt.Errorf("%w (%d attempts)", apperrors.ErrConcurrentUpdate, attempts)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}
