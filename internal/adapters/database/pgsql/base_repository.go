package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// wrapWriteError maps unique violations to apperrors.ErrDuplicate and
// references to missing rows to a validation error.
func wrapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}

// wrapReadError maps a missing row to apperrors.ErrNotFound.
func wrapReadError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// nonNil returns an empty slice in place of nil so list reads never yield null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
