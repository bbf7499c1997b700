package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/procurement/backend/internal/domain/shared"
)

// Postgres error codes that signal a transient concurrency failure. The
// enclosing transaction has been aborted; the caller retries the whole
// request rather than the statement.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// translateError maps transient Postgres concurrency failures to a
// retryable error so they surface as a 409 instead of a 500. Everything
// else passes through unchanged.
func translateError(err error) error {
	if err == nil || shared.IsRetryable(err) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return shared.NewRetryableError(err)
		}
	}
	return err
}
