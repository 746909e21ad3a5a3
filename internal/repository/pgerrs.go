package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const writeRetryAttempts = 3

// ErrConflict marks a write that kept losing to concurrent transactions
// after the bounded retries were spent.
var ErrConflict = errors.New("persistence conflict")

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.ForeignKeyViolation
}

func isRetryable(err error) bool {
	switch pgErrCode(err) {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}

// withWriteRetry re-runs fn on serialization failures and deadlocks a
// bounded number of times. When the retries are exhausted the error
// surfaces wrapped in ErrConflict.
func withWriteRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 25 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}
