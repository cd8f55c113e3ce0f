package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/buzzline/consumer/internal/ports"
	"github.com/buzzline/consumer/pkg/metrics"
)

// Postgres states treated as "store transiently busy": lock not available,
// serialization failure, deadlock. Everything else propagates immediately.
const (
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func isBusy(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// withRetry runs fn until it succeeds, fails with a non-busy error, or the
// attempt budget runs out. The delay starts at base and doubles per attempt.
func withRetry(ctx context.Context, op string, base time.Duration, maxAttempts int, log ports.Logger, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	delay := base
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isBusy(err) {
			return err
		}
		if attempt+1 >= maxAttempts {
			return fmt.Errorf("%s: store busy, retry budget exhausted after %d attempts: %w", op, attempt+1, err)
		}

		metrics.SinkRetries.WithLabelValues(op).Inc()
		log.Warnf(ctx, "%s: store busy (attempt %d/%d), retrying in %s: %v", op, attempt+1, maxAttempts, delay, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
