package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func busyErr() error {
	return &pgconn.PgError{Code: codeLockNotAvailable, Message: "lock not available"}
}

func TestWithRetry_BusyClearsBeforeBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	err := withRetry(context.Background(), "insert", time.Millisecond, 5, nopLogger{}, func() error {
		calls++
		if calls <= 3 {
			return busyErr()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("want success once the busy condition clears, got %v", err)
	}
	if calls != 4 {
		t.Fatalf("attempts: want 4, got %d", calls)
	}
}

func TestWithRetry_BudgetExhausted(t *testing.T) {
	t.Parallel()

	calls := 0
	err := withRetry(context.Background(), "insert", time.Millisecond, 3, nopLogger{}, func() error {
		calls++
		return busyErr()
	})
	if err == nil {
		t.Fatal("want error after exhausted budget")
	}
	if calls != 3 {
		t.Fatalf("attempts: want exactly 3, got %d", calls)
	}
	if !strings.Contains(err.Error(), "retry budget exhausted") {
		t.Fatalf("error must name the exhausted budget, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("underlying store error must stay wrapped, got %v", err)
	}
}

// Non-busy errors are never retried.
func TestWithRetry_NonBusyPropagatesImmediately(t *testing.T) {
	t.Parallel()

	wantErr := &pgconn.PgError{Code: "23505", Message: "unique violation"}
	calls := 0
	err := withRetry(context.Background(), "insert", time.Millisecond, 5, nopLogger{}, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("want the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("attempts: want 1, got %d", calls)
	}
}

func TestWithRetry_ContextCancelBetweenAttempts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetry(ctx, "insert", time.Minute, 5, nopLogger{}, func() error {
		return busyErr()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestIsBusy(t *testing.T) {
	t.Parallel()

	for _, code := range []string{codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected} {
		if !isBusy(&pgconn.PgError{Code: code}) {
			t.Errorf("code %s must count as busy", code)
		}
	}
	if isBusy(&pgconn.PgError{Code: "42P01"}) {
		t.Error("undefined table must not count as busy")
	}
	if isBusy(errors.New("plain error")) {
		t.Error("non-pg error must not count as busy")
	}
}
