package ports

import (
	"context"
	"errors"

	"github.com/buzzline/consumer/internal/domain"
)

// ErrNoSuchRecord is returned by Delete when the id does not match a stored record.
var ErrNoSuchRecord = errors.New("no such record")

// RecordSink persists normalized records durably.
//
// Insert must retry internally when the store reports a transient busy/locked
// condition and surface the error only once its attempt budget is exhausted;
// any other error propagates immediately. Delete follows the same error policy
// without the retry (it is not on the ingestion hot path). EnsureSchema is
// idempotent and safe to call on every startup; destructive drops the existing
// shape first.
type RecordSink interface {
	EnsureSchema(ctx context.Context, destructive bool) error
	Insert(ctx context.Context, record *domain.Message) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
