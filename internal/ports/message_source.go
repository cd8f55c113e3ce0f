package ports

import (
	"context"
	"errors"
)

// ErrSourceAbsent signals that the source does not currently exist (missing
// file, not-yet-created topic). The caller waits and polls again; it is never
// fatal.
var ErrSourceAbsent = errors.New("message source absent")

// RawUnit is one undigested message as received: a single line of text or one
// broker payload. Implementations attach whatever position bookkeeping they
// need for Commit.
type RawUnit interface {
	Bytes() []byte
}

// MessageSource produces raw units in arrival order.
//
// Poll returns the next batch of complete units (possibly empty) and may block
// up to the source's configured interval. Commit acknowledges exactly one unit
// and must be called in arrival order, only after the unit has been fully
// handed downstream; for a resumable source it advances the cursor past that
// unit, for a broker it commits the offset.
type MessageSource interface {
	Name() string
	Poll(ctx context.Context) ([]RawUnit, error)
	Commit(ctx context.Context, unit RawUnit) error
	Close() error
}
