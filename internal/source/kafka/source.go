package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/buzzline/consumer/internal/ports"
)

var _ ports.MessageSource = (*Source)(nil)

// reader is the minimal contract over kafka.Reader so it can be mocked.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// unit wraps one fetched broker message. The message itself is the commit
// marker: committing it advances the consumer group offset.
type unit struct {
	msg kafka.Message
}

func (u unit) Bytes() []byte { return u.msg.Value }

// Source adapts a kafka.Reader to the polling MessageSource contract. One
// message per poll cycle; position tracking and rebalancing belong to the
// broker client, the loop only consumes the ordered stream it yields.
type Source struct {
	reader    reader
	log       ports.Logger
	closeOnce sync.Once
}

// NewSource builds a Source with manual offset commits (see readerConfig).
func NewSource(cfg *SourceConfig, log ports.Logger) *Source {
	return &Source{
		reader: kafka.NewReader(cfg.readerConfig()),
		log:    log,
	}
}

func (s *Source) Name() string { return "kafka" }

// Poll blocks on the broker until a message arrives or ctx is cancelled and
// yields it as a single-unit batch. Fetch errors are returned as-is; the
// caller owns the backoff.
func (s *Source) Poll(ctx context.Context) ([]ports.RawUnit, error) {
	msg, err := s.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	return []ports.RawUnit{unit{msg: msg}}, nil
}

// Commit acknowledges one unit with the consumer group.
func (s *Source) Commit(ctx context.Context, u ports.RawUnit) error {
	ku, ok := u.(unit)
	if !ok {
		return fmt.Errorf("commit: unit does not belong to this source")
	}
	return s.reader.CommitMessages(ctx, ku.msg)
}

func (s *Source) Close() (retErr error) {
	s.closeOnce.Do(func() {
		retErr = s.reader.Close()
	})
	return retErr
}
