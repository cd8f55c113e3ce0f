package usecase

import (
	"context"
	"fmt"

	"github.com/buzzline/consumer/internal/ports"
)

// IngestService carries one raw unit through normalization into the sink.
// It has no knowledge of where the unit came from; the source-specific loop
// sits above it.
type IngestService struct {
	sink       ports.RecordSink
	normalizer ports.MessageNormalizer
	log        ports.Logger
}

func NewIngestService(sink ports.RecordSink, normalizer ports.MessageNormalizer, log ports.Logger) *IngestService {
	return &IngestService{
		sink:       sink,
		normalizer: normalizer,
		log:        log,
	}
}

// SaveFromMessage normalizes one raw unit and persists the record. A
// rejection comes back wrapping normalize.ErrInvalidMessage so the caller can
// skip the unit; a sink error is transient from the caller's point of view
// (the sink has already spent its own retry budget).
func (s *IngestService) SaveFromMessage(ctx context.Context, raw []byte) error {
	msg, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return err
	}

	// Derived insights are logged only; the persisted record keeps the seven
	// canonical fields.
	s.log.Infof(ctx, "derived insights sentiment_label=%s exclamation=%t word_count=%d",
		msg.SentimentLabel(), msg.HasExclamation(), msg.WordCount())

	if err := s.sink.Insert(ctx, msg); err != nil {
		s.log.Errorf(ctx, "sink.Insert failed author=%s category=%s err=%v", msg.Author, msg.Category, err)
		return fmt.Errorf("insert record: %w", err)
	}

	s.log.Infof(ctx, "record stored author=%s category=%s sentiment=%.2f length=%d",
		msg.Author, msg.Category, msg.Sentiment, msg.MessageLength)
	return nil
}

// DeleteMessage removes one stored record by id.
func (s *IngestService) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("empty record id")
	}
	if err := s.sink.Delete(ctx, id); err != nil {
		s.log.Warnf(ctx, "sink.Delete failed id=%s err=%v", id, err)
		return err
	}
	s.log.Infof(ctx, "record deleted id=%s", id)
	return nil
}
