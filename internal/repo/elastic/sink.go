package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/buzzline/consumer/internal/domain"
	"github.com/buzzline/consumer/internal/ports"
	"github.com/buzzline/consumer/pkg/metrics"
)

var _ ports.RecordSink = (*Sink)(nil)

// ErrTooManyRequests is the analytical store's "transiently busy" condition;
// it is retried like a relational lock.
var ErrTooManyRequests = errors.New("elasticsearch: too many requests (429)")

// The index mapping mirrors the streamed_messages columns field for field.
const indexMapping = `{
	"mappings": {
		"properties": {
			"message":           {"type": "text"},
			"author":            {"type": "keyword"},
			"timestamp":         {"type": "keyword"},
			"category":          {"type": "keyword"},
			"sentiment":         {"type": "double"},
			"keyword_mentioned": {"type": "keyword"},
			"message_length":    {"type": "integer"}
		}
	}
}`

// Sink is the analytical RecordSink variant backed by an Elasticsearch index.
// The client's transport is the reusable handle; documents get store-assigned
// ids, matching the identity column of the relational sink.
type Sink struct {
	client      *elasticsearch.Client
	index       string
	log         ports.Logger
	retryBase   time.Duration
	maxAttempts int
}

func NewSink(client *elasticsearch.Client, index string, log ports.Logger, retryBase time.Duration, maxAttempts int) (*Sink, error) {
	if client == nil {
		return nil, fmt.Errorf("client must not be nil")
	}
	if index == "" {
		return nil, fmt.Errorf("index must not be empty")
	}
	if retryBase <= 0 {
		retryBase = 50 * time.Millisecond
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Sink{
		client:      client,
		index:       index,
		log:         log,
		retryBase:   retryBase,
		maxAttempts: maxAttempts,
	}, nil
}

// EnsureSchema creates the index with its mapping; an already existing index
// is fine. Destructive deletes the index first.
func (s *Sink) EnsureSchema(ctx context.Context, destructive bool) error {
	if destructive {
		res, err := s.client.Indices.Delete(
			[]string{s.index},
			s.client.Indices.Delete.WithContext(ctx),
			s.client.Indices.Delete.WithIgnoreUnavailable(true),
		)
		if err != nil {
			return fmt.Errorf("delete index: %w", err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("delete index: %s", res.String())
		}
		s.log.Infof(ctx, "deleted index %s for recreate", s.index)
	}

	res, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("create index: %s", res.String())
	}
	// 400 resource_already_exists_exception means the schema is in place.
	return nil
}

// Insert indexes exactly one record, retrying while the store answers 429.
func (s *Sink) Insert(ctx context.Context, m *domain.Message) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	delay := s.retryBase
	for attempt := 0; ; attempt++ {
		err := s.indexOnce(ctx, doc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTooManyRequests) {
			return err
		}
		if attempt+1 >= s.maxAttempts {
			return fmt.Errorf("insert: store busy, retry budget exhausted after %d attempts: %w", attempt+1, err)
		}

		metrics.SinkRetries.WithLabelValues("insert").Inc()
		s.log.Warnf(ctx, "insert: store busy (attempt %d/%d), retrying in %s", attempt+1, s.maxAttempts, delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (s *Sink) indexOnce(ctx context.Context, doc []byte) error {
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(doc),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return ErrTooManyRequests
	case res.IsError():
		return fmt.Errorf("index document: %s", res.String())
	}
	return nil
}

// Delete removes one document by id; same error policy as Insert but without
// the retry.
func (s *Sink) Delete(ctx context.Context, id string) error {
	res, err := s.client.Delete(
		s.index, id,
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("delete id=%s: %w", id, ports.ErrNoSuchRecord)
	case res.IsError():
		return fmt.Errorf("delete id=%s: %s", id, res.String())
	}
	return nil
}

func (s *Sink) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.String())
	}
	return nil
}

// Close is a no-op: the underlying http transport needs no teardown.
func (s *Sink) Close() error { return nil }
