package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buzzline/consumer/internal/domain"
	"github.com/buzzline/consumer/internal/ports"
)

var _ ports.RecordSink = (*MessageRepository)(nil)

// Column order is the wire contract shared with the analytical sink and the
// original feed tooling; keep it stable.
const createTableSQL = `
	CREATE TABLE IF NOT EXISTS streamed_messages (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		message TEXT NOT NULL,
		author TEXT NOT NULL,
		"timestamp" TEXT NOT NULL,
		category TEXT NOT NULL,
		sentiment DOUBLE PRECISION NOT NULL,
		keyword_mentioned TEXT NOT NULL,
		message_length INTEGER NOT NULL
	)`

const insertSQL = `
	INSERT INTO streamed_messages
		(message, author, "timestamp", category, sentiment, keyword_mentioned, message_length)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// MessageRepository is the relational RecordSink on pgxpool.
type MessageRepository struct {
	pool        *pgxpool.Pool
	log         ports.Logger
	retryBase   time.Duration
	maxAttempts int
}

func NewMessageRepository(pool *pgxpool.Pool, log ports.Logger, retryBase time.Duration, maxAttempts int) *MessageRepository {
	if retryBase <= 0 {
		retryBase = 50 * time.Millisecond
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &MessageRepository{
		pool:        pool,
		log:         log,
		retryBase:   retryBase,
		maxAttempts: maxAttempts,
	}
}

// EnsureSchema idempotently creates the streamed_messages table; destructive
// drops it first. Safe to call on every startup.
func (r *MessageRepository) EnsureSchema(ctx context.Context, destructive bool) error {
	if destructive {
		if _, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS streamed_messages`); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
		r.log.Infof(ctx, "dropped streamed_messages for recreate")
	}
	if _, err := r.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Insert persists exactly one record, retrying while the store reports a
// busy/locked condition.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	return withRetry(ctx, "insert", r.retryBase, r.maxAttempts, r.log, func() error {
		_, err := r.pool.Exec(ctx, insertSQL,
			m.Message, m.Author, m.Timestamp, m.Category,
			m.Sentiment, m.KeywordMentioned, m.MessageLength,
		)
		return err
	})
}

// Delete removes one record by id. No retry: deletion is not on the
// steady-state ingestion path.
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("delete: invalid record id %q: %w", id, err)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM streamed_messages WHERE id = $1`, numID)
	if err != nil {
		return fmt.Errorf("delete id=%d: %w", numID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete id=%d: %w", numID, ports.ErrNoSuchRecord)
	}
	return nil
}

func (r *MessageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *MessageRepository) Close() error {
	r.pool.Close()
	return nil
}
