package ports

import (
	"context"

	"github.com/buzzline/consumer/internal/domain"
)

// MessageNormalizer turns one raw unit into a normalized record or rejects it.
type MessageNormalizer interface {
	Normalize(ctx context.Context, raw []byte) (*domain.Message, error)
}
