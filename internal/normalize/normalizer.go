package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/buzzline/consumer/internal/domain"
	"github.com/buzzline/consumer/internal/ports"
)

var _ ports.MessageNormalizer = (*Normalizer)(nil)

// ErrInvalidMessage is the sentinel error for structural rejections: blank
// lines, malformed JSON, non-object payloads. Callers skip the unit and keep
// going.
var ErrInvalidMessage = errors.New("message normalization failed")

// Normalizer maps a raw JSON line onto the seven-field record. Fields arrive
// with unreliable types (numbers quoted as strings, lengths missing), so each
// one is coerced individually instead of decoded into a typed struct.
type Normalizer struct{}

func NewNormalizer() *Normalizer { return &Normalizer{} }

// LooksLikeObject is the cheap precheck applied before full parsing: a line
// read mid-write by a concurrent appender rarely survives it, which keeps
// parse noise out of the logs.
func LooksLikeObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}'
}

// Normalize parses and coerces one raw unit. Every field of the returned
// record holds a defined value: text fields are trimmed (empty on absence),
// sentiment falls back to 0.0, and a missing or non-positive message_length is
// recomputed as the character count of the trimmed message text.
func (n *Normalizer) Normalize(_ context.Context, raw []byte) (*domain.Message, error) {
	if !LooksLikeObject(raw) {
		return nil, fmt.Errorf("%w: not a JSON object line", ErrInvalidMessage)
	}

	var fields map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	msg := &domain.Message{
		Message:          trimmedString(fields["message"]),
		Author:           trimmedString(fields["author"]),
		Timestamp:        trimmedString(fields["timestamp"]),
		Category:         trimmedString(fields["category"]),
		Sentiment:        coerceFloat(fields["sentiment"]),
		KeywordMentioned: trimmedString(fields["keyword_mentioned"]),
		MessageLength:    coerceInt(fields["message_length"]),
	}

	if msg.MessageLength <= 0 {
		msg.MessageLength = utf8.RuneCountInString(msg.Message)
	}

	return msg, nil
}

func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceFloat mirrors the tolerant float conversion of the upstream feed:
// anything that does not convert cleanly becomes 0.0.
func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
