package normalize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/buzzline/consumer/internal/normalize"
)

func TestNormalize_AllFieldsPresent(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"message":"I just shared a meme! It was amazing.","author":"Charlie","timestamp":"2025-01-29 14:35:20","category":"humor","sentiment":0.87,"keyword_mentioned":"meme","message_length":42}`)

	n := normalize.NewNormalizer()
	msg, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if msg.Message != "I just shared a meme! It was amazing." {
		t.Errorf("message: got %q", msg.Message)
	}
	if msg.Author != "Charlie" || msg.Timestamp != "2025-01-29 14:35:20" || msg.Category != "humor" {
		t.Errorf("text fields wrong: %+v", msg)
	}
	if msg.Sentiment != 0.87 {
		t.Errorf("sentiment: want 0.87, got %v", msg.Sentiment)
	}
	if msg.KeywordMentioned != "meme" {
		t.Errorf("keyword_mentioned: got %q", msg.KeywordMentioned)
	}
	if msg.MessageLength != 42 {
		t.Errorf("message_length: want 42 (round-trip), got %d", msg.MessageLength)
	}
}

// Non-numeric sentiment falls back to 0.0 and a zero length is recomputed
// from the message text.
func TestNormalize_CoercionFallbacks(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"message":"hi!","author":"A","timestamp":"t","category":"c","sentiment":"bad","keyword_mentioned":"k","message_length":0}`)

	n := normalize.NewNormalizer()
	msg, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if msg.Sentiment != 0.0 {
		t.Errorf("sentiment: want 0.0, got %v", msg.Sentiment)
	}
	if msg.MessageLength != 3 {
		t.Errorf("message_length: want 3, got %d", msg.MessageLength)
	}
}

func TestNormalize_MissingFieldsGetDefaults(t *testing.T) {
	t.Parallel()

	n := normalize.NewNormalizer()
	msg, err := n.Normalize(context.Background(), []byte(`{"message":"  два слова  "}`))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if msg.Author != "" || msg.Timestamp != "" || msg.Category != "" || msg.KeywordMentioned != "" {
		t.Errorf("absent text fields must default to empty: %+v", msg)
	}
	if msg.Sentiment != 0.0 {
		t.Errorf("sentiment default: got %v", msg.Sentiment)
	}
	// character count of the trimmed text, not its byte length
	if msg.MessageLength != 9 {
		t.Errorf("message_length: want 9 runes, got %d", msg.MessageLength)
	}
	if msg.Message != "два слова" {
		t.Errorf("message must be trimmed, got %q", msg.Message)
	}
}

func TestNormalize_NumericStringsCoerce(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"message":"x","sentiment":"0.5","message_length":"7"}`)

	n := normalize.NewNormalizer()
	msg, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if msg.Sentiment != 0.5 {
		t.Errorf("sentiment: want 0.5, got %v", msg.Sentiment)
	}
	if msg.MessageLength != 7 {
		t.Errorf("message_length: want 7, got %d", msg.MessageLength)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	t.Parallel()

	n := normalize.NewNormalizer()
	for _, raw := range [][]byte{
		[]byte(``),
		[]byte(`   `),
		[]byte(`not json at all`),
		[]byte(`{"message":"partially writ`),
		[]byte(`[1,2,3]`),
		[]byte(`{"message": broken}`),
	} {
		if _, err := n.Normalize(context.Background(), raw); !errors.Is(err, normalize.ErrInvalidMessage) {
			t.Errorf("Normalize(%q): want ErrInvalidMessage, got %v", raw, err)
		}
	}
}

func TestLooksLikeObject(t *testing.T) {
	t.Parallel()

	if !normalize.LooksLikeObject([]byte(`  {"a":1}  `)) {
		t.Error("padded object must pass the precheck")
	}
	if normalize.LooksLikeObject([]byte(`{"a":1`)) {
		t.Error("unterminated object must fail the precheck")
	}
	if normalize.LooksLikeObject([]byte(``)) {
		t.Error("blank line must fail the precheck")
	}
}
