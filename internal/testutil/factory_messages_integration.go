//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/buzzline/consumer/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeMessage builds a valid feed record with unique author/keyword markers.
func MakeMessage(opts ...func(*domain.Message)) domain.Message {
	text := "Just deployed the new dashboard " + UniqSuffix()

	m := domain.Message{
		Message:          text,
		Author:           "User_" + UniqSuffix(),
		Timestamp:        time.Now().UTC().Format("2006-01-02 15:04:05"),
		Category:         "tech",
		Sentiment:        0.75,
		KeywordMentioned: "deployed",
		MessageLength:    utf8.RuneCountInString(text),
	}

	for _, fn := range opts {
		fn(&m)
	}
	return m
}

func WithAuthor(author string) func(*domain.Message) {
	return func(m *domain.Message) { m.Author = author }
}

func WithSentiment(s float64) func(*domain.Message) {
	return func(m *domain.Message) { m.Sentiment = s }
}

func WithCategory(cat string) func(*domain.Message) {
	return func(m *domain.Message) { m.Category = cat }
}

func WithText(text string) func(*domain.Message) {
	return func(m *domain.Message) {
		m.Message = text
		m.MessageLength = utf8.RuneCountInString(text)
	}
}

// JSONLine renders a message as one feed line, newline excluded.
func JSONLine(m domain.Message) []byte {
	b, _ := json.Marshal(m)
	return b
}
