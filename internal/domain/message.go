package domain

import (
	"strings"
)

// Sentiment label thresholds.
const (
	positiveAbove = 0.6
	negativeBelow = 0.4
)

// Message is one normalized record as it is persisted. Every field always
// carries a defined value; the normalizer guarantees no field is left unset.
// ID is assigned by the store and never travels over the wire.
type Message struct {
	ID               int64   `json:"-"`
	Message          string  `json:"message"`
	Author           string  `json:"author"`
	Timestamp        string  `json:"timestamp"`
	Category         string  `json:"category"`
	Sentiment        float64 `json:"sentiment"`
	KeywordMentioned string  `json:"keyword_mentioned"`
	MessageLength    int     `json:"message_length"`
}

// SentimentLabel buckets the sentiment score for observability. The label is
// logged alongside the record but never persisted.
func (m *Message) SentimentLabel() string {
	switch {
	case m.Sentiment > positiveAbove:
		return "positive"
	case m.Sentiment < negativeBelow:
		return "negative"
	default:
		return "neutral"
	}
}

// HasExclamation reports whether the message text contains an exclamation mark.
func (m *Message) HasExclamation() bool {
	return strings.Contains(m.Message, "!")
}

// WordCount returns the whitespace-delimited word count of the message text.
func (m *Message) WordCount() int {
	return len(strings.Fields(m.Message))
}
