package kafka

import "github.com/segmentio/kafka-go"

type SourceConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string
}

// readerConfig disables interval commits: offsets are committed one message
// at a time, only after the record reached the sink.
func (c *SourceConfig) readerConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	switch c.StartOffset {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}
