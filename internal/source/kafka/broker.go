package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/buzzline/consumer/internal/ports"
)

// WaitForBroker probes the first broker with a bounded number of dial
// attempts before the consumer starts. An unreachable broker at startup is an
// operator problem and must surface as a distinct exit, unlike transient
// fetch errors later on.
func WaitForBroker(ctx context.Context, brokers []string, attempts int, delay time.Duration, log ports.Logger) error {
	if len(brokers) == 0 {
		return fmt.Errorf("no brokers configured")
	}
	if attempts <= 0 {
		attempts = 1
	}

	addr := brokers[0]
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err == nil {
			_ = conn.Close()
			log.Infof(ctx, "kafka broker reachable addr=%s", addr)
			return nil
		}
		lastErr = err
		log.Warnf(ctx, "kafka broker probe %d/%d failed addr=%s: %v", attempt, attempts, addr, err)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("broker %s unreachable after %d attempts: %w", addr, attempts, lastErr)
}
