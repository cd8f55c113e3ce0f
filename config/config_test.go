package config_test

import (
	"testing"
	"time"

	cfg "github.com/buzzline/consumer/config"
)

func TestLoadWithPrefix_Defaults(t *testing.T) {
	c, err := cfg.LoadWithPrefix("BUZZ_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.Source.Kind != "file" || c.Source.PollInterval != time.Second {
		t.Fatalf("Source defaults wrong: %+v", c.Source)
	}
	if c.File.Path != "data/project_live.json" {
		t.Fatalf("File.Path: got %q", c.File.Path)
	}

	if c.Sink.Kind != "postgres" || c.Sink.ResetSchema {
		t.Fatalf("Sink defaults wrong: %+v", c.Sink)
	}
	if c.Postgres.MaxConns != 10 || c.Postgres.RetryBase != 50*time.Millisecond || c.Postgres.RetryMaxAttempts != 5 {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}
	if c.Elastic.Index != "streamed_messages" {
		t.Fatalf("Elastic.Index: got %q", c.Elastic.Index)
	}

	if c.Kafka.Topic != "buzzline" || c.Kafka.GroupID != "buzz_group" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProbeAttempts != 15 || c.Kafka.ProbeDelay != 2*time.Second {
		t.Fatalf("Kafka probe defaults wrong: %+v", c.Kafka)
	}

	if c.HTTP.Addr != ":8080" || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.Tracing.Enabled || c.Tracing.ServiceName != "buzzline-consumer" {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}
	if c.Logger.IsProd {
		t.Fatal("Logger.IsProd default must be false")
	}
}

func TestLoadWithPrefix_EnvOverrides(t *testing.T) {
	t.Setenv("BUZZ_TEST_OVR_SOURCE_KIND", "kafka")
	t.Setenv("BUZZ_TEST_OVR_SOURCE_POLL_INTERVAL", "250ms")
	t.Setenv("BUZZ_TEST_OVR_SINK_KIND", "elastic")
	t.Setenv("BUZZ_TEST_OVR_SINK_RESET_SCHEMA", "true")
	t.Setenv("BUZZ_TEST_OVR_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BUZZ_TEST_OVR_POSTGRES_RETRY_MAX_ATTEMPTS", "9")

	c, err := cfg.LoadWithPrefix("BUZZ_TEST_OVR")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.Source.Kind != "kafka" || c.Source.PollInterval != 250*time.Millisecond {
		t.Fatalf("Source overrides wrong: %+v", c.Source)
	}
	if c.Sink.Kind != "elastic" || !c.Sink.ResetSchema {
		t.Fatalf("Sink overrides wrong: %+v", c.Sink)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[0] != "k1:9092" {
		t.Fatalf("Kafka.Brokers: got %v", c.Kafka.Brokers)
	}
	if c.Postgres.RetryMaxAttempts != 9 {
		t.Fatalf("Postgres.RetryMaxAttempts: got %d", c.Postgres.RetryMaxAttempts)
	}
}

func TestLoadWithPrefix_RejectsUnknownKinds(t *testing.T) {
	t.Setenv("BUZZ_TEST_BADSRC_SOURCE_KIND", "carrier-pigeon")
	if _, err := cfg.LoadWithPrefix("BUZZ_TEST_BADSRC"); err == nil {
		t.Fatal("unknown source kind must be rejected")
	}

	t.Setenv("BUZZ_TEST_BADSINK_SINK_KIND", "parquet")
	if _, err := cfg.LoadWithPrefix("BUZZ_TEST_BADSINK"); err == nil {
		t.Fatal("unknown sink kind must be rejected")
	}
}
