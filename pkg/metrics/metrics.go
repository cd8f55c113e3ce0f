package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UnitsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buzz_units_consumed_total",
			Help: "Number of raw units pulled from the message source",
		},
		[]string{"source"},
	)
	UnitsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buzz_units_processed_total",
			Help: "Number of units normalized and persisted to the sink",
		},
		[]string{"source"},
	)
	UnitsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buzz_units_skipped_total",
			Help: "Number of malformed units discarded",
		},
		[]string{"source"},
	)
)

var (
	SinkRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buzz_sink_retries_total",
			Help: "Number of sink write retries after a busy/locked store",
		},
		[]string{"op"},
	)
	SourceTruncations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "buzz_source_truncations_total",
			Help: "Number of observed source truncation/rotation events",
		},
	)
	CursorOffset = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "buzz_cursor_offset_bytes",
			Help: "Committed byte offset into the current source incarnation",
		},
	)
)

var registerOnce sync.Once

// MustRegister is safe to call more than once; only the first call registers.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UnitsConsumed, UnitsProcessed, UnitsSkipped,
			SinkRetries, SourceTruncations, CursorOffset,
		)
	})
}
