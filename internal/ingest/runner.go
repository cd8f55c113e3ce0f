package ingest

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/buzzline/consumer/internal/normalize"
	"github.com/buzzline/consumer/internal/ports"
	"github.com/buzzline/consumer/pkg/metrics"
)

// recordSaver is the dependency on the domain logic that parses, normalizes
// and persists one unit.
type recordSaver interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Config bundles the loop timings.
type Config struct {
	PollInterval   time.Duration // wait between polls that yield nothing
	ProcessTimeout time.Duration // budget for one unit end to end
	RetryInitial   time.Duration // first backoff after a poll error
	RetryMax       time.Duration // backoff ceiling
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.PollInterval <= 0 {
		out.PollInterval = time.Second
	}
	if out.ProcessTimeout <= 0 {
		out.ProcessTimeout = 5 * time.Second
	}
	if out.RetryInitial <= 0 {
		out.RetryInitial = time.Second
	}
	if out.RetryMax <= 0 {
		out.RetryMax = 30 * time.Second
	}
	return out
}

// Runner drives the ingestion loop over any MessageSource. Two steady states:
// polling (no new complete units) and draining (working through a polled
// batch in arrival order). Only context cancellation terminates it; every
// other condition is absorbed with a wait and the loop re-enters polling.
type Runner struct {
	source  ports.MessageSource
	service recordSaver
	log     ports.Logger
	cfg     Config

	// jitterRand desynchronizes the exponential backoff across processes.
	jitterRand *rand.Rand
}

func NewRunner(source ports.MessageSource, service recordSaver, log ports.Logger, cfg Config) *Runner {
	return &Runner{
		source:     source,
		service:    service,
		log:        log,
		cfg:        cfg.withDefaults(),
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes the loop until ctx is cancelled:
//  1. poll the source; an absent source means wait, never fail;
//  2. a poll error backs off exponentially with equal jitter;
//  3. for each unit in order: save, then commit; a rejected unit is skipped
//     and still committed, since its bytes were fully consumed;
//  4. a transient save failure abandons the rest of the batch without
//     committing; the uncommitted units come back on a later poll.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Infof(ctx, "ingestion loop started source=%s poll_interval=%s", r.source.Name(), r.cfg.PollInterval)

	backoff := r.cfg.RetryInitial

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		units, err := r.source.Poll(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ports.ErrSourceAbsent):
			r.log.Warnf(ctx, "source absent, retrying in %s", r.cfg.PollInterval)
			if !r.sleep(ctx, r.cfg.PollInterval) {
				return ctx.Err()
			}
			continue
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			sleep := r.withJitterEqual(backoff)
			r.log.Warnf(ctx, "poll failed: %v (will retry in %s)", err, sleep)
			if !r.sleep(ctx, sleep) {
				return ctx.Err()
			}
			backoff = r.nextBackoff(backoff)
			continue
		}
		backoff = r.cfg.RetryInitial

		if len(units) == 0 {
			if !r.sleep(ctx, r.cfg.PollInterval) {
				return ctx.Err()
			}
			continue
		}

		// draining
		for _, u := range units {
			if err := ctx.Err(); err != nil {
				return err
			}
			metrics.UnitsConsumed.WithLabelValues(r.source.Name()).Inc()

			if !r.handleUnit(ctx, u) {
				// Transient failure: abandon the batch without committing and
				// space out the next attempt.
				_ = r.sleep(ctx, r.withJitterEqual(minDuration(r.cfg.RetryInitial, 500*time.Millisecond)))
				break
			}
			r.commitSafely(ctx, u)
		}
	}
}

// handleUnit processes one unit and reports whether its position may be
// committed. A panic inside a single unit is contained like any other
// iteration failure.
func (r *Runner) handleUnit(ctx context.Context, u ports.RawUnit) (commit bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf(ctx, "panic while processing unit: %v", rec)
			commit = false
		}
	}()

	saveCtx, cancel := context.WithTimeout(ctx, r.cfg.ProcessTimeout)
	err := r.service.SaveFromMessage(saveCtx, u.Bytes())
	cancel()

	switch {
	case err == nil:
		metrics.UnitsProcessed.WithLabelValues(r.source.Name()).Inc()
		return true
	case errors.Is(err, normalize.ErrInvalidMessage):
		// Structural skip: the line was fully consumed, so the cursor still
		// advances past it.
		metrics.UnitsSkipped.WithLabelValues(r.source.Name()).Inc()
		r.log.Warnf(ctx, "invalid unit skipped: %v", err)
		return true
	default:
		r.log.Warnf(ctx, "process failed: %v (will retry without commit)", err)
		return false
	}
}

func (r *Runner) commitSafely(ctx context.Context, u ports.RawUnit) {
	if err := r.source.Commit(ctx, u); err != nil {
		r.log.Warnf(ctx, "commit failed: %v", err)
	}
}

// sleep waits d or reports false on context cancellation.
func (r *Runner) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (r *Runner) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > r.cfg.RetryMax {
		return r.cfg.RetryMax
	}
	return current
}

// withJitterEqual keeps half the delay fixed and randomizes the other half.
func (r *Runner) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(r.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
