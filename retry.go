package resiligo

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"
)

// backoffDelay computes the wait before the attempt after attempt.
// The exponential term is Multiplier^(attempt-1) seconds, clamped to
// [MinWait, MaxWait], with additive uniform jitter from [0, JitterMax)
// so concurrent callers don't retry in lockstep.
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := math.Pow(cfg.Multiplier, float64(attempt-1)) * float64(time.Second)

	if delay < float64(cfg.MinWait) {
		delay = float64(cfg.MinWait)
	}
	if delay > float64(cfg.MaxWait) {
		delay = float64(cfg.MaxWait)
	}

	if cfg.Jitter && cfg.JitterMax > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.JitterMax)))
		if err == nil {
			delay += float64(n.Int64())
		}
	}

	return time.Duration(delay)
}

// runWithRetry invokes fn up to cfg.Retry.MaxAttempts times, retrying only
// errors the orchestrator's classifier marks transient. Permanent errors
// return immediately without consuming further attempts. With retry
// disabled, fn runs exactly once and its error propagates unmodified.
func runWithRetry[T any](ctx context.Context, o *Orchestrator, name string, cfg Config, m *Metrics, fn Func[T]) (T, error) {
	var zero T

	if !cfg.EnableRetry {
		return fn(ctx)
	}

	maxAttempts := cfg.Retry.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Non-retryable errors return immediately (not wrapped in ErrRetriesExhausted)
		if o.classify(err) != ClassTransient {
			return zero, err
		}

		if attempt >= maxAttempts {
			break
		}

		m.recordRetry()
		delay := backoffDelay(cfg.Retry, attempt)

		o.logger.Warn("retrying operation",
			"operation", name,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"backoff", delay,
			"error", err,
		)

		if err := o.sleeper.Sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}
