package testutil

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prilive-com/resiligo"
)

// DiscardLogger returns a logger that drops everything, keeping test
// output clean.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NoJitterConfig returns a retry-only config with deterministic backoff:
// maxAttempts attempts, multiplier 2, waits clamped to [10ms, 1s], no
// jitter, breaker disabled so retry behavior can be asserted in isolation.
func NoJitterConfig(maxAttempts int) resiligo.Config {
	return resiligo.Config{
		Retry: resiligo.RetryConfig{
			MaxAttempts: maxAttempts,
			Multiplier:  2.0,
			MinWait:     10 * time.Millisecond,
			MaxWait:     time.Second,
			Jitter:      false,
		},
		EnableRetry: true,
	}
}

// FastBreakerConfig returns a breaker-only config that trips after
// threshold consecutive failures and probes recovery after 50ms.
// Retry is disabled so breaker behavior can be asserted directly.
func FastBreakerConfig(threshold uint32) resiligo.Config {
	return resiligo.Config{
		Breaker: resiligo.BreakerConfig{
			FailureThreshold: threshold,
			RecoveryTimeout:  50 * time.Millisecond,
		},
		EnableBreaker: true,
	}
}

// NewOrchestrator creates an orchestrator with a FakeSleeper and a silent
// logger, returning both so tests can assert backoff timing.
func NewOrchestrator(t *testing.T, opts ...resiligo.Option) (*resiligo.Orchestrator, *FakeSleeper) {
	t.Helper()

	sleeper := &FakeSleeper{}
	defaultOpts := []resiligo.Option{
		resiligo.WithLogger(DiscardLogger()),
		resiligo.WithSleeper(sleeper),
	}

	return resiligo.New(append(defaultOpts, opts...)...), sleeper
}

// NewBreakerOrchestrator creates an orchestrator for breaker tests:
// real sleeps (breaker recovery uses wall time) but a silent logger.
func NewBreakerOrchestrator(t *testing.T, opts ...resiligo.Option) *resiligo.Orchestrator {
	t.Helper()

	defaultOpts := []resiligo.Option{
		resiligo.WithLogger(DiscardLogger()),
	}

	return resiligo.New(append(defaultOpts, opts...)...)
}
