package resiligo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Func is an operation producing a value of type T. Arguments beyond the
// context are captured by the closure, which is how fallbacks receive the
// same inputs as the primary call.
type Func[T any] func(ctx context.Context) (T, error)

// Sleeper abstracts time-based waiting for testing.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// realSleeper uses actual time.
type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Orchestrator composes retry, circuit breaking, rate limiting, metrics,
// and fallback around arbitrary operations keyed by name. It owns its own
// metrics registry and breaker table; construct as many independent
// orchestrators as you need (there is no package-level singleton).
type Orchestrator struct {
	logger   *slog.Logger
	sleeper  Sleeper
	classify Classifier

	regMu         sync.RWMutex
	registrations map[string]Strategy

	metricsMu sync.RWMutex
	metrics   map[string]*Metrics

	breakerMu sync.RWMutex
	breakers  map[string]*CircuitBreaker

	limiterMu sync.RWMutex
	limiters  map[string]*rate.Limiter
}

// New creates an Orchestrator with the given options.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registrations: make(map[string]Strategy),
		metrics:       make(map[string]*Metrics),
		breakers:      make(map[string]*CircuitBreaker),
		limiters:      make(map[string]*rate.Limiter),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.sleeper == nil {
		o.sleeper = realSleeper{}
	}
	if o.classify == nil {
		o.classify = DefaultClassifier
	}

	return o
}

// CallOptions carries per-call overrides for ExecuteWith and WrapWith.
// Config wins over Strategy when both are set.
type CallOptions struct {
	Strategy Strategy
	Config   *Config
}

// Execute runs fn under the policy resolved for name.
func Execute[T any](ctx context.Context, o *Orchestrator, name string, fn Func[T]) (T, error) {
	return ExecuteWith(ctx, o, name, CallOptions{}, fn, nil)
}

// ExecuteWith runs fn under the resolved policy, with optional per-call
// overrides and an optional fallback. One call proceeds as: resolve config,
// rate-limit, breaker gate, retry engine, metrics, then fallback on
// terminal failure.
func ExecuteWith[T any](ctx context.Context, o *Orchestrator, name string, opts CallOptions, fn Func[T], fb Fallback[T]) (T, error) {
	cfg := o.resolveConfig(name, opts)
	m := o.GetMetrics(name)

	if err := o.waitForRateLimit(ctx, name, cfg); err != nil {
		var zero T
		return zero, err
	}

	var result T
	var err error
	var cb *CircuitBreaker

	if cfg.EnableBreaker {
		cb = o.getBreaker(name, cfg.Breaker)
		err = cb.execute(func() error {
			var ferr error
			result, ferr = runWithRetry(ctx, o, name, cfg, m, fn)
			return ferr
		})
	} else {
		result, err = runWithRetry(ctx, o, name, cfg, m, fn)
	}

	if err == nil {
		m.recordSuccess()
		if cb != nil {
			cb.metrics.recordSuccess()
		}
		return result, nil
	}

	m.recordFailure()
	if cb != nil {
		cb.metrics.recordFailure()
	}

	return runFallback(ctx, fb, err)
}

// Wrap returns fn decorated with the policy resolved for name. The wrapped
// function keeps fn's signature and can be called any number of times.
func Wrap[T any](o *Orchestrator, name string, fn Func[T]) Func[T] {
	return WrapWith(o, name, CallOptions{}, fn, nil)
}

// WrapWith is Wrap with per-call overrides and an optional fallback.
func WrapWith[T any](o *Orchestrator, name string, opts CallOptions, fn Func[T], fb Fallback[T]) Func[T] {
	return func(ctx context.Context) (T, error) {
		return ExecuteWith(ctx, o, name, opts, fn, fb)
	}
}

// Do runs an error-only operation under the policy resolved for name.
func Do(ctx context.Context, o *Orchestrator, name string, fn func(ctx context.Context) error) error {
	_, err := Execute(ctx, o, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoWith is Do with per-call overrides and an optional error-only fallback.
func DoWith(ctx context.Context, o *Orchestrator, name string, opts CallOptions, fn func(ctx context.Context) error, fb func(ctx context.Context, cause error) error) error {
	var wrapped Fallback[struct{}]
	if fb != nil {
		wrapped = func(ctx context.Context, cause error) (struct{}, error) {
			return struct{}{}, fb(ctx, cause)
		}
	}
	_, err := ExecuteWith(ctx, o, name, opts, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, wrapped)
	return err
}
