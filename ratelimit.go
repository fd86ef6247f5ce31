package resiligo

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// waitForRateLimit blocks until the operation's limiter admits the call.
// No-op when the resolved config has rate limiting disabled.
func (o *Orchestrator) waitForRateLimit(ctx context.Context, name string, cfg Config) error {
	if cfg.RateRPS <= 0 {
		return nil
	}

	limiter := o.getLimiter(name, cfg)
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return nil
}

// getLimiter returns the limiter for name, creating it lazily.
// As with breakers, the first caller's config wins.
func (o *Orchestrator) getLimiter(name string, cfg Config) *rate.Limiter {
	o.limiterMu.RLock()
	limiter, exists := o.limiters[name]
	o.limiterMu.RUnlock()

	if exists {
		return limiter
	}

	o.limiterMu.Lock()
	defer o.limiterMu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = o.limiters[name]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), cfg.RateBurst)
	o.limiters[name] = limiter
	return limiter
}
