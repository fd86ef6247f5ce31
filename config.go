package resiligo

import (
	"fmt"
	"time"
)

// Strategy names a preset bundling retry and circuit breaker defaults.
type Strategy string

const (
	// StrategyUnspecified defers to registration or the balanced default.
	StrategyUnspecified Strategy = ""
	// StrategyAggressive retries hard with short waits and trips the
	// breaker quickly. For latency-sensitive callers with cheap operations.
	StrategyAggressive Strategy = "aggressive"
	// StrategyBalanced is the default for unregistered operations.
	StrategyBalanced Strategy = "balanced"
	// StrategyConservative waits longer between attempts and tolerates more
	// failures before opening. For expensive backends under quota.
	StrategyConservative Strategy = "conservative"
)

// RetryConfig holds retry behavior for one operation.
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first (>= 1)
	Multiplier  float64       // Exponential base: wait grows as Multiplier^(attempt-1) seconds
	MinWait     time.Duration // Lower clamp on the computed wait
	MaxWait     time.Duration // Upper clamp on the computed wait
	Jitter      bool          // Add uniform jitter to each wait
	JitterMax   time.Duration // Jitter upper bound (additive, drawn from [0, JitterMax))
}

// BreakerConfig holds circuit breaker thresholds for one operation.
type BreakerConfig struct {
	FailureThreshold uint32        // Consecutive failures before opening
	RecoveryTimeout  time.Duration // Open duration before a half-open probe
}

// Config is the fully resolved resilience policy for a call.
// Once resolved it is treated as a value and never mutated.
type Config struct {
	Strategy Strategy
	Retry    RetryConfig
	Breaker  BreakerConfig

	EnableRetry   bool
	EnableBreaker bool

	// RateRPS enables per-operation rate limiting when > 0.
	// RateBurst must be >= 1 when rate limiting is enabled.
	RateRPS   float64
	RateBurst int
}

// AggressiveConfig returns the canonical aggressive preset.
func AggressiveConfig() Config {
	return Config{
		Strategy: StrategyAggressive,
		Retry: RetryConfig{
			MaxAttempts: 5,
			Multiplier:  1.5,
			MinWait:     500 * time.Millisecond,
			MaxWait:     10 * time.Second,
			Jitter:      true,
			JitterMax:   time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 3,
			RecoveryTimeout:  30 * time.Second,
		},
		EnableRetry:   true,
		EnableBreaker: true,
	}
}

// BalancedConfig returns the canonical balanced preset.
func BalancedConfig() Config {
	return Config{
		Strategy: StrategyBalanced,
		Retry: RetryConfig{
			MaxAttempts: 3,
			Multiplier:  2.0,
			MinWait:     time.Second,
			MaxWait:     30 * time.Second,
			Jitter:      true,
			JitterMax:   2 * time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  60 * time.Second,
		},
		EnableRetry:   true,
		EnableBreaker: true,
	}
}

// ConservativeConfig returns the canonical conservative preset.
func ConservativeConfig() Config {
	return Config{
		Strategy: StrategyConservative,
		Retry: RetryConfig{
			MaxAttempts: 3,
			Multiplier:  3.0,
			MinWait:     2 * time.Second,
			MaxWait:     60 * time.Second,
			Jitter:      true,
			JitterMax:   5 * time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 10,
			RecoveryTimeout:  120 * time.Second,
		},
		EnableRetry:   true,
		EnableBreaker: true,
	}
}

// DefaultConfig returns the balanced preset.
func DefaultConfig() Config {
	return BalancedConfig()
}

// ConfigForStrategy maps a strategy name to its canonical config.
// Unknown or unspecified strategies resolve to balanced.
func ConfigForStrategy(s Strategy) Config {
	switch s {
	case StrategyAggressive:
		return AggressiveConfig()
	case StrategyConservative:
		return ConservativeConfig()
	default:
		return BalancedConfig()
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.EnableRetry {
		if c.Retry.MaxAttempts < 1 {
			return fmt.Errorf("%w: max attempts must be >= 1, got %d", ErrInvalidConfig, c.Retry.MaxAttempts)
		}
		if c.Retry.Multiplier <= 0 {
			return fmt.Errorf("%w: multiplier must be > 0, got %g", ErrInvalidConfig, c.Retry.Multiplier)
		}
		if c.Retry.MinWait < 0 || c.Retry.MaxWait < c.Retry.MinWait {
			return fmt.Errorf("%w: wait bounds min=%s max=%s", ErrInvalidConfig, c.Retry.MinWait, c.Retry.MaxWait)
		}
		if c.Retry.Jitter && c.Retry.JitterMax < 0 {
			return fmt.Errorf("%w: jitter max must be >= 0, got %s", ErrInvalidConfig, c.Retry.JitterMax)
		}
	}
	if c.EnableBreaker {
		if c.Breaker.FailureThreshold == 0 {
			return fmt.Errorf("%w: failure threshold must be >= 1", ErrInvalidConfig)
		}
		if c.Breaker.RecoveryTimeout <= 0 {
			return fmt.Errorf("%w: recovery timeout must be > 0, got %s", ErrInvalidConfig, c.Breaker.RecoveryTimeout)
		}
	}
	if c.RateRPS > 0 && c.RateBurst < 1 {
		return fmt.Errorf("%w: rate burst must be >= 1 when rate limiting is enabled", ErrInvalidConfig)
	}
	return nil
}
