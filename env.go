package resiligo

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig loads configuration from environment variables.
// Unset or unparsable variables fall back to the balanced defaults
// (or to the preset named by RESILIENCE_STRATEGY).
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if s := getEnv("RESILIENCE_STRATEGY", ""); s != "" {
		cfg = ConfigForStrategy(Strategy(strings.ToLower(s)))
	}

	if i, err := strconv.Atoi(getEnv("RESILIENCE_MAX_ATTEMPTS", "")); err == nil {
		cfg.Retry.MaxAttempts = i
	}

	if f, err := strconv.ParseFloat(getEnv("RESILIENCE_BACKOFF_MULTIPLIER", ""), 64); err == nil {
		cfg.Retry.Multiplier = f
	}

	if d, err := time.ParseDuration(getEnv("RESILIENCE_BACKOFF_MIN", "")); err == nil {
		cfg.Retry.MinWait = d
	}

	if d, err := time.ParseDuration(getEnv("RESILIENCE_BACKOFF_MAX", "")); err == nil {
		cfg.Retry.MaxWait = d
	}

	if b, err := strconv.ParseBool(getEnv("RESILIENCE_JITTER", "")); err == nil {
		cfg.Retry.Jitter = b
	}

	if d, err := time.ParseDuration(getEnv("RESILIENCE_JITTER_MAX", "")); err == nil {
		cfg.Retry.JitterMax = d
	}

	if i, err := strconv.ParseUint(getEnv("RESILIENCE_FAILURE_THRESHOLD", ""), 10, 32); err == nil {
		cfg.Breaker.FailureThreshold = uint32(i)
	}

	if d, err := time.ParseDuration(getEnv("RESILIENCE_RECOVERY_TIMEOUT", "")); err == nil {
		cfg.Breaker.RecoveryTimeout = d
	}

	if b, err := strconv.ParseBool(getEnv("RESILIENCE_ENABLE_RETRY", "")); err == nil {
		cfg.EnableRetry = b
	}

	if b, err := strconv.ParseBool(getEnv("RESILIENCE_ENABLE_BREAKER", "")); err == nil {
		cfg.EnableBreaker = b
	}

	if f, err := strconv.ParseFloat(getEnv("RESILIENCE_RATE_RPS", ""), 64); err == nil {
		cfg.RateRPS = f
	}

	if i, err := strconv.Atoi(getEnv("RESILIENCE_RATE_BURST", "")); err == nil {
		cfg.RateBurst = i
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
