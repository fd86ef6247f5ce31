package resiligo_test

import (
	"testing"
	"time"

	"github.com/prilive-com/resiligo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigForStrategy_Presets(t *testing.T) {
	aggressive := resiligo.ConfigForStrategy(resiligo.StrategyAggressive)
	assert.Equal(t, resiligo.StrategyAggressive, aggressive.Strategy)
	assert.Equal(t, 5, aggressive.Retry.MaxAttempts)
	assert.Equal(t, uint32(3), aggressive.Breaker.FailureThreshold)

	balanced := resiligo.ConfigForStrategy(resiligo.StrategyBalanced)
	assert.Equal(t, resiligo.StrategyBalanced, balanced.Strategy)
	assert.Equal(t, 3, balanced.Retry.MaxAttempts)
	assert.Equal(t, uint32(5), balanced.Breaker.FailureThreshold)
	assert.Equal(t, 60*time.Second, balanced.Breaker.RecoveryTimeout)

	conservative := resiligo.ConfigForStrategy(resiligo.StrategyConservative)
	assert.Equal(t, resiligo.StrategyConservative, conservative.Strategy)
	assert.Equal(t, 3, conservative.Retry.MaxAttempts)
	assert.Equal(t, uint32(10), conservative.Breaker.FailureThreshold)
}

func TestConfigForStrategy_UnknownFallsBackToBalanced(t *testing.T) {
	cfg := resiligo.ConfigForStrategy(resiligo.Strategy("bogus"))
	assert.Equal(t, resiligo.StrategyBalanced, cfg.Strategy)

	cfg = resiligo.ConfigForStrategy(resiligo.StrategyUnspecified)
	assert.Equal(t, resiligo.StrategyBalanced, cfg.Strategy)
}

func TestConfig_PresetsValidate(t *testing.T) {
	for _, cfg := range []resiligo.Config{
		resiligo.AggressiveConfig(),
		resiligo.BalancedConfig(),
		resiligo.ConservativeConfig(),
		resiligo.DefaultConfig(),
	} {
		assert.NoError(t, cfg.Validate(), "preset %s should validate", cfg.Strategy)
	}
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	cfg := resiligo.BalancedConfig()
	cfg.Retry.MaxAttempts = 0
	assert.ErrorIs(t, cfg.Validate(), resiligo.ErrInvalidConfig)

	cfg = resiligo.BalancedConfig()
	cfg.Retry.Multiplier = 0
	assert.ErrorIs(t, cfg.Validate(), resiligo.ErrInvalidConfig)

	cfg = resiligo.BalancedConfig()
	cfg.Retry.MinWait = time.Minute
	cfg.Retry.MaxWait = time.Second
	assert.ErrorIs(t, cfg.Validate(), resiligo.ErrInvalidConfig)

	cfg = resiligo.BalancedConfig()
	cfg.Breaker.FailureThreshold = 0
	assert.ErrorIs(t, cfg.Validate(), resiligo.ErrInvalidConfig)

	cfg = resiligo.BalancedConfig()
	cfg.RateRPS = 10
	cfg.RateBurst = 0
	assert.ErrorIs(t, cfg.Validate(), resiligo.ErrInvalidConfig)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := resiligo.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, resiligo.BalancedConfig(), *cfg)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RESILIENCE_STRATEGY", "aggressive")
	t.Setenv("RESILIENCE_MAX_ATTEMPTS", "7")
	t.Setenv("RESILIENCE_BACKOFF_MIN", "250ms")
	t.Setenv("RESILIENCE_RECOVERY_TIMEOUT", "15s")
	t.Setenv("RESILIENCE_JITTER", "false")
	t.Setenv("RESILIENCE_RATE_RPS", "20")
	t.Setenv("RESILIENCE_RATE_BURST", "5")

	cfg, err := resiligo.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, resiligo.StrategyAggressive, cfg.Strategy)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.MinWait)
	assert.Equal(t, 15*time.Second, cfg.Breaker.RecoveryTimeout)
	assert.False(t, cfg.Retry.Jitter)
	assert.Equal(t, 20.0, cfg.RateRPS)
	assert.Equal(t, 5, cfg.RateBurst)
}

func TestLoadConfig_InvalidCombinationFails(t *testing.T) {
	t.Setenv("RESILIENCE_MAX_ATTEMPTS", "0")

	_, err := resiligo.LoadConfig()
	assert.ErrorIs(t, err, resiligo.ErrInvalidConfig)
}
