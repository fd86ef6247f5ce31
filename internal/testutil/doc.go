// Package testutil provides testing utilities for resiligo.
//
// This package is intended for internal testing only and should not be imported
// by external packages.
//
// # Fake Sleeper
//
// FakeSleeper records sleep calls without actually sleeping:
//
//	sleeper := &testutil.FakeSleeper{}
//	// Pass to the orchestrator via WithSleeper option
//	assert.Equal(t, 2*time.Second, sleeper.LastCall())
//
// # Test Orchestrators
//
// Constructors return orchestrators tuned for fast, deterministic tests:
//
//	orch, sleeper := testutil.NewOrchestrator(t)
//	orch := testutil.NewBreakerOrchestrator(t) // breaker trips after 2 failures
//
// # Configs
//
// Deterministic configs with jitter disabled and short recovery timeouts:
//
//	cfg := testutil.NoJitterConfig(3)       // 3 attempts, exact backoff
//	cfg := testutil.FastBreakerConfig(2)    // trips after 2 failures, 50ms recovery
package testutil
