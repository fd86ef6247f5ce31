package resiligo

import "context"

// Fallback is a degraded-mode callable invoked when the primary path fails
// terminally: retry exhaustion, a permanent error, or a circuit-open
// rejection. It receives the triggering error as cause; the operation's
// original arguments are whatever the primary closure captured, so both
// see the same inputs. Its result replaces the error for the caller.
type Fallback[T any] func(ctx context.Context, cause error) (T, error)

// runFallback routes a terminal error through fb when one is configured.
// Without a fallback the original error propagates unchanged.
func runFallback[T any](ctx context.Context, fb Fallback[T], cause error) (T, error) {
	if fb == nil {
		var zero T
		return zero, cause
	}
	return fb(ctx, cause)
}
