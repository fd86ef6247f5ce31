package resiligo

import "log/slog"

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSleeper sets a custom sleeper for retry timing (useful for testing).
func WithSleeper(s Sleeper) Option {
	return func(o *Orchestrator) {
		o.sleeper = s
	}
}

// WithClassifier sets the error classifier used by the retry engine.
func WithClassifier(c Classifier) Option {
	return func(o *Orchestrator) {
		o.classify = c
	}
}
