package resiligo

import (
	"context"
	"errors"
	"net"
)

// Sentinel errors - use with errors.Is()
var (
	// ErrCircuitOpen is returned when a call is rejected by an open circuit
	// breaker before the operation runs.
	ErrCircuitOpen = errors.New("resiligo: circuit breaker open")

	// ErrRetriesExhausted wraps the last transient error once all attempts
	// have been consumed.
	ErrRetriesExhausted = errors.New("resiligo: retries exhausted")

	// ErrRateLimited wraps rate-limiter wait failures.
	ErrRateLimited = errors.New("resiligo: rate limit exceeded")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("resiligo: invalid configuration")
)

// ErrorClass partitions operation errors for the retry engine.
type ErrorClass int

const (
	// ClassPermanent errors are never retried.
	ClassPermanent ErrorClass = iota
	// ClassTransient errors are retried up to the configured attempt cap.
	ClassTransient
)

// Classifier maps an operation error to an ErrorClass.
// It decouples the retry engine from any particular error hierarchy:
// callers can plug in a classifier that understands their backend's errors.
type Classifier func(error) ErrorClass

type transientError struct{ err error }

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Transient() bool { return true }

type permanentError struct{ err error }

func (e *permanentError) Error() string   { return e.err.Error() }
func (e *permanentError) Unwrap() error   { return e.err }
func (e *permanentError) Transient() bool { return false }

// Transient marks err as retryable for the default classifier.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// Permanent marks err as non-retryable for the default classifier.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// DefaultClassifier recognizes explicit Transient/Permanent markers and
// network timeouts. Everything else is permanent: blindly retrying unknown
// errors against a model backend risks duplicate side effects.
func DefaultClassifier(err error) ErrorClass {
	var marked interface{ Transient() bool }
	if errors.As(err, &marked) {
		if marked.Transient() {
			return ClassTransient
		}
		return ClassPermanent
	}

	// Caller gave up; retrying would outlive the request.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ClassPermanent
	}

	// Circuit breaker and limiter errors are synthesized by this library
	// and must not feed back into the retry loop.
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrRateLimited) {
		return ClassPermanent
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}

	return ClassPermanent
}
