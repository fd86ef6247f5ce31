package resiligo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prilive-com/resiligo"
	"github.com/stretchr/testify/assert"
)

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want resiligo.ErrorClass
	}{
		{"transient marker", resiligo.Transient(errors.New("busy")), resiligo.ClassTransient},
		{"permanent marker", resiligo.Permanent(errors.New("bad input")), resiligo.ClassPermanent},
		{"wrapped transient marker", fmt.Errorf("call failed: %w", resiligo.Transient(errors.New("busy"))), resiligo.ClassTransient},
		{"network timeout", fakeTimeoutError{}, resiligo.ClassTransient},
		{"context canceled", context.Canceled, resiligo.ClassPermanent},
		{"context deadline", context.DeadlineExceeded, resiligo.ClassPermanent},
		{"circuit open", fmt.Errorf("%w: rejected", resiligo.ErrCircuitOpen), resiligo.ClassPermanent},
		{"rate limited", resiligo.ErrRateLimited, resiligo.ClassPermanent},
		{"unknown error", errors.New("mystery"), resiligo.ClassPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resiligo.DefaultClassifier(tt.err))
		})
	}
}

func TestMarkers_PreserveUnderlyingError(t *testing.T) {
	base := errors.New("backend busy")

	marked := resiligo.Transient(base)
	assert.ErrorIs(t, marked, base)
	assert.Equal(t, base.Error(), marked.Error())

	marked = resiligo.Permanent(base)
	assert.ErrorIs(t, marked, base)
}

func TestMarkers_NilStaysNil(t *testing.T) {
	assert.NoError(t, resiligo.Transient(nil))
	assert.NoError(t, resiligo.Permanent(nil))
}
