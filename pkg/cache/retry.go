package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped by errors from a backend that could not be
// reached.
var ErrUnavailable = errors.New("cache unavailable")

// transientError marks a failure that may succeed on another attempt.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// transient marks err as worth retrying. It returns nil for a nil error.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err, or anything it wraps, was marked as
// worth retrying.
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// retryDelay is the pause after the first failed attempt; it doubles after
// each further failure.
var retryDelay = 50 * time.Millisecond

// withRetry calls fn up to attempts times while it fails with a transient
// error. Permanent errors and context cancellation end the loop at once.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	attempts = max(attempts, 1)
	delay := retryDelay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
