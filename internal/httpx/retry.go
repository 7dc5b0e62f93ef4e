package httpx

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryAfterError wraps ErrTransient with an upstream-supplied delay (the
// HRIS adapter parses a Retry-After header into this; §5 "HRIS retries
// respect Retry-After").
type RetryAfterError struct {
	Err   error
	After time.Duration
}

func (e *RetryAfterError) Error() string { return e.Err.Error() }
func (e *RetryAfterError) Unwrap() error { return e.Err }

// retryAfterBackOff delegates to an exponential backoff, except when the
// most recent attempt failed with a RetryAfterError, in which case it
// honors that delay verbatim.
type retryAfterBackOff struct {
	inner   backoff.BackOff
	lastErr error
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	var rae *RetryAfterError
	if errors.As(b.lastErr, &rae) {
		return rae.After
	}
	return b.inner.NextBackOff()
}

func (b *retryAfterBackOff) Reset() { b.inner.Reset() }

// Retrier wraps an operation in exponential backoff retry, honoring
// Retry-After delays and treating ErrValidation/ErrNotFound/ErrConflict as
// permanent (not retried). Grounded on spec.md §9's explicit "a single
// Retry(policy) wrapper" design note; cenkalti/backoff/v5 is the teacher's
// own transitive dependency, promoted here to direct use.
type Retrier struct {
	MaxTries uint
}

// NewRetrier returns a Retrier with the default 5-attempt policy (§5).
func NewRetrier() *Retrier {
	return &Retrier{MaxTries: 5}
}

// Do runs op, retrying transient failures per the policy above. The
// zero value's first return carries op's last successful or final value.
func Do[T any](ctx context.Context, r *Retrier, op func() (T, error)) (T, error) {
	// min(2^(n-1), 30)s: 1s, 2s, 4s, ... capped at 30s, no jitter.
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Second
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxInterval = 30 * time.Second
	rab := &retryAfterBackOff{inner: eb}

	wrapped := func() (T, error) {
		v, err := op()
		rab.lastErr = err
		if err == nil {
			return v, nil
		}

		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return v, backoff.Permanent(err)
		}

		return v, err
	}

	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(rab),
		backoff.WithMaxTries(r.MaxTries),
	)
}
