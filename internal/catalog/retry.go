package catalog

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

const (
	retryMaxAttempts = 3
	retryMinDelay    = 100 * time.Millisecond
	retryMaxDelay    = 300 * time.Millisecond
)

// retry re-invokes op while the error it returns is classified transient,
// up to retryMaxAttempts times with a fixed random backoff between
// attempts. op must be side-effect-idempotent: every catalog statement it
// wraps is an "insert or ignore" or a single-row update, so re-invocation on
// a transient failure is always safe.
func retry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == retryMaxAttempts || !isTransient(err) {
			return zero, err
		}
		if sleepErr := sleep(ctx, backoffDelay()); sleepErr != nil {
			return zero, sleepErr
		}
	}
	return zero, lastErr
}

func backoffDelay() time.Duration {
	span := retryMaxDelay - retryMinDelay
	return retryMinDelay + time.Duration(rand.Int63n(int64(span)+1))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isTransient classifies an error as retryable: I/O failure, protocol
// error, or pool timeout. Logical errors (constraint violations that
// somehow surface despite conflict-ignore semantics, syntax errors) and
// context cancellation are never retried.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var qf *QueryFailed
	if errors.As(err, &qf) {
		return isTransientCause(qf.Cause)
	}
	var tf *TransactionFailed
	if errors.As(err, &tf) {
		return isTransientCause(tf.Cause)
	}
	return isTransientCause(err)
}
