package util

import (
	"context"
	"errors"
	"time"
)

// RetryWithContext calls fn up to maxTries times until it returns a nil error,
// or until ctx is done. Attempts are separated by delay, doubled after every
// failure. If maxTries <= 0, it defaults to 1.
//
// Context errors returned by fn are not retried. Returns ctx.Err() if the
// context is canceled, otherwise the last error.
func RetryWithContext[T any](
	ctx context.Context,
	maxTries int,
	delay time.Duration,
	fn func(context.Context) (T, error),
) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var lastErr error
	var zero T
	for i := 0; i < maxTries; i++ {
		if i > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err
	}
	return zero, lastErr
}

// RetryErrWithContext is RetryWithContext for functions without a result.
func RetryErrWithContext(
	ctx context.Context,
	maxTries int,
	delay time.Duration,
	fn func(context.Context) error,
) error {
	_, err := RetryWithContext(ctx, maxTries, delay, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
