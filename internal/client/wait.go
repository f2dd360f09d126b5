package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v5"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Static errors for err113 compliance.
var (
	ErrWaitTimeout = errors.New("timed out waiting for state")
	errNotReady    = errors.New("not ready")
)

// pollFunc fetches the current value and reports whether it reached the wanted state.
type pollFunc[T any] func(ctx context.Context) (T, bool, error)

// waitFor polls until poll reports done, with exponential spacing between polls.
// Transport errors, 429 and 5xx are retried; any other error stops the wait.
func waitFor[T any](ctx context.Context, opts *batch.WaitOptions, subject string, poll pollFunc[T]) (T, error) {
	interval, maxInterval, timeout := constants.DefaultPollInterval, constants.MaxPollInterval, constants.DefaultPollTimeout

	if opts != nil {
		if opts.Interval > 0 {
			interval = opts.Interval
		}

		if opts.MaxInterval > 0 {
			maxInterval = opts.MaxInterval
		}

		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
	}

	if maxInterval < interval {
		maxInterval = interval
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = interval
	expBackoff.MaxInterval = maxInterval

	var last T

	result, err := backoff.Retry(ctx, func() (T, error) {
		value, done, err := poll(ctx)
		if err != nil {
			if retryable(err) {
				return value, err
			}

			return value, backoff.Permanent(err)
		}

		last = value

		if !done {
			return value, errNotReady
		}

		return value, nil
	}, backoff.WithBackOff(expBackoff), backoff.WithMaxElapsedTime(timeout))
	if err == nil {
		return result, nil
	}

	if errors.Is(err, errNotReady) {
		return last, fmt.Errorf("%w: %s after %s", ErrWaitTimeout, subject, timeout)
	}

	return last, fmt.Errorf("waiting for %s: %w", subject, err)
}

func retryable(err error) bool {
	if batch.IsTransport(err) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	status := batch.StatusCode(err)

	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
