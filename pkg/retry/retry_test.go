package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"redlytics/pkg/retry"
)

var errAttempt = errors.New("attempt failed")

func retryAll(error) retry.Verdict {
	return retry.Verdict{Retry: true}
}

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{
		Attempts: attempts,
		Backoff:  func(int) time.Duration { return time.Millisecond },
	}
}

func TestExponential(t *testing.T) {
	t.Parallel()

	backoff := retry.Exponential(time.Second)

	require.Equal(t, time.Second, backoff(0))
	require.Equal(t, 2*time.Second, backoff(1))
	require.Equal(t, 4*time.Second, backoff(2))
	require.Equal(t, 60*time.Second, backoff(10))
	require.Equal(t, 60*time.Second, backoff(300), "overflow caps at the max")
	require.Equal(t, time.Second, backoff(-1))
}

func TestPolicy_Do(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := fastPolicy(3).Do(t.Context(), func(context.Context) error {
			calls++
			return nil
		}, retryAll)

		require.NoError(t, err)
		require.Equal(t, 1, calls)
	})

	t.Run("spends the budget then surfaces the last error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := fastPolicy(3).Do(t.Context(), func(context.Context) error {
			calls++
			return errAttempt
		}, retryAll)

		require.ErrorIs(t, err, errAttempt)
		require.Equal(t, 4, calls, "first try plus three retries")
	})

	t.Run("non-retryable verdict fails fast", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := fastPolicy(3).Do(t.Context(), func(context.Context) error {
			calls++
			return errAttempt
		}, func(error) retry.Verdict {
			return retry.Verdict{}
		})

		require.ErrorIs(t, err, errAttempt)
		require.Equal(t, 1, calls)
	})

	t.Run("free retries do not consume the budget", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := fastPolicy(1).Do(t.Context(), func(context.Context) error {
			calls++
			if calls <= 3 {
				return errAttempt
			}
			return nil
		}, func(error) retry.Verdict {
			return retry.Verdict{Retry: true, Free: true, Wait: time.Millisecond}
		})

		require.NoError(t, err)
		require.Equal(t, 4, calls)
	})

	t.Run("free retry followed by charged retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := fastPolicy(1).Do(t.Context(), func(context.Context) error {
			calls++
			return errAttempt
		}, func(error) retry.Verdict {
			if calls == 1 {
				return retry.Verdict{Retry: true, Free: true}
			}
			return retry.Verdict{Retry: true}
		})

		require.ErrorIs(t, err, errAttempt)
		require.Equal(t, 3, calls, "one free retry, one charged retry")
	})

	t.Run("per-attempt timeout bounds each try", func(t *testing.T) {
		t.Parallel()

		p := retry.Policy{
			Timeout:  10 * time.Millisecond,
			Attempts: 1,
			Backoff:  func(int) time.Duration { return time.Millisecond },
		}

		calls := 0
		err := p.Do(t.Context(), func(ctx context.Context) error {
			calls++
			<-ctx.Done()
			return ctx.Err()
		}, retryAll)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, 2, calls, "the attempt timeout does not cancel the outer context")
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())

		calls := 0
		err := fastPolicy(5).Do(ctx, func(context.Context) error {
			calls++
			cancel()
			return errAttempt
		}, retryAll)

		require.ErrorIs(t, err, errAttempt)
		require.Equal(t, 1, calls)
	})

	t.Run("cancellation during backoff returns the context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())

		p := retry.Policy{
			Attempts: 1,
			Backoff:  func(int) time.Duration { return time.Second },
		}

		done := make(chan error, 1)
		go func() {
			done <- p.Do(ctx, func(context.Context) error {
				return errAttempt
			}, retryAll)
		}()

		cancel()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("Do did not return after cancellation")
		}
	})
}
