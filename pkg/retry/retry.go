// Package retry runs an attempt function under a policy of per-attempt
// timeouts and a bounded retry budget. The caller classifies each failure:
// a verdict can stop immediately (timeouts), retry on the budget with
// backoff (transient failures), or retry after a server-mandated wait
// without charging the budget (rate limits).
package retry

import (
	"context"
	"time"
)

type BackoffFunc func(attempt int) time.Duration

// Exponential doubles the base delay per attempt: base, 2*base, 4*base...
// capped at 60s.
func Exponential(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		d := base << attempt
		if d > 60*time.Second || d <= 0 {
			d = 60 * time.Second
		}
		return d
	}
}

// Verdict tells Do what to make of a failed attempt.
type Verdict struct {
	// Retry the attempt at all. False surfaces the error as-is.
	Retry bool
	// Wait overrides the policy backoff when non-zero.
	Wait time.Duration
	// Free retries do not consume the attempt budget (rate-limit waits).
	Free bool
}

type Classifier func(err error) Verdict

type Policy struct {
	// Timeout bounds each individual attempt. Zero means no per-attempt bound.
	Timeout time.Duration
	// Attempts is the retry budget after the first try.
	Attempts int
	Backoff  BackoffFunc
}

// Do runs f until it succeeds, the classifier stops it, or the budget is
// spent. The last error is returned unwrapped so callers can inspect it.
func (p Policy) Do(ctx context.Context, f func(context.Context) error, classify Classifier) error {
	backoff := p.Backoff
	if backoff == nil {
		backoff = Exponential(time.Second)
	}

	charged := 0
	for {
		err := p.attempt(ctx, f)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		v := classify(err)
		if !v.Retry {
			return err
		}

		wait := v.Wait
		if !v.Free {
			if charged >= p.Attempts {
				return err
			}
			if wait == 0 {
				wait = backoff(charged)
			}
			charged++
		}

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (p Policy) attempt(ctx context.Context, f func(context.Context) error) error {
	if p.Timeout <= 0 {
		return f(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return f(attemptCtx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
