// Package async holds the small concurrency helpers the dashboard needs:
// cancellable background jobs and a result pair for handing values across
// channels.
package async

import (
	"context"
	"sync/atomic"
)

// JobHandle controls a background job. Stop cancels the job's context;
// Wait blocks until it finishes and yields its outcome.
type JobHandle[T any] struct {
	cancel context.CancelFunc
	done   chan Result[T]
	err    atomic.Pointer[error]
}

// Job starts fn on its own goroutine with a context that lives until Stop.
func Job[T any](fn func(ctx context.Context) (T, error)) *JobHandle[T] {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &JobHandle[T]{
		cancel: cancel,
		done:   make(chan Result[T], 1),
	}

	go func() {
		defer cancel()

		value, err := fn(ctx)
		handle.err.Store(&err)
		handle.done <- Result[T]{Value: value, Err: err}
	}()

	return handle
}

func (j *JobHandle[T]) Stop() {
	j.cancel()
}

func (j *JobHandle[T]) Wait() (T, error) {
	return (<-j.done).Unpack()
}

// Err is the job's error once it finished, nil while still running.
func (j *JobHandle[T]) Err() error {
	err := j.err.Load()
	if err == nil {
		return nil
	}
	return *err
}
