// Package shutdownqueue is a process-wide LIFO queue of cleanup tasks.
//
// Components register tasks with Add as they start; main drains them
// once at exit:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	_ = shutdownqueue.Shutdown(ctx)
//
// Tasks run once, newest first. Shutdown is idempotent, recovers task
// panics, and aggregates failures with errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown step. It should honor ctx and report failure.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add registers a task to run on Shutdown, in LIFO order. Nil tasks
// and tasks added after shutdown has started are dropped.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains the queue newest-first. Subsequent calls are no-ops.
// If ctx expires mid-drain, the remaining tasks are skipped and the
// context error is included in the aggregate.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	pending := tasks
	tasks = nil
	closed = true
	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, pending[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
