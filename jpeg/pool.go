package jpeg

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultWorkers is the number of encoders run side by side when not configured
const DefaultWorkers = 2

// Observer is notified as workers pick up and finish tasks.
// Methods are called from worker goroutines and must be safe for concurrent use.
type Observer interface {
	TaskStarted(workerID int, task Task)
	TaskFinished(workerID int, task Task, err error)
}

// TaskFunc processes one task
type TaskFunc func(ctx context.Context, task Task) error

// Pool runs tasks with a fixed number of workers
type Pool struct {
	Workers  int
	Observer Observer
}

// NewPool returns a pool with the given worker count, clamped to at least one
func NewPool(workers int, obs Observer) *Pool {
	return &Pool{
		Workers:  workers,
		Observer: obs,
	}
}

func (p *Pool) workerCount() int {
	if p.Workers <= 0 {
		return 1
	}
	return p.Workers
}

// Dispatch runs fn for every task, at most Workers at a time, and returns
// once all of them have finished. Tasks are handed out in order. Task errors
// go to the Observer; the return value is how many tasks failed.
func (p *Pool) Dispatch(ctx context.Context, tasks []Task, fn TaskFunc) int {
	jobs := make(chan Task, len(tasks))
	var failed atomic.Int64
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < p.workerCount(); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for task := range jobs {
				if p.Observer != nil {
					p.Observer.TaskStarted(workerID, task)
				}
				err := runTask(ctx, fn, task)
				if err != nil {
					failed.Add(1)
				}
				if p.Observer != nil {
					p.Observer.TaskFinished(workerID, task, err)
				}
			}
		}(i)
	}

	// Send jobs
	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	// Wait for completion
	wg.Wait()

	return int(failed.Load())
}

// runTask keeps a panicking task from taking the whole batch down
func runTask(ctx context.Context, fn TaskFunc, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing %q: %v", task.InputPath, r)
		}
	}()
	return fn(ctx, task)
}
