// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one independent unit of work.
type Job func() error

// WorkerPool is a fixed set of goroutines pulling jobs from a shared queue.
//
// A nil *WorkerPool is valid and runs jobs sequentially on the caller's
// goroutine, so callers can make parallelism optional without branching.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup

	// mu orders Run's sends against Close closing the queue.
	mu      sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*2),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for work := range p.queue {
		work()
	}
}

// Run executes every job and waits for all of them. The returned error
// joins the non-nil job errors in job order.
//
// On a nil or closed pool the jobs run sequentially on the caller's goroutine.
func (p *WorkerPool) Run(jobs []Job) error {
	errs := make([]error, len(jobs))

	if p == nil || !p.submit(jobs, errs) {
		for i, job := range jobs {
			errs[i] = job()
		}
	}
	return errors.Join(errs...)
}

// submit queues all jobs and waits for them. It returns false without
// running anything if the pool is closed.
func (p *WorkerPool) submit(jobs []Job, errs []error) bool {
	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return false
	}

	var done sync.WaitGroup
	done.Add(len(jobs))
	for i, job := range jobs {
		p.queue <- func() {
			defer done.Done()
			errs[i] = job()
		}
	}
	p.mu.RUnlock()

	done.Wait()
	return true
}

// Close stops the workers after queued work has finished.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool, or 1 for a nil pool.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p != nil && p.running.Load()
}
