// Package worker provides the bounded pool that runs catalog imports and
// outbound emails off the request path.
package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Job is a unit of background work. Jobs receive the pool's base context
// and must honour its cancellation.
type Job func(ctx context.Context)

// Pool errors
var (
	ErrPoolStopped = errors.New("worker pool is not running")
	ErrQueueFull   = errors.New("worker queue is full")
)

// Pool is a fixed-size worker pool with a bounded queue. Submitting never
// blocks: a full queue is reported to the caller instead.
type Pool struct {
	size   int
	jobs   chan Job
	logger *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewPool creates a pool with the given number of workers and queue capacity
func NewPool(size, queueSize int, logger *zap.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = size
	}
	return &Pool{
		size:   size,
		jobs:   make(chan Job, queueSize),
		logger: logger,
	}
}

// Start launches the workers
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.running = true

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(runCtx, i)
	}

	p.logger.Info("worker pool started", zap.Int("size", p.size))
	return nil
}

// Stop drains queued jobs and waits for in-flight ones to finish
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Give up waiting; workers are cancelled and will exit on their own.
		p.cancel()
		return ctx.Err()
	}

	p.cancel()
	p.logger.Info("worker pool stopped")
	return nil
}

// Submit enqueues a job for execution
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return ErrPoolStopped
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// run is the worker loop
func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		p.execute(ctx, id, job)
	}
}

// execute runs one job, converting panics into logged errors
func (p *Pool) execute(ctx context.Context, id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker job panicked",
				zap.Int("worker", id),
				zap.Any("panic", r),
			)
		}
	}()
	job(ctx)
}
