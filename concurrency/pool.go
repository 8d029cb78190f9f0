package concurrency

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute() error
}

// JobFunc adapts a function to the Job interface.
type JobFunc func() error

// Execute runs the function.
func (f JobFunc) Execute() error {
	return f()
}

// Result carries the outcome of one job.
type Result struct {
	Err error
}

// WorkerPool runs jobs on a fixed number of goroutines.
type WorkerPool struct {
	size       int
	jobQueue   chan Job
	resultChan chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		size:       size,
		jobQueue:   make(chan Job, 100),
		resultChan: make(chan Result, 100),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the workers.
func (p *WorkerPool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.resultChan <- Result{Err: job.Execute()}
		}
	}
}

// Submit queues a job for execution.
func (p *WorkerPool) Submit(job Job) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down")
	default:
		return fmt.Errorf("job queue is full")
	}
}

// Results returns the result channel.
func (p *WorkerPool) Results() <-chan Result {
	return p.resultChan
}

// Stop stops accepting jobs, waits for in-flight work, then closes the
// result channel.
func (p *WorkerPool) Stop() error {
	p.cancel()
	close(p.jobQueue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(p.resultChan)
		return nil
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for workers to finish")
	}
}

// ParallelExecutor runs a batch of functions across a bounded number of
// goroutines and returns per-function errors in submission order.
type ParallelExecutor struct {
	maxWorkers int
}

// NewParallelExecutor creates an executor with the given worker bound.
func NewParallelExecutor(maxWorkers int) *ParallelExecutor {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &ParallelExecutor{maxWorkers: maxWorkers}
}

// Execute runs all functions and returns their errors, index-aligned with
// the input.
func (p *ParallelExecutor) Execute(fns []func() error) []error {
	if len(fns) == 0 {
		return nil
	}

	workers := p.maxWorkers
	if len(fns) < workers {
		workers = len(fns)
	}

	queue := make(chan int, len(fns))
	results := make([]error, len(fns))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range queue {
				results[index] = fns[index]()
			}
		}()
	}

	for i := range fns {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}
