package worker

import (
	"context"
	"sort"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

type queued struct {
	seq int
	job Job
}

type sequenced struct {
	seq    int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently.
// Results are drained as they arrive and Wait returns them in submission order.
type Pool struct {
	workers    int
	jobQueue   chan queued
	results    chan sequenced
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	collected  []sequenced
	collectMu  sync.Mutex
	drained    chan struct{}
	submitted  int
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	return NewPoolWithContext(context.Background(), workers)
}

// NewPoolWithContext creates a pool whose jobs observe ctx cancellation
func NewPoolWithContext(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queued, workers*2), // Buffered to prevent blocking
		results:    make(chan sequenced, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
		drained:    make(chan struct{}),
	}
}

// Start starts the worker pool and its result collector
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case q, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := q.job.Execute(p.ctx)
			select {
			case p.results <- sequenced{seq: q.seq, result: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *Pool) collect() {
	defer close(p.drained)
	for r := range p.results {
		p.collectMu.Lock()
		p.collected = append(p.collected, r)
		p.collectMu.Unlock()
	}
}

// Submit submits a job to the pool for execution. Submit is called from a
// single goroutine and never after Wait.
func (p *Pool) Submit(job Job) {
	q := queued{seq: p.submitted, job: job}
	p.submitted++

	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- q:
	}
}

// Wait waits for all jobs to complete and returns the results in submission
// order. Jobs dropped by cancellation are absent.
func (p *Pool) Wait() []Result {
	// Close job queue to signal workers to exit when done
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.drained

	p.collectMu.Lock()
	defer p.collectMu.Unlock()

	sort.Slice(p.collected, func(i, j int) bool {
		return p.collected[i].seq < p.collected[j].seq
	})

	results := make([]Result, len(p.collected))
	for i, r := range p.collected {
		results[i] = r.result
	}
	return results
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// funcJob adapts an indexed function to the Job interface
type funcJob[T any] struct {
	index int
	fn    func(ctx context.Context, i int) T
}

type funcResult[T any] struct {
	index int
	value T
}

func (j *funcJob[T]) Execute(ctx context.Context) Result {
	return &funcResult[T]{index: j.index, value: j.fn(ctx, j.index)}
}

func (r *funcResult[T]) GetError() error { return nil }

// Map runs fn for every index in [0, n) across workers and returns the values
// in index order. Indexes skipped by cancellation hold the zero value.
func Map[T any](ctx context.Context, workers, n int, fn func(ctx context.Context, i int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}

	pool := NewPoolWithContext(ctx, workers)
	pool.Start()
	for i := 0; i < n; i++ {
		pool.Submit(&funcJob[T]{index: i, fn: fn})
	}

	for _, r := range pool.Wait() {
		fr := r.(*funcResult[T])
		out[fr.index] = fr.value
	}
	return out
}
