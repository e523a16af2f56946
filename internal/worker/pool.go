package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool runs jobs concurrently with a fixed worker count. Analyses are
// independent and share no mutable state, so no coordination beyond
// the queue is needed.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job; dropped silently after shutdown.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for the workers, and returns all
// results. The job and result buffers hold workers*2 entries each, so
// callers submitting more than that must start a Collect before
// submitting or Submit blocks once the buffers fill.
func (p *Pool) Wait() []Result {
	collector := p.Collect()
	p.Finish()
	return collector.Wait()
}

// Finish closes the queue and waits for the workers to drain it. The
// results stream ends once the last worker exits.
func (p *Pool) Finish() {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
}

// Shutdown cancels outstanding work immediately.
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

// ResultCollector accumulates results as workers publish them, so
// submission never stalls on a full results buffer.
type ResultCollector struct {
	mu      sync.Mutex
	results []Result
	done    chan struct{}
}

// Collect starts draining this pool's results into a collector. Start
// it before submitting; end the stream with Finish or Shutdown, then
// Wait on the collector. Only one collector may drain a pool.
func (p *Pool) Collect() *ResultCollector {
	c := &ResultCollector{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		for result := range p.results {
			c.add(result)
		}
	}()
	return c
}

func (c *ResultCollector) add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Wait blocks until the results stream ends and returns everything
// collected.
func (c *ResultCollector) Wait() []Result {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}
