// Package worker runs perft subtrees on a fixed set of goroutines.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessboy-go/internal/chess"
	"github.com/lgbarn/chessboy-go/internal/engine"
)

// WorkItem is one root move whose subtree needs counting.
type WorkItem struct {
	Index int // Position of the move in the root move list
	Child engine.Child
	Depth int // Plies still to search below the child
}

// Result is the leaf count for one WorkItem.
type Result struct {
	Index   int
	Move    chess.Move
	Nodes   uint64
	Skipped bool // The pool was stopped before the item ran
}

// CountFunc counts the nodes for a work item.
type CountFunc func(item WorkItem) Result

// Count is the default CountFunc.
func Count(item WorkItem) Result {
	return Result{Index: item.Index, Move: item.Child.Move, Nodes: item.Child.Perft(item.Depth)}
}

// Pool feeds work items to a fixed number of workers.
type Pool struct {
	numWorkers int
	bufferSize int
	work       chan WorkItem
	results    chan Result
	count      CountFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithCountFunc replaces the node counter.
func WithCountFunc(fn CountFunc) PoolOption {
	return func(p *Pool) {
		if fn != nil {
			p.count = fn
		}
	}
}

// NewPool creates a pool. With no options it has one worker, a buffer of
// 64 items and counts with Count.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 64,
		count:      Count,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.work {
		if p.IsStopped() {
			p.results <- Result{Index: item.Index, Move: item.Child.Move, Skipped: true}
			continue
		}
		p.results <- p.count(item)
	}
}

// Submit queues a work item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// Stop makes workers skip the items still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close stops accepting work, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
