// Package perft counts move-generation leaf nodes in parallel, one root
// move per work item.
package perft

import (
	"context"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/worker"
)

// Report is the outcome of a perft run.
type Report struct {
	FEN     string
	Depth   int
	Nodes   uint64
	Divide  map[string]uint64 // Leaf count below each root move
	Elapsed time.Duration
}

// Moves returns the root moves of the report in sorted order.
func (r *Report) Moves() []string {
	keys := maps.Keys(r.Divide)
	slices.Sort(keys)
	return keys
}

// NodesPerSecond returns the counting speed, or 0 for an instant run.
func (r *Report) NodesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

// Divide counts the leaves depth plies below state using the given number
// of workers. Cancelling ctx abandons the remaining root moves.
func Divide(ctx context.Context, state *engine.GameState, depth, workers int) (*Report, error) {
	start := time.Now()
	report := &Report{
		FEN:    engine.Encode(state),
		Depth:  depth,
		Divide: make(map[string]uint64),
	}
	if depth <= 0 {
		report.Nodes = 1
		return report, nil
	}

	children := engine.Children(state)
	pool := worker.NewPool(worker.WithWorkers(workers), worker.WithBufferSize(len(children)+1))
	pool.Start()
	for i, c := range children {
		pool.Submit(worker.WorkItem{Index: i, Child: c, Depth: depth - 1})
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Stop()
		case <-done:
		}
	}()
	go pool.Close()

	skipped := false
	for r := range pool.Results() {
		if r.Skipped {
			skipped = true
			continue
		}
		report.Divide[r.Move.String()] = r.Nodes
		report.Nodes += r.Nodes
	}
	report.Elapsed = time.Since(start)

	if skipped {
		return report, errors.Wrap(ctx.Err(), "perft cancelled")
	}
	return report, nil
}
