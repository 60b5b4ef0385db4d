package score

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"asrscore/internal/align"
)

// Engine aligns normalized hypothesis strings against one reference variant.
// Slices are parallel: hyps[i] scores against refs[i]. Implementations must
// return results in input order.
type Engine interface {
	Align(ctx context.Context, hyps, refs []string) ([]align.Pair, error)
}

// BuiltinEngine runs the in-process aligner on a bounded worker pool.
type BuiltinEngine struct {
	// Workers bounds the pool; zero means NumCPU.
	Workers int
}

// Align computes word- and char-level alignments for every pair. Results are
// written to index-addressed slots so completion order never affects output
// order.
func (e *BuiltinEngine) Align(ctx context.Context, hyps, refs []string) ([]align.Pair, error) {
	if len(hyps) != len(refs) {
		return nil, fmt.Errorf("align: %d hypotheses vs %d references", len(hyps), len(refs))
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(hyps) {
		workers = len(hyps)
	}

	results := make([]align.Pair, len(hyps))
	if len(hyps) == 0 {
		return results, nil
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = align.Strings(hyps[i], refs[i])
			}
		}()
	}

	var ctxErr error
feed:
	for i := range hyps {
		select {
		case indices <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	return results, nil
}

var _ Engine = (*BuiltinEngine)(nil)
