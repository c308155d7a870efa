// Package parallel provides the fork-join driver that fans a single
// kernel invocation out over multiple compute contexts. The runtime core
// stays single-threaded; this package is the integration point for
// callers that want data-parallel kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ember-ml/ember/internal/blas"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Invoke runs kernel once per thread index with numThreads distinct
// compute contexts, one goroutine each, and waits for all of them.
// Kernels write disjoint row ranges of their result, so no locking is
// needed. numThreads < 1 is treated as 1, and a single context runs
// inline on the calling goroutine.
func Invoke(numThreads int, kernel func(ctx blas.ComputeCtx)) {
	if numThreads < 1 {
		numThreads = 1
	}
	if numThreads == 1 {
		kernel(blas.ComputeCtx{ThreadIndex: 0, NumThreads: 1})
		return
	}
	var g errgroup.Group
	for i := 0; i < numThreads; i++ {
		ctx := blas.ComputeCtx{ThreadIndex: i, NumThreads: numThreads}
		g.Go(func() error {
			kernel(ctx)
			return nil
		})
	}
	// Kernels are infallible; Wait only joins the goroutines.
	_ = g.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism. Falls back
// to sequential execution when parallelism is disabled or n is too small
// to amortize the goroutine overhead.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error {
			for i := s; i < e; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
