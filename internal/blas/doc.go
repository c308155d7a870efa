// Package blas implements the hand-written CPU kernels of the Ember
// runtime: 1-D vector kernels over contiguous float32 spans, 4-D
// broadcasting element-wise kernels with dense/sparse dispatch, per-row
// activation kernels, and SGEMM.
//
// Kernels have no failure paths. Preconditions (shape compatibility,
// stride layout, non-nil operands) are guaranteed by the validators in
// internal/graph before any kernel runs.
//
// Every tensor kernel takes a ComputeCtx. Threads of one logical kernel
// invocation partition the result rows into disjoint ranges, so a driver
// may call the same kernel concurrently with distinct thread indices and
// no locking.
package blas
