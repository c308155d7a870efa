package blas

// ComputeCtx identifies one thread of a kernel invocation.
// Invariants: 0 <= ThreadIndex < NumThreads and NumThreads >= 1.
// The single-threaded driver passes ComputeCtx{0, 1}.
type ComputeCtx struct {
	ThreadIndex int
	NumThreads  int
}

// partition splits n rows into NumThreads contiguous chunks and returns
// this thread's half-open range [lo, hi). The chunks are disjoint and
// cover [0, n); trailing threads may receive an empty range.
func (ctx ComputeCtx) partition(n int64) (lo, hi int64) {
	nt := int64(ctx.NumThreads)
	if nt < 1 {
		nt = 1
	}
	chunk := (n + nt - 1) / nt
	lo = int64(ctx.ThreadIndex) * chunk
	hi = min(lo+chunk, n)
	if lo > n {
		lo = n
	}
	return lo, hi
}
