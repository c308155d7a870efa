package blas

import "github.com/ember-ml/ember/internal/tensor"

// sgemmBlockSize is the tile edge of the blocked fast path. Any power of
// two >= 4 works; 16 keeps a tile pair inside L1.
const sgemmBlockSize = 16

// MatMul is the naive reference SGEMM. Both operands share the
// contraction axis 0: for X [K, M, ...] and Y [K, N, ...] it computes
//
//	R(col, row, i2, i3) = sum_k X(k, row, x2, x3) * Y(k, col, i2, i3)
//
// with X broadcasting over Y's batch axes 2 and 3. Accumulation widens to
// float64 and narrows once per output element.
//
// The thread's share is a disjoint range of R's rows, like every other
// tensor kernel.
func MatMul(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	rd := r.Dims()
	xd, yd := x.Dims(), y.Dims()
	xs, ys, rs := x.Strides(), y.Strides(), r.Strides()
	rf, xf, yf := r.Data(), x.Data(), y.Data()

	k := xd[0]
	n := yd[1]
	m := rd[1]

	lo, hi := ctx.partition(r.RowCount())
	for ri := lo; ri < hi; ri++ {
		i3 := ri / (m * rd[2])
		rem := ri - i3*m*rd[2]
		i2 := rem / m
		row := rem - i2*m

		x2 := i2 % xd[2]
		x3 := i3 % xd[3]

		xoff := (row*xs[1] + x2*xs[2] + x3*xs[3]) / tensor.ElemSize
		yoff := (i2*ys[2] + i3*ys[3]) / tensor.ElemSize
		roff := (row*rs[1] + i2*rs[2] + i3*rs[3]) / tensor.ElemSize

		xs0 := xs[0] / tensor.ElemSize
		ys0 := ys[0] / tensor.ElemSize
		ys1 := ys[1] / tensor.ElemSize
		rs0 := rs[0] / tensor.ElemSize

		for col := int64(0); col < n; col++ {
			ycol := yoff + col*ys1
			sum := 0.0
			for kk := int64(0); kk < k; kk++ {
				sum += float64(xf[xoff+kk*xs0] * yf[ycol+kk*ys0])
			}
			rf[roff+col*rs0] = float32(sum)
		}
	}
}

// MatMulBlocked is the optional SGEMM fast path for dense 2-D operands.
// It tiles the Cartesian product of X rows and Y rows with
// sgemmBlockSize-square blocks and dispatches each inner product to
// VecDot. The output layout matches MatMul, so no transpose is needed
// afterwards.
func MatMulBlocked(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	xd, yd := x.Dims(), y.Dims()
	rf, xf, yf := r.Data(), x.Data(), y.Data()

	k := xd[0]
	m := xd[1]
	n := yd[1]

	lo, hi := ctx.partition(m)
	for m0 := lo; m0 < hi; m0 += sgemmBlockSize {
		mEnd := min(m0+sgemmBlockSize, hi)
		for n0 := int64(0); n0 < n; n0 += sgemmBlockSize {
			nEnd := min(n0+sgemmBlockSize, n)
			for row := m0; row < mEnd; row++ {
				xrow := xf[row*k : row*k+k]
				for col := n0; col < nEnd; col++ {
					rf[row*n+col] = VecDot(k, xrow, yf[col*k:col*k+k])
				}
			}
		}
	}
}
