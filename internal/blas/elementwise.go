package blas

import "github.com/ember-ml/ember/internal/tensor"

// binaryVec is a 1-D kernel over contiguous spans.
type binaryVec func(n int64, ov, x, y []float32)

// binaryScalar is the per-element form used on the sparse path.
type binaryScalar func(a, b float32) float32

// Add computes r = x + y element-wise, broadcasting y onto x.
func Add(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	binaryKernel(ctx, r, x, y, VecAdd, func(a, b float32) float32 { return a + b })
}

// Sub computes r = x - y element-wise, broadcasting y onto x.
func Sub(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	binaryKernel(ctx, r, x, y, VecSub, func(a, b float32) float32 { return a - b })
}

// Mul computes r = x * y element-wise, broadcasting y onto x.
func Mul(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	binaryKernel(ctx, r, x, y, VecMul, func(a, b float32) float32 { return a * b })
}

// Div computes r = x / y element-wise, broadcasting y onto x.
// Division by zero follows IEEE-754.
func Div(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	binaryKernel(ctx, r, x, y, VecDiv, func(a, b float32) float32 { return a / b })
}

// binaryKernel is the shared broadcasting loop behind the four arithmetic
// kernels. The thread's row range of r is disjoint from every other
// thread's; rows of y are selected by modulo broadcast on axes 1..3.
//
// When y's columns are packed (leading stride == element size) the dense
// path hands contiguous spans to the 1-D kernel, repeating y's row
// x.dims[0]/y.dims[0] times. Otherwise the sparse path walks columns with
// an explicit modulo and full stride addressing of y.
func binaryKernel(ctx ComputeCtx, r, x, y *tensor.Tensor, vec binaryVec, scalar binaryScalar) {
	rd := r.Dims()
	xd, yd := x.Dims(), y.Dims()
	xs, ys, rs := x.Strides(), y.Strides(), r.Strides()
	rf, xf, yf := r.Data(), x.Data(), y.Data()

	lo, hi := ctx.partition(r.RowCount())
	dense := ys[0] == tensor.ElemSize
	repeats := xd[0] / yd[0]

	for ri := lo; ri < hi; ri++ {
		// Decompose the row index into (i1, i2, i3).
		i3 := ri / (rd[1] * rd[2])
		rem := ri - i3*rd[1]*rd[2]
		i2 := rem / rd[1]
		i1 := rem - i2*rd[1]

		y1 := i1 % yd[1]
		y2 := i2 % yd[2]
		y3 := i3 % yd[3]

		roff := (i1*rs[1] + i2*rs[2] + i3*rs[3]) / tensor.ElemSize
		xoff := (i1*xs[1] + i2*xs[2] + i3*xs[3]) / tensor.ElemSize
		yoff := (y1*ys[1] + y2*ys[2] + y3*ys[3]) / tensor.ElemSize

		if dense {
			yrow := yf[yoff : yoff+yd[0]]
			for rep := int64(0); rep < repeats; rep++ {
				o := rep * yd[0]
				vec(yd[0], rf[roff+o:], xf[xoff+o:], yrow)
			}
		} else {
			ys0 := ys[0] / tensor.ElemSize
			for i0 := int64(0); i0 < xd[0]; i0++ {
				rf[roff+i0] = scalar(xf[xoff+i0], yf[yoff+(i0%yd[0])*ys0])
			}
		}
	}
}
