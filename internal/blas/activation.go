package blas

import "github.com/ember-ml/ember/internal/tensor"

// unaryVec is a 1-D kernel over contiguous spans.
type unaryVec func(n int64, ov, x []float32)

// Softmax computes the exponential numerator r = exp(x); the normalizing
// divisor is applied by the caller.
func Softmax(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecSoftmax)
}

// Sigmoid computes r = 1/(1+exp(-x)).
func Sigmoid(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecSigmoid)
}

// Tanh computes r = tanh(x).
func Tanh(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecTanh)
}

// ReLU computes r = max(x, 0).
func ReLU(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecReLU)
}

// GELU computes the tanh approximation of the Gaussian error linear unit.
func GELU(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecGELU)
}

// SiLU computes r = x/(1+exp(-x)).
func SiLU(ctx ComputeCtx, r, x *tensor.Tensor) {
	unaryKernel(ctx, r, x, VecSiLU)
}

// unaryKernel runs a 1-D kernel over every row in the thread's range.
// Validators guarantee both tensors are dense-except-dim1, so a row's
// byte offset is the row index times the axis-1 stride.
func unaryKernel(ctx ComputeCtx, r, x *tensor.Tensor, vec unaryVec) {
	cols := x.ColCount()
	rs1 := r.Strides()[1] / tensor.ElemSize
	xs1 := x.Strides()[1] / tensor.ElemSize
	rf, xf := r.Data(), x.Data()

	lo, hi := ctx.partition(x.RowCount())
	for ri := lo; ri < hi; ri++ {
		vec(cols, rf[ri*rs1:], xf[ri*xs1:])
	}
}
