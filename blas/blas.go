// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package blas

import (
	"fmt"

	"github.com/ember-ml/ember/internal/blas"
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// ComputeCtx identifies one thread of a kernel invocation.
// Invariants: 0 <= ThreadIndex < NumThreads and NumThreads >= 1.
type ComputeCtx = blas.ComputeCtx

// SingleThreaded is the context of the default single-threaded driver.
func SingleThreaded() ComputeCtx {
	return ComputeCtx{ThreadIndex: 0, NumThreads: 1}
}

func verifyUnary(op string, r, x *tensor.Tensor) {
	if !graph.ValidateUnary(r, x) {
		panic(fmt.Sprintf("blas: %s validation failed", op))
	}
}

func verifyBinary(op string, r, x, y *tensor.Tensor) {
	if !graph.ValidateBinary(r, x, y) {
		panic(fmt.Sprintf("blas: %s validation failed", op))
	}
}

// Add computes r = x + y element-wise, broadcasting y onto x.
func Add(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	verifyBinary("add", r, x, y)
	blas.Add(ctx, r, x, y)
}

// Sub computes r = x - y element-wise, broadcasting y onto x.
func Sub(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	verifyBinary("sub", r, x, y)
	blas.Sub(ctx, r, x, y)
}

// Mul computes r = x * y element-wise, broadcasting y onto x.
func Mul(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	verifyBinary("mul", r, x, y)
	blas.Mul(ctx, r, x, y)
}

// Div computes r = x / y element-wise, broadcasting y onto x.
// Division by zero follows IEEE-754.
func Div(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	verifyBinary("div", r, x, y)
	blas.Div(ctx, r, x, y)
}

// MatMul computes the matrix product of x and y into r using the naive
// reference kernel. Both operands share the contraction axis 0: for
// X [K, M] and Y [K, N] the result is [N, M].
func MatMul(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	if !graph.ValidateMatMul(r, x, y) {
		panic("blas: matmul validation failed")
	}
	blas.MatMul(ctx, r, x, y)
}

// MatMulBlocked is the tiled SGEMM fast path for dense 2-D operands. The
// output layout matches MatMul.
func MatMulBlocked(ctx ComputeCtx, r, x, y *tensor.Tensor) {
	if !graph.ValidateMatMul(r, x, y) {
		panic("blas: matmul validation failed")
	}
	if !x.Shape().IsDense() || !y.Shape().IsDense() || !x.Shape().IsMatrix() || !y.Shape().IsMatrix() {
		panic("blas: blocked matmul requires dense 2-D operands")
	}
	blas.MatMulBlocked(ctx, r, x, y)
}

// Softmax computes the exponential numerator r = exp(x); the normalizing
// divisor is applied by the caller.
func Softmax(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("softmax", r, x)
	blas.Softmax(ctx, r, x)
}

// Sigmoid computes r = 1/(1+exp(-x)).
func Sigmoid(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("sigmoid", r, x)
	blas.Sigmoid(ctx, r, x)
}

// Tanh computes r = tanh(x).
func Tanh(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("tanh", r, x)
	blas.Tanh(ctx, r, x)
}

// ReLU computes r = max(x, 0).
func ReLU(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("relu", r, x)
	blas.ReLU(ctx, r, x)
}

// GELU computes the tanh approximation of the Gaussian error linear
// unit.
func GELU(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("gelu", r, x)
	blas.GELU(ctx, r, x)
}

// SiLU computes r = x/(1+exp(-x)).
func SiLU(ctx ComputeCtx, r, x *tensor.Tensor) {
	verifyUnary("silu", r, x)
	blas.SiLU(ctx, r, x)
}

// Parallel fans kernel out over numThreads compute contexts and waits for
// all of them. Each invocation writes a disjoint row range of its result,
// so no locking is required:
//
//	blas.Parallel(4, func(ctx blas.ComputeCtx) {
//	    blas.Add(ctx, r, x, y)
//	})
func Parallel(numThreads int, kernel func(ctx ComputeCtx)) {
	parallel.Invoke(numThreads, kernel)
}

// Vector kernels over contiguous spans, for callers that bypass tensors
// entirely.
var (
	VecAdd     = blas.VecAdd
	VecSub     = blas.VecSub
	VecMul     = blas.VecMul
	VecDiv     = blas.VecDiv
	VecDot     = blas.VecDot
	VecSoftmax = blas.VecSoftmax
	VecSigmoid = blas.VecSigmoid
	VecTanh    = blas.VecTanh
	VecReLU    = blas.VecReLU
	VecGELU    = blas.VecGELU
	VecSiLU    = blas.VecSiLU
)
