package graph

import (
	"fmt"

	"github.com/ember-ml/ember/internal/blas"
	"github.com/ember-ml/ember/internal/tensor"
)

// EvalFunc runs the kernel of one opcode.
type EvalFunc func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor)

// evaluators is indexed by opcode and must stay in sync with the opcode
// table in internal/tensor.
var evaluators = [tensor.OpCount]EvalFunc{
	tensor.OpNop: func(blas.ComputeCtx, *tensor.Tensor, []*tensor.Tensor) {},
	tensor.OpSoftmax: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Softmax(ctx, r, src[0])
	},
	tensor.OpSigmoid: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Sigmoid(ctx, r, src[0])
	},
	tensor.OpTanh: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Tanh(ctx, r, src[0])
	},
	tensor.OpReLU: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.ReLU(ctx, r, src[0])
	},
	tensor.OpGELU: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.GELU(ctx, r, src[0])
	},
	tensor.OpSiLU: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.SiLU(ctx, r, src[0])
	},
	tensor.OpAdd: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Add(ctx, r, src[0], src[1])
	},
	tensor.OpSub: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Sub(ctx, r, src[0], src[1])
	},
	tensor.OpMul: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Mul(ctx, r, src[0], src[1])
	},
	tensor.OpDiv: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.Div(ctx, r, src[0], src[1])
	},
	tensor.OpMatMul: func(ctx blas.ComputeCtx, r *tensor.Tensor, src []*tensor.Tensor) {
		blas.MatMul(ctx, r, src[0], src[1])
	},
}

// Dispatch validates r's opcode preconditions and runs its kernel with
// the given compute context. Panics on validation failure.
func Dispatch(ctx blas.ComputeCtx, r *tensor.Tensor) {
	if !Validate(r) {
		panic(fmt.Sprintf("graph: validation failed for opcode %s", r.Op()))
	}
	evaluators[r.Op()](ctx, r, r.Operands())
}

// Compute evaluates the DAG rooted at root with a single-threaded
// compute context.
//
// The walk is depth-first post-order with operands visited left to right,
// so every operand subgraph completes before its consumer's kernel runs.
// Shared subexpressions are evaluated once: the walk memoizes on node
// identity.
func Compute(root *tensor.Tensor) {
	ctx := blas.ComputeCtx{ThreadIndex: 0, NumThreads: 1}
	visited := make(map[*tensor.Tensor]struct{})

	var visit func(t *tensor.Tensor)
	visit = func(t *tensor.Tensor) {
		if t.Op() == tensor.OpNop {
			return
		}
		if _, done := visited[t]; done {
			return
		}
		visited[t] = struct{}{}
		for _, operand := range t.Operands() {
			visit(operand)
		}
		Dispatch(ctx, t)
	}
	visit(root)
}
