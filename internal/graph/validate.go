package graph

import (
	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/internal/tensor"
)

// ValidateFunc checks the preconditions of one opcode. It returns false
// after logging the failing predicate and the operand tensors; the
// evaluator then aborts.
type ValidateFunc func(r *tensor.Tensor, src []*tensor.Tensor) bool

// validators is indexed by opcode and must stay in sync with the opcode
// table in internal/tensor.
var validators = [tensor.OpCount]ValidateFunc{
	tensor.OpNop:     validateNop,
	tensor.OpSoftmax: validateUnarySrc,
	tensor.OpSigmoid: validateUnarySrc,
	tensor.OpTanh:    validateUnarySrc,
	tensor.OpReLU:    validateUnarySrc,
	tensor.OpGELU:    validateUnarySrc,
	tensor.OpSiLU:    validateUnarySrc,
	tensor.OpAdd:     validateBinarySrc,
	tensor.OpSub:     validateBinarySrc,
	tensor.OpMul:     validateBinarySrc,
	tensor.OpDiv:     validateBinarySrc,
	tensor.OpMatMul:  validateMatMulSrc,
}

// describe renders a tensor for a diagnostic, tolerating nil.
func describe(label string, t *tensor.Tensor) {
	if t == nil {
		klog.Errorf("%s: <nil>", label)
		return
	}
	klog.Errorf("%s: %s", label, t.String())
}

func failUnary(predicate string, r, x *tensor.Tensor) bool {
	klog.Errorf("graph validation failed: %s", predicate)
	describe("R", r)
	describe("X", x)
	return false
}

func failBinary(predicate string, r, x, y *tensor.Tensor) bool {
	klog.Errorf("graph validation failed: %s", predicate)
	describe("R", r)
	describe("X", x)
	describe("Y", y)
	return false
}

// ValidateUnary checks the preconditions shared by every unary kernel:
// both tensors present, dense except dim1, identical shapes.
func ValidateUnary(r, x *tensor.Tensor) bool {
	if r == nil {
		return failUnary("result tensor is nil", r, x)
	}
	if x == nil {
		return failUnary("source tensor is nil", r, x)
	}
	if !x.Shape().IsDenseExceptDim1() {
		return failUnary("source tensor is not dense except dim1", r, x)
	}
	if !r.Shape().IsDenseExceptDim1() {
		return failUnary("result tensor is not dense except dim1", r, x)
	}
	if !r.Shape().Equal(x.Shape()) {
		return failUnary("result tensor shape mismatch", r, x)
	}
	return true
}

// ValidateBinary checks the preconditions shared by the element-wise
// binary kernels: operands present, packed columns on X and R, Y
// broadcastable onto X, result shaped like X.
func ValidateBinary(r, x, y *tensor.Tensor) bool {
	if r == nil {
		return failBinary("result tensor is nil", r, x, y)
	}
	if x == nil {
		return failBinary("source tensor X is nil", r, x, y)
	}
	if y == nil {
		return failBinary("source tensor Y is nil", r, x, y)
	}
	if x.Strides()[0] != tensor.ElemSize {
		return failBinary("source tensor X leading stride mismatch", r, x, y)
	}
	if r.Strides()[0] != tensor.ElemSize {
		return failBinary("result tensor leading stride mismatch", r, x, y)
	}
	if !y.Shape().CanRepeat(x.Shape()) {
		return failBinary("source tensor Y cannot repeat source tensor X", r, x, y)
	}
	if !x.Shape().Equal(r.Shape()) {
		return failBinary("source tensor X shape mismatch with result tensor", r, x, y)
	}
	return true
}

// ValidateMatMul checks the matmul preconditions: operands present, a
// shared contraction axis with integer outer broadcast ratios, and a
// result shaped like the product.
func ValidateMatMul(r, x, y *tensor.Tensor) bool {
	if r == nil {
		return failBinary("result tensor is nil", r, x, y)
	}
	if x == nil {
		return failBinary("source tensor X is nil", r, x, y)
	}
	if y == nil {
		return failBinary("source tensor Y is nil", r, x, y)
	}
	if !x.Shape().IsMatMulCompatible(y.Shape()) {
		return failBinary("source tensors X and Y are not matmul compatible", r, x, y)
	}
	rd, xd, yd := r.Dims(), x.Dims(), y.Dims()
	if rd[0] != yd[1] || rd[1] != xd[1] || rd[2] != yd[2] || rd[3] != yd[3] {
		return failBinary("result tensor shape mismatch with matmul product", r, x, y)
	}
	return true
}

func validateNop(r *tensor.Tensor, src []*tensor.Tensor) bool {
	return r != nil && len(src) == 0
}

func validateUnarySrc(r *tensor.Tensor, src []*tensor.Tensor) bool {
	if len(src) != r.Op().Arity() {
		return failUnary("operand count mismatch", r, nil)
	}
	return ValidateUnary(r, src[0])
}

func validateBinarySrc(r *tensor.Tensor, src []*tensor.Tensor) bool {
	if len(src) != r.Op().Arity() {
		return failBinary("operand count mismatch", r, nil, nil)
	}
	return ValidateBinary(r, src[0], src[1])
}

func validateMatMulSrc(r *tensor.Tensor, src []*tensor.Tensor) bool {
	if len(src) != r.Op().Arity() {
		return failBinary("operand count mismatch", r, nil, nil)
	}
	return ValidateMatMul(r, src[0], src[1])
}

// Validate runs the validator for r's opcode over its recorded operands.
func Validate(r *tensor.Tensor) bool {
	return validators[r.Op()](r, r.Operands())
}
