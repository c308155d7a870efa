package blas

import "math"

// Scalar activation constants.
const (
	sqrt2OverPi = 0.79788456080286535587989211986876
	geluCoeff   = 0.044715
)

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

func tanhf(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

// softmaxScalar computes the exponential numerator only; the normalizing
// divisor is applied by the caller.
func softmaxScalar(x float32) float32 {
	return expf(x)
}

func sigmoidScalar(x float32) float32 {
	return 1.0 / (1.0 + expf(-x))
}

func reluScalar(x float32) float32 {
	return max(x, 0.0)
}

func geluScalar(x float32) float32 {
	return 0.5 * x * (1.0 + tanhf(sqrt2OverPi*x*(1.0+geluCoeff*x*x)))
}

func siluScalar(x float32) float32 {
	return x / (1.0 + expf(-x))
}

// VecAdd computes ov[i] = x[i] + y[i] over n contiguous elements.
func VecAdd(n int64, ov, x, y []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = x[i] + y[i]
	}
}

// VecSub computes ov[i] = x[i] - y[i].
func VecSub(n int64, ov, x, y []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = x[i] - y[i]
	}
}

// VecMul computes ov[i] = x[i] * y[i].
func VecMul(n int64, ov, x, y []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = x[i] * y[i]
	}
}

// VecDiv computes ov[i] = x[i] / y[i]. Division by zero follows IEEE-754.
func VecDiv(n int64, ov, x, y []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = x[i] / y[i]
	}
}

// VecDot returns the inner product of x and y. The accumulation widens to
// float64 and narrows to float32 once at the end; tests pin this at the
// bit level.
func VecDot(n int64, x, y []float32) float32 {
	sum := 0.0
	for i := int64(0); i < n; i++ {
		sum += float64(x[i] * y[i])
	}
	return float32(sum)
}

// VecSoftmax computes the softmax numerator ov[i] = exp(x[i]); the caller
// applies the normalizing divisor.
func VecSoftmax(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = softmaxScalar(x[i])
	}
}

// VecSigmoid computes ov[i] = 1/(1+exp(-x[i])).
func VecSigmoid(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = sigmoidScalar(x[i])
	}
}

// VecTanh computes ov[i] = tanh(x[i]).
func VecTanh(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = tanhf(x[i])
	}
}

// VecReLU computes ov[i] = max(x[i], 0).
func VecReLU(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = reluScalar(x[i])
	}
}

// VecGELU computes the tanh approximation of GELU.
func VecGELU(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = geluScalar(x[i])
	}
}

// VecSiLU computes ov[i] = x[i]/(1+exp(-x[i])).
func VecSiLU(n int64, ov, x []float32) {
	for i := int64(0); i < n; i++ {
		ov[i] = siluScalar(x[i])
	}
}
