package blas

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

// The 4x4 integer fixture: rows of A and B share the contraction axis, so
// R(col=j, row=i) = A row i dot B row j. Integer-valued floats must come
// out exactly.
var (
	sgemmA = []float32{
		2, 9, 2, 10,
		6, 4, 3, 6,
		3, 6, 9, 7,
		8, 8, 3, 3,
	}
	sgemmB = []float32{
		9, 7, 1, 3,
		5, 9, 7, 6,
		1, 10, 1, 1,
		7, 2, 4, 9,
	}
	sgemmWant = []float32{
		113, 165, 104, 130,
		103, 123, 55, 116,
		99, 174, 79, 132,
		140, 151, 94, 111,
	}
)

func TestMatMul_IntegerFixture(t *testing.T) {
	iso := testIsolate(t, 1*tensor.MiB)

	x := iso.NewTensorWithData(sgemmA, 4, 4)
	y := iso.NewTensorWithData(sgemmB, 4, 4)
	r := iso.NewTensor(4, 4)

	MatMul(singleThread(), r, x, y)

	for i, want := range sgemmWant {
		require.Equal(t, want, r.AtFlat(int64(i)), "flat index %d", i)
	}
}

func TestMatMulBlocked_MatchesNaive(t *testing.T) {
	iso := testIsolate(t, 16*tensor.MiB)

	// Shapes straddle the 16-wide tile boundary on purpose.
	for _, dims := range [][3]int64{{4, 4, 4}, {36, 4, 16}, {17, 33, 19}, {64, 16, 48}} {
		k, m, n := dims[0], dims[1], dims[2]
		x := iso.NewTensor(k, m).FillRandom(-1, 1)
		y := iso.NewTensor(k, n).FillRandom(-1, 1)
		naive := iso.NewTensor(n, m)
		blocked := iso.NewTensor(n, m)

		MatMul(singleThread(), naive, x, y)
		MatMulBlocked(singleThread(), blocked, x, y)

		require.Equal(t, naive.Data(), blocked.Data(), "K=%d M=%d N=%d", k, m, n)
	}
}

func TestMatMul_AgainstReference(t *testing.T) {
	iso := testIsolate(t, 4*tensor.MiB)

	const k, m, n = 36, 4, 16
	rng := rand.New(rand.NewSource(3))
	a := make([]float32, k*m)
	b := make([]float32, k*n)
	for i := range a {
		a[i] = float32(rng.Intn(10) + 1)
	}
	for i := range b {
		b[i] = float32(rng.Intn(10) + 1)
	}

	x := iso.NewTensorWithData(a, k, m)
	y := iso.NewTensorWithData(b, k, n)
	r := iso.NewTensor(n, m)

	MatMul(singleThread(), r, x, y)

	rd := r.Data()
	for row := int64(0); row < m; row++ {
		for col := int64(0); col < n; col++ {
			sum := 0.0
			for kk := int64(0); kk < k; kk++ {
				sum += float64(a[row*k+kk] * b[col*k+kk])
			}
			require.Equal(t, float32(sum), rd[row*n+col], "row %d col %d", row, col)
		}
	}
}

func TestMatMul_BatchBroadcast(t *testing.T) {
	iso := testIsolate(t, 4*tensor.MiB)

	// X [K, M] broadcasts over Y's batch axis 2.
	const k, m, n, batch = 8, 3, 5, 4
	x := iso.NewTensor(k, m).FillRandom(-1, 1)
	y := iso.NewTensor(k, n, batch).FillRandom(-1, 1)
	r := iso.NewTensor(n, m, batch)

	MatMul(singleThread(), r, x, y)

	xd, yd, rd := x.Data(), y.Data(), r.Data()
	for i2 := int64(0); i2 < batch; i2++ {
		for row := int64(0); row < m; row++ {
			for col := int64(0); col < n; col++ {
				sum := 0.0
				for kk := int64(0); kk < k; kk++ {
					sum += float64(xd[row*k+kk] * yd[i2*n*k+col*k+kk])
				}
				require.Equal(t, float32(sum), rd[i2*n*m+row*n+col],
					"batch %d row %d col %d", i2, row, col)
			}
		}
	}
}

func TestMatMul_MultiThreadedMatchesSingle(t *testing.T) {
	iso := testIsolate(t, 4*tensor.MiB)

	x := iso.NewTensor(24, 17).FillRandom(-1, 1)
	y := iso.NewTensor(24, 9).FillRandom(-1, 1)
	single := iso.NewTensor(9, 17)
	multi := iso.NewTensor(9, 17)

	MatMul(singleThread(), single, x, y)
	const nt = 3
	for ti := 0; ti < nt; ti++ {
		MatMul(ComputeCtx{ThreadIndex: ti, NumThreads: nt}, multi, x, y)
	}

	assert.Equal(t, single.Data(), multi.Data())
}

func TestMatMul_WideningAccumulation(t *testing.T) {
	iso := testIsolate(t, 4*tensor.MiB)

	// Long runs of inexact terms accumulate differently in float32; the
	// kernel must match the widening float64 reference bit for bit.
	const k = 1 << 12
	a := make([]float32, k)
	b := make([]float32, k)
	for i := 0; i < k; i++ {
		a[i] = 0.1
		b[i] = float32(1+i%7) * 0.3
	}

	x := iso.NewTensorWithData(a, k, 1)
	y := iso.NewTensorWithData(b, k, 1)
	r := iso.NewTensor(1, 1)

	MatMul(singleThread(), r, x, y)

	sum := 0.0
	for i := 0; i < k; i++ {
		sum += float64(a[i] * b[i])
	}
	require.Equal(t, float32(sum), r.Data()[0])
	require.Equal(t, VecDot(k, a, b), r.Data()[0])
}
