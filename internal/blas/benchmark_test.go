package blas

import (
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

func benchIsolate(b *testing.B, poolBytes int64) *tensor.Isolate {
	b.Helper()
	tensor.Init()
	iso := tensor.NewIsolate(b.Name(), tensor.CPU, poolBytes)
	b.Cleanup(iso.Close)
	return iso
}

func BenchmarkVecKernels(b *testing.B) {
	const n = 1 << 14
	x := make([]float32, n)
	y := make([]float32, n)
	ov := make([]float32, n)
	for i := range x {
		x[i] = float32(i%17) * 0.25
		y[i] = float32(i%13) * 0.5
	}

	b.Run("Add", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			VecAdd(n, ov, x, y)
		}
	})

	b.Run("Dot", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = VecDot(n, x, y)
		}
	})

	b.Run("GELU", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			VecGELU(n, ov, x)
		}
	})
}

func BenchmarkElementwise(b *testing.B) {
	iso := benchIsolate(b, 64*tensor.MiB)

	x := iso.NewTensor(64, 64, 8, 2).FillRandom(-1, 1)
	y := iso.NewTensor(64, 64, 8, 2).FillRandom(-1, 1)
	r := iso.NewTensor(64, 64, 8, 2)
	ctx := singleThread()

	b.Run("AddDense", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Add(ctx, r, x, y)
		}
	})

	broadcast := iso.NewTensor(64).FillRandom(-1, 1)
	b.Run("AddBroadcastRow", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Add(ctx, r, x, broadcast)
		}
	})
}

func BenchmarkMatMul(b *testing.B) {
	iso := benchIsolate(b, 64*tensor.MiB)

	const k, m, n = 128, 128, 128
	x := iso.NewTensor(k, m).FillRandom(-1, 1)
	y := iso.NewTensor(k, n).FillRandom(-1, 1)
	r := iso.NewTensor(n, m)
	ctx := singleThread()

	b.Run("Naive", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			MatMul(ctx, r, x, y)
		}
	})

	b.Run("Blocked", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			MatMulBlocked(ctx, r, x, y)
		}
	})
}
