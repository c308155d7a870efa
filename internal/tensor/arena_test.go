package tensor

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocTracking(t *testing.T) {
	a := NewArena(1 * KiB)

	sizes := []int64{16, 32, 8, 100, 1}
	var total int64
	for _, s := range sizes {
		buf := a.Alloc(s)
		require.Len(t, buf, int(s))
		total += s
	}

	assert.GreaterOrEqual(t, a.BytesAllocated(), total)
	assert.Equal(t, int64(len(sizes)), a.NumAllocs())
	assert.Equal(t, 1*KiB, a.Capacity())
}

func TestArena_AllocAligned(t *testing.T) {
	a := NewArena(4 * KiB)

	for _, align := range []int64{1, 2, 4, 8, 16, 32, 64} {
		buf := a.AllocAligned(24, align)
		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Zerof(t, addr%uintptr(align), "allocation not aligned to %d", align)
	}
}

func TestArena_Exhaustion(t *testing.T) {
	a := NewArena(256)

	require.Panics(t, func() {
		a.Alloc(257)
	})
}

func TestArena_ExhaustionAfterFill(t *testing.T) {
	a := NewArena(256)
	a.Alloc(200)

	require.Panics(t, func() {
		a.Alloc(57)
	})
}

func TestArena_InvalidAlignment(t *testing.T) {
	a := NewArena(256)

	require.Panics(t, func() {
		a.AllocAligned(8, 3)
	})
}

func TestArena_InvalidCapacity(t *testing.T) {
	require.Panics(t, func() {
		NewArena(0)
	})
}

func TestArena_AllocsAreDisjoint(t *testing.T) {
	a := NewArena(1 * KiB)

	first := a.Alloc(64)
	second := a.Alloc(64)
	for i := range first {
		first[i] = 0xAA
	}
	for i := range second {
		second[i] = 0x55
	}
	for i := range first {
		assert.EqualValues(t, 0xAA, first[i])
	}
}
