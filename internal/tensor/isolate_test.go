package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIsolate creates an isolate named after the test and tears it down
// with the test.
func testIsolate(t *testing.T, poolBytes int64) *Isolate {
	t.Helper()
	Init()
	iso := NewIsolate(t.Name(), CPU, poolBytes)
	t.Cleanup(iso.Close)
	return iso
}

func TestIsolate_Create(t *testing.T) {
	Init()
	iso := NewIsolate("isolate-create", CPU, 4096)
	defer iso.Close()

	assert.Equal(t, "isolate-create", iso.Name())
	assert.Equal(t, CPU, iso.Device())
	assert.Equal(t, int64(4096), iso.Pool().Capacity())
}

func TestIsolate_AutoSelectResolvesToCPU(t *testing.T) {
	Init()
	iso := NewIsolate("isolate-auto", AutoSelect, 4096)
	defer iso.Close()

	assert.Equal(t, CPU, iso.Device())
}

func TestIsolate_DuplicateNamePanics(t *testing.T) {
	Init()
	iso := NewIsolate("isolate-dup", CPU, 4096)
	defer iso.Close()

	require.Panics(t, func() {
		NewIsolate("isolate-dup", CPU, 4096)
	})
}

func TestIsolate_NameFreedOnClose(t *testing.T) {
	Init()
	iso := NewIsolate("isolate-reuse", CPU, 4096)
	iso.Close()

	iso2 := NewIsolate("isolate-reuse", CPU, 4096)
	defer iso2.Close()
	assert.Same(t, iso2, Lookup("isolate-reuse"))
}

func TestIsolate_CreateRequiresInit(t *testing.T) {
	Init()
	Shutdown()
	defer Init()

	require.Panics(t, func() {
		NewIsolate("isolate-no-runtime", CPU, 4096)
	})
}

func TestRuntime_InitIdempotent(t *testing.T) {
	assert.True(t, Init())
	assert.True(t, Init(), "repeated init warns and succeeds")
	assert.True(t, Initialized())
}

func TestRuntime_ShutdownIdempotent(t *testing.T) {
	Init()
	Shutdown()
	assert.False(t, Initialized())
	Shutdown() // warns and returns
	assert.False(t, Initialized())
	Init()
}

func TestIsolate_TensorsRegistered(t *testing.T) {
	iso := testIsolate(t, 16*KiB)

	a := iso.NewTensor(4)
	b := iso.NewTensor(2, 2)
	tensors := iso.Tensors()

	require.Len(t, tensors, 2)
	assert.Same(t, a, tensors[0])
	assert.Same(t, b, tensors[1])
}

func TestDevice_String(t *testing.T) {
	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "Auto Select", AutoSelect.String())
	assert.Equal(t, "Unknown", Device(99).String())
}
