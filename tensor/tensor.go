// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Tensor is an N-dimensional (rank 1..4) float32 array backed by arena
// memory, and at the same time a vertex in the computation DAG.
type Tensor = tensor.Tensor

// Shape holds the fixed-rank dimension and byte-stride arrays of a
// tensor.
type Shape = tensor.Shape

// Isolate is an independent tensor-allocation context owning one arena.
type Isolate = tensor.Isolate

// Arena is the bump allocator behind an isolate.
type Arena = tensor.Arena

// Device tags the compute device an isolate evaluates on.
type Device = tensor.Device

// Device constants. Only the CPU is functional; AutoSelect resolves to
// it.
const (
	AutoSelect Device = tensor.AutoSelect
	CPU        Device = tensor.CPU
)

// Opcode identifies the operation that produces a tensor in the DAG.
type Opcode = tensor.Opcode

// Opcode constants.
const (
	OpNop     Opcode = tensor.OpNop
	OpSoftmax Opcode = tensor.OpSoftmax
	OpSigmoid Opcode = tensor.OpSigmoid
	OpTanh    Opcode = tensor.OpTanh
	OpReLU    Opcode = tensor.OpReLU
	OpGELU    Opcode = tensor.OpGELU
	OpSiLU    Opcode = tensor.OpSiLU
	OpAdd     Opcode = tensor.OpAdd
	OpSub     Opcode = tensor.OpSub
	OpMul     Opcode = tensor.OpMul
	OpDiv     Opcode = tensor.OpDiv
	OpMatMul  Opcode = tensor.OpMatMul
)

// Structural limits.
const (
	MaxDims     = tensor.MaxDims
	MaxOperands = tensor.MaxOperands
	ElemSize    = tensor.ElemSize
)

// Byte-count helpers for arena capacities.
const (
	KiB = tensor.KiB
	MiB = tensor.MiB
	GiB = tensor.GiB
)

// Init initializes the process-wide runtime. It must be called before any
// isolate is created; repeated initialization warns and succeeds.
func Init() bool {
	return tensor.Init()
}

// Shutdown clears the process-wide runtime state. Repeated shutdown warns
// and returns.
func Shutdown() {
	tensor.Shutdown()
}

// Initialized reports whether the runtime is initialized.
func Initialized() bool {
	return tensor.Initialized()
}

// NewIsolate creates an isolate with its own arena of poolBytes capacity.
// Panics if the runtime is not initialized or the name is already taken.
func NewIsolate(name string, device Device, poolBytes int64) *Isolate {
	return tensor.NewIsolate(name, device, poolBytes)
}

// Lookup returns the isolate registered under name, or nil.
func Lookup(name string) *Isolate {
	return tensor.Lookup(name)
}

// NewShape builds a dense shape from the given dimensions.
func NewShape(dims []int64) Shape {
	return tensor.NewShape(dims)
}
