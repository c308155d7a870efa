package tensor

import (
	"fmt"
	"strings"
	"unsafe"
)

// Tensor limits.
const (
	MaxOperands = 2   // operand slots per DAG node
	MaxNameLen  = 128 // diagnostic name capacity in bytes
)

// Tensor is an N-dimensional (rank 1..MaxDims) float32 array backed by
// arena memory, and at the same time a vertex in the computation DAG: it
// records the opcode that produces it and its operand tensors. Leaves
// carry OpNop.
//
// A tensor's shape and storage never change after construction. A tensor
// may be a slice of another tensor, in which case its storage aliases a
// region of the parent's; the parent outlives the slice because both live
// in the same arena.
type Tensor struct {
	iso         *Isolate
	name        string
	shape       Shape
	data        []byte // storage view into the arena (or the slice parent)
	size        int64  // storage size in bytes
	sliceBase   *Tensor
	sliceOffset int64
	op          Opcode
	operands    []*Tensor
}

// newTensor is the single construction path. A nil base allocates fresh
// arena storage; otherwise the tensor aliases base's storage at offset.
// Slice-of-slice is flattened to the ultimate base with offsets summed.
func (iso *Isolate) newTensor(dims []int64, base *Tensor, offset int64) *Tensor {
	shape := NewShape(dims)
	size := ElemSize * shape.ElemCount()
	var data []byte
	if base != nil {
		if offset < 0 || size+offset > base.size {
			panic(fmt.Sprintf(
				"tensor: slice out of range: %d bytes at offset %d exceed parent size %d",
				size, offset, base.size))
		}
		if base.sliceBase != nil {
			offset += base.sliceOffset
			base = base.sliceBase
		}
		data = base.data[offset : offset+size : offset+size]
	} else {
		// Element alignment keeps the float32 view of the storage valid
		// whatever the arena capacity is.
		data = iso.pool.AllocAligned(size, ElemSize)
		offset = 0
	}
	t := &Tensor{
		iso:         iso,
		shape:       shape,
		data:        data,
		size:        size,
		sliceBase:   base,
		sliceOffset: offset,
		op:          OpNop,
	}
	iso.tensors = append(iso.tensors, t)
	return t
}

// NewTensor allocates a fresh zero-filled tensor with the given
// dimensions.
func (iso *Isolate) NewTensor(dims ...int64) *Tensor {
	return iso.newTensor(dims, nil, 0)
}

// NewTensorWithData allocates a tensor and copies data into its storage.
// len(data) must equal the product of the dimensions.
func (iso *Isolate) NewTensorWithData(data []float32, dims ...int64) *Tensor {
	t := iso.newTensor(dims, nil, 0)
	return t.FillData(data)
}

// NewSlice allocates a tensor viewing base's storage at the given byte
// offset. The slice must fit inside the parent's extent.
func (iso *Isolate) NewSlice(base *Tensor, offset int64, dims ...int64) *Tensor {
	if base == nil {
		panic("tensor: slice parent is nil")
	}
	return iso.newTensor(dims, base, offset)
}

// Isolate returns the owning isolate.
func (t *Tensor) Isolate() *Isolate { return t.iso }

// Shape returns the tensor's shape.
func (t *Tensor) Shape() *Shape { return &t.shape }

// Rank returns the number of used dimensions.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Dims returns the length-4 dimension array.
func (t *Tensor) Dims() [MaxDims]int64 { return t.shape.Dims() }

// Strides returns the length-4 byte-stride array.
func (t *Tensor) Strides() [MaxDims]int64 { return t.shape.Strides() }

// ElemCount returns the number of elements.
func (t *Tensor) ElemCount() int64 { return t.shape.ElemCount() }

// RowCount returns the number of rows (product of axes 1..3).
func (t *Tensor) RowCount() int64 { return t.shape.RowCount() }

// ColCount returns the number of columns (axis 0).
func (t *Tensor) ColCount() int64 { return t.shape.ColCount() }

// Size returns the storage size in bytes.
func (t *Tensor) Size() int64 { return t.size }

// Bytes returns the raw storage bytes.
func (t *Tensor) Bytes() []byte { return t.data }

// Data returns the storage as a float32 slice. The view aliases the arena
// directly; writes go through to every tensor sharing the region.
func (t *Tensor) Data() []float32 {
	//nolint:gosec // zero-copy view, length bounded by the allocation
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.size/ElemSize)
}

// SliceBase returns the ultimate base tensor when this tensor is a slice,
// else nil.
func (t *Tensor) SliceBase() *Tensor { return t.sliceBase }

// SliceOffset returns the byte offset into the base tensor's storage.
func (t *Tensor) SliceOffset() int64 { return t.sliceOffset }

// Op returns the opcode that produces this tensor.
func (t *Tensor) Op() Opcode { return t.op }

// Operands returns the DAG children of this tensor.
func (t *Tensor) Operands() []*Tensor { return t.operands }

// Name returns the diagnostic name.
func (t *Tensor) Name() string { return t.name }

// SetName sets the diagnostic name, truncated to MaxNameLen bytes.
// Returns the tensor for chaining.
func (t *Tensor) SetName(name string) *Tensor {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	t.name = name
	return t
}

// FormatName formats and sets the diagnostic name.
func (t *Tensor) FormatName(format string, args ...any) *Tensor {
	return t.SetName(fmt.Sprintf(format, args...))
}

// IsomorphicClone allocates a fresh zero-filled tensor of the same shape.
func (t *Tensor) IsomorphicClone() *Tensor {
	return t.iso.newTensor(t.shape.UsedDims(), nil, 0)
}

// Clone allocates a fresh tensor of the same shape and copies the data.
func (t *Tensor) Clone() *Tensor {
	ts := t.IsomorphicClone()
	copy(ts.Data(), t.Data())
	return ts
}

// SlicedClone allocates a tensor sharing this tensor's storage with the
// strides copied verbatim.
func (t *Tensor) SlicedClone() *Tensor {
	ts := t.iso.newTensor(t.shape.UsedDims(), t, 0)
	ts.shape.strides = t.shape.strides
	return ts
}

// TransposedClone allocates a sliced clone with axes 0 and 1 swapped in
// both dims and strides. No data moves.
func (t *Tensor) TransposedClone() *Tensor {
	ts := t.SlicedClone()
	ts.shape.Transpose(&t.shape)
	return ts
}

// FillZero clears the storage. Returns the tensor for chaining.
func (t *Tensor) FillZero() *Tensor {
	clear(t.data)
	return t
}

// FillOne fills the storage with ones.
func (t *Tensor) FillOne() *Tensor {
	return t.Fill(1.0)
}

// Fill fills the storage with x.
func (t *Tensor) Fill(x float32) *Tensor {
	data := t.Data()
	for i := range data {
		data[i] = x
	}
	return t
}

// FillRandom fills the storage with uniform random values in [min, max)
// drawn from the isolate's seedable PRNG.
func (t *Tensor) FillRandom(min, max float32) *Tensor {
	data := t.Data()
	for i := range data {
		data[i] = min + (max-min)*t.iso.rng.Float32()
	}
	return t
}

// FillData copies data into the storage. len(data) must equal the element
// count.
func (t *Tensor) FillData(data []float32) *Tensor {
	if int64(len(data)) != t.ElemCount() {
		panic(fmt.Sprintf(
			"tensor: data length %d does not match element count %d of shape %s",
			len(data), t.ElemCount(), t.shape.String()))
	}
	copy(t.Data(), data)
	return t
}

// At returns the element at the given 4-tuple index.
func (t *Tensor) At(idx [MaxDims]int64) float32 {
	return t.Data()[t.shape.Offset(idx)/ElemSize]
}

// Set writes the element at the given 4-tuple index.
func (t *Tensor) Set(idx [MaxDims]int64, v float32) {
	t.Data()[t.shape.Offset(idx)/ElemSize] = v
}

// AtFlat returns the element at the given flat row-major index, taking
// the dense fast path when the layout allows it.
func (t *Tensor) AtFlat(i int64) float32 {
	if t.shape.IsDense() {
		return t.Data()[i]
	}
	return t.At(t.shape.Unroll(i))
}

// SetFlat writes the element at the given flat row-major index.
func (t *Tensor) SetFlat(i int64, v float32) {
	if t.shape.IsDense() {
		t.Data()[i] = v
		return
	}
	t.Set(t.shape.Unroll(i), v)
}

// newOp records a DAG node: result tensor r produced by op from the given
// operands.
func newOp(r *Tensor, op Opcode, operands ...*Tensor) *Tensor {
	if len(operands) != op.Arity() {
		panic(fmt.Sprintf("tensor: opcode %s expects %d operands, got %d",
			op, op.Arity(), len(operands)))
	}
	r.op = op
	r.operands = append(r.operands[:0], operands...)
	return r
}

// Add records r = t + other element-wise (other broadcasts onto t).
func (t *Tensor) Add(other *Tensor) *Tensor {
	return newOp(t.IsomorphicClone(), OpAdd, t, other)
}

// Sub records r = t - other element-wise.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return newOp(t.IsomorphicClone(), OpSub, t, other)
}

// Mul records r = t * other element-wise.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return newOp(t.IsomorphicClone(), OpMul, t, other)
}

// Div records r = t / other element-wise.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return newOp(t.IsomorphicClone(), OpDiv, t, other)
}

// MatMul records the matrix product of t and other. Both operands share
// the contraction axis 0; for X [K, M] and Y [K, N] the result is [N, M],
// with Y's batch axes carried through.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if !t.shape.IsMatMulCompatible(&other.shape) {
		panic(fmt.Sprintf("tensor: %s and %s are not matmul compatible",
			t.String(), other.String()))
	}
	xd, yd := t.Dims(), other.Dims()
	rank := max(t.Rank(), other.Rank())
	if rank < 2 {
		rank = 2
	}
	dims := [...]int64{yd[1], xd[1], yd[2], yd[3]}
	r := t.iso.NewTensor(dims[:rank]...)
	return newOp(r, OpMatMul, t, other)
}

// Softmax records the exponential numerator of softmax over t. The
// normalizing divisor is applied by the caller.
func (t *Tensor) Softmax() *Tensor {
	return newOp(t.IsomorphicClone(), OpSoftmax, t)
}

// Sigmoid records the logistic function over t.
func (t *Tensor) Sigmoid() *Tensor {
	return newOp(t.IsomorphicClone(), OpSigmoid, t)
}

// Tanh records the hyperbolic tangent over t.
func (t *Tensor) Tanh() *Tensor {
	return newOp(t.IsomorphicClone(), OpTanh, t)
}

// ReLU records the rectified linear unit over t.
func (t *Tensor) ReLU() *Tensor {
	return newOp(t.IsomorphicClone(), OpReLU, t)
}

// GELU records the Gaussian error linear unit (tanh approximation) over t.
func (t *Tensor) GELU() *Tensor {
	return newOp(t.IsomorphicClone(), OpGELU, t)
}

// SiLU records the sigmoid-weighted linear unit over t.
func (t *Tensor) SiLU() *Tensor {
	return newOp(t.IsomorphicClone(), OpSiLU, t)
}

// String returns the tensor metadata: name, type, rank, shape, strides and
// a human-readable storage size.
func (t *Tensor) String() string {
	size := float64(t.size)
	unit := "B"
	switch {
	case t.size > GiB:
		size /= float64(GiB)
		unit = "GiB"
	case t.size > MiB:
		size /= float64(MiB)
		unit = "MiB"
	case t.size > KiB:
		size /= float64(KiB)
		unit = "KiB"
	}
	quoted := ""
	if t.name != "" {
		quoted = fmt.Sprintf("'%s': ", t.name)
	}
	d := t.shape.Dims()
	st := t.shape.Strides()
	return fmt.Sprintf(
		"Tensor %sf32 * %dD, Shape [%d X %d X %d X %d], Strides [%dB X %dB X %dB X %dB] %.1f%s",
		quoted, t.shape.Rank(),
		d[0], d[1], d[2], d[3],
		st[0], st[1], st[2], st[3],
		size, unit)
}

// DataString renders the metadata followed by the elements, one memory
// row per line.
func (t *Tensor) DataString() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n[\n")
	d := t.shape.Dims()
	data := t.Data()
	for i3 := int64(0); i3 < d[2]*d[3]; i3++ {
		for i2 := int64(0); i2 < d[1]; i2++ {
			sb.WriteByte('\t')
			for i1 := int64(0); i1 < d[0]; i1++ {
				fmt.Fprintf(&sb, "%.3f ", data[i3*d[1]*d[0]+i2*d[0]+i1])
			}
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("]")
	return sb.String()
}
