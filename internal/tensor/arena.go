package tensor

import (
	"fmt"
	"unsafe"

	"k8s.io/klog/v2"
)

// Memory size helpers for arena capacities.
const (
	KiB int64 = 1 << 10
	MiB int64 = 1 << 20
	GiB int64 = 1 << 30
)

// Arena is a sequential bump allocator with a fixed capacity. Allocation
// proceeds downward from the top of the region; individual allocations are
// never freed. The whole region is released when the owning isolate is
// closed.
//
// Running out of arena space is a configuration error, not a runtime
// condition: Alloc panics instead of returning a failure value.
type Arena struct {
	buf       []byte
	bot       int64 // watermark, decreases toward 0
	numAllocs int64
}

// NewArena allocates an arena with the given capacity in bytes.
// Panics if size is not positive.
func NewArena(size int64) *Arena {
	if size <= 0 {
		panic(fmt.Sprintf("arena: invalid capacity %d, must be > 0", size))
	}
	klog.V(1).Infof("created linear memory pool of %.1f MiB", float64(size)/float64(MiB))
	return &Arena{
		buf: make([]byte, size),
		bot: size,
	}
}

// Alloc returns a size-byte range from the region.
// Panics when the remaining region is smaller than size.
func (a *Arena) Alloc(size int64) []byte {
	a.bot -= size
	if a.bot < 0 {
		panic(fmt.Sprintf(
			"arena: out of memory: requested %d bytes, %d of %d available",
			size, a.bot+size, len(a.buf)))
	}
	a.numAllocs++
	return a.buf[a.bot : a.bot+size : a.bot+size]
}

// AllocAligned returns a size-byte range whose address is a multiple of
// align. align must be a power of two. Allocating downward means the
// watermark only has to be rounded down to the alignment boundary.
func (a *Arena) AllocAligned(size, align int64) []byte {
	if align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}
	a.bot -= size
	if a.bot >= 0 {
		addr := uintptr(unsafe.Pointer(&a.buf[a.bot]))
		a.bot -= int64(addr & uintptr(align-1))
	}
	if a.bot < 0 {
		panic(fmt.Sprintf(
			"arena: out of memory: requested %d bytes aligned to %d, capacity %d",
			size, align, len(a.buf)))
	}
	a.numAllocs++
	return a.buf[a.bot : a.bot+size : a.bot+size]
}

// Capacity returns the total size of the region in bytes.
func (a *Arena) Capacity() int64 {
	return int64(len(a.buf))
}

// BytesAllocated returns the number of bytes consumed so far, including
// alignment padding.
func (a *Arena) BytesAllocated() int64 {
	return int64(len(a.buf)) - a.bot
}

// NumAllocs returns the number of allocations served.
func (a *Arena) NumAllocs() int64 {
	return a.numAllocs
}

// String summarizes the pool usage.
func (a *Arena) String() string {
	used := a.BytesAllocated()
	return fmt.Sprintf("Pool: %.3f/%.1f MiB, used: %.3f%%, %d allocs",
		float64(used)/float64(MiB),
		float64(len(a.buf))/float64(MiB),
		100.0*float64(used)/float64(len(a.buf)),
		a.numAllocs)
}
