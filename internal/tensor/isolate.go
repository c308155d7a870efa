package tensor

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"
)

// Device tags the compute device an isolate evaluates on. Only the CPU is
// functional; AutoSelect resolves to it.
type Device uint32

// Supported compute devices.
const (
	AutoSelect Device = iota
	CPU
	deviceCount
)

var deviceNames = [deviceCount]string{
	AutoSelect: "Auto Select",
	CPU:        "CPU",
}

// String returns a human-readable device name.
func (d Device) String() string {
	if d >= deviceCount {
		return "Unknown"
	}
	return deviceNames[d]
}

// Process-wide runtime state. The init flag gates isolate creation; the
// registry enforces one isolate per name.
var (
	runtimeInitialized atomic.Bool

	isolatesMu sync.Mutex
	isolates   = make(map[string]*Isolate)
)

// Init initializes the process-wide runtime. It must be called before any
// isolate is created. Repeated initialization warns and succeeds.
func Init() bool {
	if runtimeInitialized.Load() {
		klog.Warning("ember runtime already initialized")
		return true
	}
	runtimeInitialized.Store(true)
	klog.Info("ember runtime initialized")
	return true
}

// Shutdown clears the process-wide runtime state. Repeated shutdown warns
// and returns. Isolates still alive keep their memory but no new isolates
// can be created until the next Init.
func Shutdown() {
	if !runtimeInitialized.Load() {
		klog.Warning("ember runtime not initialized")
		return
	}
	klog.Info("ember runtime shutdown")
	runtimeInitialized.Store(false)
}

// Initialized reports whether the runtime is initialized.
func Initialized() bool {
	return runtimeInitialized.Load()
}

// Isolate is an independent tensor-allocation context: it owns one arena
// and is the factory for every tensor allocated against it. Tensors are
// alive exactly as long as their isolate, so the isolate must be kept
// alive as long as any of its tensors is used.
type Isolate struct {
	name    string
	device  Device
	pool    *Arena
	tensors []*Tensor
	rng     *rand.Rand
}

// NewIsolate creates an isolate with its own arena of poolBytes capacity.
// Panics if the runtime is not initialized or an isolate with the same
// name already exists in this process.
func NewIsolate(name string, device Device, poolBytes int64) *Isolate {
	if !runtimeInitialized.Load() {
		panic("isolate: ember runtime not initialized")
	}
	if device == AutoSelect {
		device = CPU
	}
	if device >= deviceCount {
		panic(fmt.Sprintf("isolate: invalid compute device %d", uint32(device)))
	}
	iso := &Isolate{
		name:   name,
		device: device,
		pool:   NewArena(poolBytes),
		rng:    rand.New(rand.NewSource(1)),
	}
	isolatesMu.Lock()
	defer isolatesMu.Unlock()
	if _, exists := isolates[name]; exists {
		panic(fmt.Sprintf("isolate: duplicate isolate name %q", name))
	}
	isolates[name] = iso
	klog.Infof("creating isolate %q, device %q, pool memory %.1f MiB",
		name, device, float64(poolBytes)/float64(MiB))
	return iso
}

// Lookup returns the isolate registered under name, or nil.
func Lookup(name string) *Isolate {
	isolatesMu.Lock()
	defer isolatesMu.Unlock()
	return isolates[name]
}

// Name returns the isolate's name.
func (iso *Isolate) Name() string { return iso.name }

// Device returns the compute-device tag.
func (iso *Isolate) Device() Device { return iso.device }

// Pool returns the isolate's arena.
func (iso *Isolate) Pool() *Arena { return iso.pool }

// Tensors returns every tensor allocated from this isolate, in creation
// order.
func (iso *Isolate) Tensors() []*Tensor { return iso.tensors }

// Seed reseeds the isolate's PRNG used by Tensor.FillRandom.
func (iso *Isolate) Seed(seed int64) {
	iso.rng = rand.New(rand.NewSource(seed))
}

// Close unregisters the isolate and drops its arena. Every tensor
// allocated from it becomes invalid and must not be used afterwards.
func (iso *Isolate) Close() {
	isolatesMu.Lock()
	if isolates[iso.name] == iso {
		delete(isolates, iso.name)
	}
	isolatesMu.Unlock()
	iso.tensors = nil
	iso.pool = nil
}
