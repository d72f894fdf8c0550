// Package memory implements the native ownership model underneath the ref
// layer: identity-canonicalized memory-space handles, exclusively owned
// buffers, and the clients that allocate them.
package memory

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Client is the runtime object from which memory spaces, devices and
// buffers are obtained. The ref layer only consumes AllocateBuffer and
// buffer release; device transfer, compilation and execution live elsewhere.
type Client interface {
	// Platform returns the platform name, e.g. "cpu" or "webgpu".
	Platform() string

	// ProcessIndex returns the index of this process in a multi-process
	// deployment; always 0 for single-process clients.
	ProcessIndex() int

	// Devices returns the ordered devices owned by this client.
	Devices() []*Device

	// MemorySpaces returns the ordered memory spaces exposed by this client.
	MemorySpaces() []*MemorySpace

	// DefaultMemorySpace returns the space new buffers land in by default.
	DefaultMemorySpace() *MemorySpace

	// AllocateBuffer allocates a buffer in the given space (nil for the
	// default space), initialized from a deep copy of initial.
	AllocateBuffer(initial *tensor.RawTensor, space *MemorySpace) (*Buffer, error)

	// Closed reports whether the client has been torn down.
	Closed() bool

	// Close tears the client down. Memory-space queries fail afterwards.
	Close() error
}

// HostClient is the in-process client backing host memory.
type HostClient struct {
	closed atomic.Bool

	mu      sync.Mutex
	spaces  []*MemorySpace
	byID    map[uint64]*MemorySpace // canonical wrappers keyed by native handle
	devices []*Device
	nextID  uint64
}

// NewHostClient creates a host client exposing a single unpinned host
// memory space addressable by one cpu device.
func NewHostClient() *HostClient {
	c := &HostClient{byID: make(map[uint64]*MemorySpace)}
	dev := NewDevice(c, 0, "cpu")
	c.devices = []*Device{dev}
	c.registerSpace("unpinned_host", c.devices)
	return c
}

// registerSpace creates and canonicalizes a memory-space wrapper.
// At most one wrapper per native handle ever exists.
func (c *HostClient) registerSpace(kind string, devices []*Device) *MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()

	native := c.nextID
	c.nextID++
	if existing, ok := c.byID[native]; ok {
		return existing
	}
	space := NewMemorySpace(c, native, kind, devices)
	c.byID[native] = space
	c.spaces = append(c.spaces, space)
	return space
}

// LookupSpace returns the canonical wrapper for a native handle.
// Two lookups of the same handle return the same pointer.
func (c *HostClient) LookupSpace(native uint64) (*MemorySpace, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	space, ok := c.byID[native]
	return space, ok
}

// Platform returns "cpu".
func (c *HostClient) Platform() string {
	return "cpu"
}

// ProcessIndex returns 0: the host client is single-process.
func (c *HostClient) ProcessIndex() int {
	return 0
}

// Devices returns the ordered device handles.
func (c *HostClient) Devices() []*Device {
	return append([]*Device(nil), c.devices...)
}

// MemorySpaces returns the ordered memory spaces.
func (c *HostClient) MemorySpaces() []*MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*MemorySpace(nil), c.spaces...)
}

// DefaultMemorySpace returns the unpinned host space.
func (c *HostClient) DefaultMemorySpace() *MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spaces[0]
}

// AllocateBuffer allocates host storage initialized from a deep copy of
// initial and hands exclusive ownership of it to the caller.
func (c *HostClient) AllocateBuffer(initial *tensor.RawTensor, space *MemorySpace) (*Buffer, error) {
	if c.closed.Load() {
		return nil, &UseAfterFreeError{Resource: "client", ID: c.Platform(), Op: "AllocateBuffer"}
	}
	if space == nil {
		space = c.DefaultMemorySpace()
	}
	if space.Client() != Client(c) {
		return nil, fmt.Errorf("memory space %s belongs to a different client", space)
	}
	return newBuffer(space, initial.Clone()), nil
}

// Closed reports whether Close has been called.
func (c *HostClient) Closed() bool {
	return c.closed.Load()
}

// Close tears down the client. Spaces stay reachable but every query on
// them fails with a use-after-free error.
func (c *HostClient) Close() error {
	c.closed.Store(true)
	return nil
}
