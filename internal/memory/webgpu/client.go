//go:build windows

// Package webgpu implements a memory client backed by a WebGPU device.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/lumen-ml/lumen/internal/memory"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Client exposes a WebGPU device's memory as a memory space and allocates
// device buffers in it. Array contents are kept in a host staging mirror;
// the device allocation is the placement the buffer identity refers to.
type Client struct {
	device *wgpu.Device
	closed atomic.Bool

	mu      sync.Mutex
	spaces  []*memory.MemorySpace
	byID    map[uint64]*memory.MemorySpace
	devices []*memory.Device
	nextID  uint64

	pool *BufferPool
}

// NewClient creates a client over an already-initialized WebGPU device.
// The caller keeps ownership of the wgpu.Device.
func NewClient(device *wgpu.Device) *Client {
	c := &Client{
		device: device,
		byID:   make(map[uint64]*memory.MemorySpace),
		pool:   NewBufferPool(device),
	}
	dev := memory.NewDevice(c, 0, "gpu")
	c.devices = []*memory.Device{dev}
	c.registerSpace("device", c.devices)
	return c
}

func (c *Client) registerSpace(kind string, devices []*memory.Device) *memory.MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()

	native := c.nextID
	c.nextID++
	if existing, ok := c.byID[native]; ok {
		return existing
	}
	space := memory.NewMemorySpace(c, native, kind, devices)
	c.byID[native] = space
	c.spaces = append(c.spaces, space)
	return space
}

// Platform returns "webgpu".
func (c *Client) Platform() string {
	return "webgpu"
}

// ProcessIndex returns 0: one process owns the device.
func (c *Client) ProcessIndex() int {
	return 0
}

// Devices returns the ordered device handles.
func (c *Client) Devices() []*memory.Device {
	return append([]*memory.Device(nil), c.devices...)
}

// MemorySpaces returns the ordered memory spaces.
func (c *Client) MemorySpaces() []*memory.MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*memory.MemorySpace(nil), c.spaces...)
}

// DefaultMemorySpace returns the device memory space.
func (c *Client) DefaultMemorySpace() *memory.MemorySpace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spaces[0]
}

// AllocateBuffer creates a device allocation sized for initial and hands
// exclusive ownership to the caller. The wgpu buffer is returned to the
// pool when the memory buffer is released.
func (c *Client) AllocateBuffer(initial *tensor.RawTensor, space *memory.MemorySpace) (*memory.Buffer, error) {
	if c.closed.Load() {
		return nil, &memory.UseAfterFreeError{Resource: "client", ID: c.Platform(), Op: "AllocateBuffer"}
	}
	if space == nil {
		space = c.DefaultMemorySpace()
	}
	if space.Client() != memory.Client(c) {
		return nil, fmt.Errorf("memory space %s belongs to a different client", space)
	}

	size := uint64(initial.ByteSize()) //nolint:gosec // G115: byte sizes are non-negative.
	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	gpuBuf := c.pool.Acquire(size, usage)

	release := func() {
		c.pool.Release(gpuBuf, size, usage)
	}
	return memory.NewDeviceBuffer(space, initial.Clone(), release), nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Close tears down the client and drains the buffer pool.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.pool.Clear()
	return nil
}
