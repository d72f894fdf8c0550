//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// sizeClass buckets allocations so freed buffers are only reused for
// requests of similar magnitude.
type sizeClass int

const (
	smallClass  sizeClass = iota // < 4KB
	mediumClass                  // 4KB - 1MB
	largeClass                   // > 1MB
)

const (
	smallThreshold  = 4 * 1024
	mediumThreshold = 1024 * 1024
	maxPerClass     = 64
)

type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool reuses freed GPU buffers to reduce allocation overhead.
type BufferPool struct {
	device *wgpu.Device

	mu    sync.Mutex
	free  map[sizeClass][]*pooledBuffer
	hits  uint64
	total uint64
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		free:   make(map[sizeClass][]*pooledBuffer),
	}
}

// Acquire gets a buffer from the pool or creates a new one. The returned
// buffer matches or exceeds the requested size and covers the usage flags.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := classify(size)
	pool := p.free[class]
	for i, pb := range pool {
		if pb.size >= size && pb.usage&usage == usage {
			p.free[class] = append(pool[:i], pool[i+1:]...)
			p.hits++
			return pb.buffer
		}
	}

	p.total++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool for reuse, or frees it immediately
// if the pool's class is full.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := classify(size)
	if len(p.free[class]) >= maxPerClass {
		buffer.Release()
		return
	}
	p.free[class] = append(p.free[class], &pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear frees all pooled buffers. Called when the client closes.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for class, pool := range p.free {
		for _, pb := range pool {
			pb.buffer.Release()
		}
		p.free[class] = nil
	}
}

// Stats reports allocations served from the pool vs created fresh.
func (p *BufferPool) Stats() (hits, allocated uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.total
}

func classify(size uint64) sizeClass {
	switch {
	case size < smallThreshold:
		return smallClass
	case size < mediumThreshold:
		return mediumClass
	default:
		return largeClass
	}
}
