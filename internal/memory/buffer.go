package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Buffer wraps runtime storage for one array value, placed in a memory space.
//
// A buffer has exactly one owner at any instant: the client that allocated
// it, or the ref it was moved into. Ownership transfer is a move, never a
// shared hand-off. In-place updates through CopyFrom mutate contents at a
// stable address; Release moves the contents out and invalidates the buffer.
type Buffer struct {
	id        uuid.UUID
	space     *MemorySpace
	arr       *tensor.RawTensor
	valid     bool
	onRelease func() // frees native storage, if any
}

// newBuffer wraps freshly allocated host storage. Clients call this.
func newBuffer(space *MemorySpace, arr *tensor.RawTensor) *Buffer {
	return &Buffer{
		id:    uuid.New(),
		space: space,
		arr:   arr,
		valid: true,
	}
}

// NewDeviceBuffer wraps storage that mirrors a native device allocation.
// onRelease is invoked exactly once when the buffer is released, so client
// implementations outside this package can free the native resource.
func NewDeviceBuffer(space *MemorySpace, arr *tensor.RawTensor, onRelease func()) *Buffer {
	b := newBuffer(space, arr)
	b.onRelease = onRelease
	return b
}

// ID returns the buffer's identity token.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Space returns the memory space the buffer resides in.
func (b *Buffer) Space() *MemorySpace {
	return b.space
}

// Valid reports whether the buffer still owns its storage.
func (b *Buffer) Valid() bool {
	return b.valid
}

// DType returns the element type of the stored array.
func (b *Buffer) DType() tensor.DataType {
	return b.arr.DType()
}

// Shape returns the shape of the stored array.
func (b *Buffer) Shape() tensor.Shape {
	return b.arr.Shape()
}

// Storage returns the owned array for in-place access.
// Only the current owner may call this.
func (b *Buffer) Storage() (*tensor.RawTensor, error) {
	if !b.valid {
		return nil, b.useAfterFree("Storage")
	}
	return b.arr, nil
}

// Snapshot returns a deep copy of the buffer's current contents.
func (b *Buffer) Snapshot() (*tensor.RawTensor, error) {
	if !b.valid {
		return nil, b.useAfterFree("Snapshot")
	}
	return b.arr.Clone(), nil
}

// CopyFrom overwrites the buffer's contents in place. The storage address
// is unchanged; shape and dtype must match.
func (b *Buffer) CopyFrom(value *tensor.RawTensor) error {
	if !b.valid {
		return b.useAfterFree("CopyFrom")
	}
	if err := b.arr.CopyFrom(value); err != nil {
		return fmt.Errorf("buffer %s: %w", b.id, err)
	}
	return nil
}

// Release moves the buffer's contents out as an immutable value and
// invalidates the buffer. Exactly-once: a second call fails.
func (b *Buffer) Release() (*tensor.RawTensor, error) {
	if !b.valid {
		return nil, b.useAfterFree("Release")
	}
	b.valid = false
	arr := b.arr
	b.arr = nil
	if b.onRelease != nil {
		b.onRelease()
		b.onRelease = nil
	}
	return arr, nil
}

func (b *Buffer) useAfterFree(op string) error {
	return &UseAfterFreeError{Resource: "buffer", ID: b.id.String(), Op: op}
}
