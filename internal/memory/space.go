package memory

import "fmt"

// MemorySpace is a non-owning identity handle to a physical memory region.
//
// Memory spaces are compared by identity, never by value: the owning client
// canonicalizes wrappers on the underlying native handle, so two lookups of
// the same region return the same *MemorySpace and pointer equality is the
// equality relation. A MemorySpace must not be copied.
type MemorySpace struct {
	client  Client
	native  uint64 // native handle of the underlying region
	kind    string
	devices []*Device // devices that can directly address this space

	noCopy noCopy //nolint:unused // guards against accidental value copies
}

// NewMemorySpace constructs a space handle. Clients call this once per
// physical region and must canonicalize the result: handing out a second
// wrapper for the same native handle breaks identity equality.
func NewMemorySpace(client Client, native uint64, kind string, devices []*Device) *MemorySpace {
	return &MemorySpace{
		client:  client,
		native:  native,
		kind:    kind,
		devices: devices,
	}
}

// NativeHandle returns the underlying native region handle.
// Together with the owning client it defines the space's identity.
func (m *MemorySpace) NativeHandle() uint64 {
	return m.native
}

// Client returns the owning client.
func (m *MemorySpace) Client() Client {
	return m.client
}

// Kind returns the memory kind, e.g. "device" or "unpinned_host".
// Fails if the owning client has been torn down.
func (m *MemorySpace) Kind() (string, error) {
	if m.client.Closed() {
		return "", m.useAfterFree("Kind")
	}
	return m.kind, nil
}

// Platform returns the platform name of the owning client.
// Fails if the owning client has been torn down.
func (m *MemorySpace) Platform() (string, error) {
	if m.client.Closed() {
		return "", m.useAfterFree("Platform")
	}
	return m.client.Platform(), nil
}

// ProcessIndex returns the index of the process this space belongs to.
// Fails if the owning client has been torn down.
func (m *MemorySpace) ProcessIndex() (int, error) {
	if m.client.Closed() {
		return 0, m.useAfterFree("ProcessIndex")
	}
	return m.client.ProcessIndex(), nil
}

// AddressableDevices returns the ordered devices that can directly access
// this memory space. The slice is empty if none can.
// Fails if the owning client has been torn down.
func (m *MemorySpace) AddressableDevices() ([]*Device, error) {
	if m.client.Closed() {
		return nil, m.useAfterFree("AddressableDevices")
	}
	return append([]*Device(nil), m.devices...), nil
}

// Equal reports whether two handles refer to the same underlying region.
// Identity is (owning client, native handle); wrappers are canonicalized by
// the client, so equal handles are also pointer-equal.
func (m *MemorySpace) Equal(other *MemorySpace) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.client == other.client && m.native == other.native
}

// String returns a human-readable representation of the space.
func (m *MemorySpace) String() string {
	return fmt.Sprintf("%s(%s,%d)", m.kind, m.client.Platform(), m.native)
}

func (m *MemorySpace) useAfterFree(op string) error {
	return &UseAfterFreeError{
		Resource: "memory space",
		ID:       fmt.Sprintf("%s/%d", m.kind, m.native),
		Op:       op,
	}
}

// noCopy triggers go vet's copylocks check when a MemorySpace is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
