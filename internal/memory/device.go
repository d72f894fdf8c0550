package memory

import "fmt"

// Device is a handle to a compute device that can address one or more
// memory spaces. Devices are created by their owning client and never
// independently destroyed.
type Device struct {
	client  Client
	ordinal int
	kind    string
}

// NewDevice constructs a device handle. Only clients call this.
func NewDevice(client Client, ordinal int, kind string) *Device {
	return &Device{client: client, ordinal: ordinal, kind: kind}
}

// Ordinal returns the device's position in its client's enumeration order.
func (d *Device) Ordinal() int {
	return d.ordinal
}

// Kind returns the device kind, e.g. "cpu" or "gpu".
func (d *Device) Kind() string {
	return d.kind
}

// Client returns the owning client.
func (d *Device) Client() Client {
	return d.client
}

// String returns a human-readable device name.
func (d *Device) String() string {
	return fmt.Sprintf("%s:%d", d.kind, d.ordinal)
}
