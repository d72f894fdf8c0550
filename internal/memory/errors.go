package memory

import "fmt"

// UseAfterFreeError reports an operation on a resource that has already been
// invalidated: a frozen ref, a released buffer, or a memory space whose
// owning client was torn down.
type UseAfterFreeError struct {
	Resource string // "ref", "buffer" or "memory space"
	ID       string // identity of the offending resource
	Op       string // operation that was attempted
}

// Error implements the error interface.
func (e *UseAfterFreeError) Error() string {
	return fmt.Sprintf("use after free: %s on invalidated %s %s", e.Op, e.Resource, e.ID)
}
