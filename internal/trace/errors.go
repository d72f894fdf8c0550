package trace

import (
	"fmt"

	"github.com/google/uuid"
)

// AliasingViolationError reports a ref usage pattern that would create
// ill-defined aliasing: the same ref passed twice to one traced call, a ref
// that is both an explicit argument and a closed-over variable, or a ref
// escaping a traced body through its outputs.
type AliasingViolationError struct {
	Ref    uuid.UUID
	Func   string
	Reason string
}

// Error implements the error interface.
func (e *AliasingViolationError) Error() string {
	return fmt.Sprintf("aliasing violation in %q: %s (ref %s)", e.Func, e.Reason, e.Ref)
}

// TransformIncompatibleError reports a transformation rejected because of
// the function's ref usage pattern.
type TransformIncompatibleError struct {
	Transform string
	Ref       uuid.UUID
	Reason    string
}

// Error implements the error interface.
func (e *TransformIncompatibleError) Error() string {
	return fmt.Sprintf("%s is incompatible with this function: %s (ref %s)", e.Transform, e.Reason, e.Ref)
}
