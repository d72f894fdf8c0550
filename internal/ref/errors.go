package ref

import (
	"fmt"

	"github.com/google/uuid"
)

// ScopeViolationError reports a freeze attempted outside the scope that
// created the ref.
type ScopeViolationError struct {
	Ref           uuid.UUID
	CreationScope string
	CallScope     string
}

// Error implements the error interface.
func (e *ScopeViolationError) Error() string {
	return fmt.Sprintf("scope violation: ref %s created in scope %q cannot be frozen from scope %q",
		e.Ref, e.CreationScope, e.CallScope)
}

// TypeMismatchError reports an array operation attempted directly on a ref
// handle instead of on a value obtained via get.
type TypeMismatchError struct {
	Ref uuid.UUID
	Op  string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s applied to ref %s; read the value with get first", e.Op, e.Ref)
}
