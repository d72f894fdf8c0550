package trace

import (
	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/ref"
)

// Func is the traced representation of a function. Closure capture is
// explicit: every external ref the body touches without receiving it as an
// argument must be listed in Captured, so purity and transform
// compatibility reduce to simple set inspection.
type Func struct {
	// Name identifies the function in scopes and diagnostics.
	Name string

	// Captured lists the refs the body reads or writes via closure.
	Captured []*ref.Ref

	// Body runs under a Call, which routes ref operations, effect
	// recording and backend dispatch.
	Body func(c *Call, args []ref.Value) ([]ref.Value, error)
}

// capturedSet returns the identity set of the captured refs.
func (f Func) capturedSet() map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(f.Captured))
	for _, r := range f.Captured {
		set[r.ID()] = true
	}
	return set
}

// collectRefs walks a value structure and appends every ref found,
// depth-first, preserving appearance order.
func collectRefs(values []ref.Value, into []*ref.Ref) []*ref.Ref {
	for _, v := range values {
		switch val := v.(type) {
		case *ref.Ref:
			into = append(into, val)
		case ref.List:
			into = collectRefs(val, into)
		}
	}
	return into
}
