// Package transform implements structural rewrites of traced functions:
// vectorization, sharding, rematerialization and reverse-mode
// differentiation. Every transform is gated on the function's ref usage
// pattern before it applies: its explicit list of captured refs and the
// refs appearing among the call's arguments.
package transform

import (
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// checkNoCapturedRefs rejects transforming a function whose body updates a
// shared closed-over cell. Batching an implicit in-place update across an
// unbatched dimension has no well-defined single result: every batch
// element would race to update the same cell.
func checkNoCapturedRefs(transform string, fn trace.Func) error {
	if len(fn.Captured) == 0 {
		return nil
	}
	return &trace.TransformIncompatibleError{
		Transform: transform,
		Ref:       fn.Captured[0].ID(),
		Reason:    "function closes over a mutable ref",
	}
}

// checkNoRefArgs rejects a call whose arguments contain any ref handle.
// Used by rematerialization, where recomputing would duplicate writes and
// violate the at-most-once execution contract.
func checkNoRefArgs(transform string, args []ref.Value) error {
	var refs []*ref.Ref
	refs = appendRefs(args, refs)
	if len(refs) == 0 {
		return nil
	}
	return &trace.TransformIncompatibleError{
		Transform: transform,
		Ref:       refs[0].ID(),
		Reason:    "function takes a mutable ref argument",
	}
}

func appendRefs(values []ref.Value, into []*ref.Ref) []*ref.Ref {
	for _, v := range values {
		switch val := v.(type) {
		case *ref.Ref:
			into = append(into, val)
		case ref.List:
			into = appendRefs(val, into)
		}
	}
	return into
}
