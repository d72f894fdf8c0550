package transform

import (
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Remat wraps fn so its results are recomputed on every call instead of
// stored.
//
// Rematerializing an impure function is rejected outright: recomputing
// would duplicate its writes, violating the at-most-once execution
// contract. The captured-ref set is checked when the wrapper is built; the
// argument-ref set is checked per call.
func Remat(t *trace.Tracer, fn trace.Func) (func(args ...ref.Value) ([]ref.Value, error), error) {
	if err := checkNoCapturedRefs("remat", fn); err != nil {
		return nil, err
	}

	recompute := func(args ...ref.Value) ([]ref.Value, error) {
		if err := checkNoRefArgs("remat", args); err != nil {
			return nil, err
		}
		outputs, _, err := t.Run(fn, args...)
		return outputs, err
	}
	return recompute, nil
}
