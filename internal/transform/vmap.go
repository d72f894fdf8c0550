package transform

import (
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Vmap vectorizes fn over a batch of size n.
//
// Array arguments are batched over their leading axis; ref arguments are
// supplied one per batch element, so every element addresses its own
// instance and in-place updates never interfere across the batch.
// Functions that close over a ref are rejected: the gate fails before
// anything executes.
func Vmap(t *trace.Tracer, fn trace.Func, n int) (func(args ...Batched) ([]ref.Array, error), error) {
	if err := checkNoCapturedRefs("vmap", fn); err != nil {
		return nil, err
	}

	batched := func(args ...Batched) ([]ref.Array, error) {
		perElement := make([][]ref.Value, n)
		for i := 0; i < n; i++ {
			elemArgs, err := elementArgs(args, i, n)
			if err != nil {
				return nil, err
			}
			outputs, _, err := t.Run(fn, elemArgs...)
			if err != nil {
				return nil, err
			}
			perElement[i] = outputs
		}
		return stackOutputs(perElement, n)
	}
	return batched, nil
}
