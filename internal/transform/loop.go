package transform

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Loop runs fn a fixed number of times, threading a carry value: each
// iteration receives the current carry followed by the loop-invariant
// extras, and must return the next carry as its first output.
//
// Every iteration executes as a traced call, so the per-call ref checks
// apply at each step: a duplicate ref among the arguments, a ref that is
// both an argument and closed over, or a ref returned as the carry all
// fail the loop. Refs may still be passed as extras and updated in place
// across iterations.
func Loop(t *trace.Tracer, fn trace.Func, n int) (func(carry ref.Value, extras ...ref.Value) (ref.Value, error), error) {
	if n < 0 {
		return nil, fmt.Errorf("loop: trip count must be >= 0, got %d", n)
	}

	looped := func(carry ref.Value, extras ...ref.Value) (ref.Value, error) {
		outer := trace.Func{
			Name:     fn.Name + "_loop",
			Captured: fn.Captured,
			Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
				cur := args[0]
				for i := 0; i < n; i++ {
					outputs, _, err := c.Invoke(fn, append([]ref.Value{cur}, args[1:]...)...)
					if err != nil {
						return nil, fmt.Errorf("loop iteration %d: %w", i, err)
					}
					if len(outputs) == 0 {
						return nil, fmt.Errorf("loop iteration %d: body %q returned no carry", i, fn.Name)
					}
					cur = outputs[0]
				}
				return []ref.Value{cur}, nil
			},
		}

		outputs, _, err := t.Run(outer, append([]ref.Value{carry}, extras...)...)
		if err != nil {
			return nil, err
		}
		return outputs[0], nil
	}
	return looped, nil
}
