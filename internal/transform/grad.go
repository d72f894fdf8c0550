package transform

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Grad builds the reverse-mode derivative of fn with respect to its array
// arguments. fn must return a scalar array as its first output.
//
// Refs may flow through fn internally or as non-differentiated plumbing
// arguments. Any value written into a plumbing ref during the traced call
// must be marked with ref.NoGrad; an unmarked write fails the transform
// rather than silently producing an incorrect gradient through a mutable
// side channel.
//
// The returned function yields one gradient per argument, aligned by
// position: nil for refs and for arrays marked stop-gradient.
func Grad(t *trace.Tracer, fn trace.Func) func(args ...ref.Value) ([]*tensor.RawTensor, error) {
	return func(args ...ref.Value) ([]*tensor.RawTensor, error) {
		ad := autodiff.New[tensor.Backend](t.Backend())
		ad.Tape().StartRecording()

		outputs, _, err := t.RunTraced(fn, trace.Options{GradMode: true, Backend: ad}, args...)
		if err != nil {
			return nil, err
		}
		if len(outputs) == 0 {
			return nil, fmt.Errorf("grad: function %q returned no outputs", fn.Name)
		}
		out, err := ref.AsArray(outputs[0])
		if err != nil {
			return nil, fmt.Errorf("grad: %w", err)
		}
		if out.Raw.NumElements() != 1 {
			return nil, fmt.Errorf("grad: function %q must return a scalar, got shape %v",
				fn.Name, out.Raw.Shape())
		}

		seed := onesLike(out.Raw)
		grads := ad.Tape().Backward(seed, ad)

		result := make([]*tensor.RawTensor, len(args))
		for i, arg := range args {
			a, ok := arg.(ref.Array)
			if !ok || a.StopGrad {
				continue // refs and stop-gradient values carry no cotangent
			}
			if g, found := grads[a.Raw]; found {
				result[i] = g
			} else {
				zero, zerr := tensor.NewRaw(a.Raw.Shape(), a.Raw.DType())
				if zerr != nil {
					return nil, fmt.Errorf("grad: %w", zerr)
				}
				result[i] = zero // input did not reach the output
			}
		}
		return result, nil
	}
}

func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(t.Shape(), t.DType())
	if err != nil {
		panic(err) // shape came from a live tensor
	}
	switch t.DType() {
	case tensor.Float32:
		for data, i := out.AsFloat32(), 0; i < len(data); i++ {
			data[i] = 1
		}
	case tensor.Float64:
		for data, i := out.AsFloat64(), 0; i < len(data); i++ {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("grad seed: unsupported dtype %s", t.DType()))
	}
	return out
}
