package transform

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Batched describes one argument of a vectorized or sharded call.
type Batched interface {
	isBatched()
}

// Elements is an array argument batched over its leading axis: element i
// of the batch receives slice i.
type Elements struct {
	Raw *tensor.RawTensor
}

func (Elements) isBatched() {}

// Refs is a ref argument batched per element: element i receives its own
// ref, so in-place updates stay independent across the batch.
type Refs []*ref.Ref

func (Refs) isBatched() {}

// Broadcast replicates one value across every batch element.
type Broadcast struct {
	Value ref.Value
}

func (Broadcast) isBatched() {}

// elementArgs materializes the per-element argument list for batch index i.
func elementArgs(args []Batched, i, n int) ([]ref.Value, error) {
	out := make([]ref.Value, len(args))
	for j, arg := range args {
		switch a := arg.(type) {
		case Elements:
			if len(a.Raw.Shape()) == 0 {
				return nil, fmt.Errorf("batched array argument %d is a scalar; a leading batch axis is required", j)
			}
			if a.Raw.Shape()[0] != n {
				return nil, fmt.Errorf("batched array argument %d has leading extent %d, want %d",
					j, a.Raw.Shape()[0], n)
			}
			elem, err := ref.Gather(a.Raw, ref.At(i))
			if err != nil {
				return nil, fmt.Errorf("batched argument %d: %w", j, err)
			}
			out[j] = ref.ArrayOf(elem)
		case Refs:
			if len(a) != n {
				return nil, fmt.Errorf("batched ref argument %d has %d refs, want %d", j, len(a), n)
			}
			out[j] = a[i]
		case Broadcast:
			out[j] = a.Value
		default:
			return nil, fmt.Errorf("unsupported batched argument %T", arg)
		}
	}
	return out, nil
}

// stackOutputs stacks position-j outputs of every element call along a new
// leading axis of extent n.
func stackOutputs(perElement [][]ref.Value, n int) ([]ref.Array, error) {
	if n == 0 || len(perElement[0]) == 0 {
		return nil, nil
	}
	width := len(perElement[0])
	stacked := make([]ref.Array, width)

	for j := 0; j < width; j++ {
		first, err := ref.AsArray(perElement[0][j])
		if err != nil {
			return nil, err
		}
		outShape := append(tensor.Shape{n}, first.Raw.Shape()...)
		result, err := tensor.NewRaw(outShape, first.Raw.DType())
		if err != nil {
			return nil, fmt.Errorf("stack output %d: %w", j, err)
		}
		for i := 0; i < n; i++ {
			elem, err := ref.AsArray(perElement[i][j])
			if err != nil {
				return nil, err
			}
			if err := ref.Scatter(result, ref.At(i), elem.Raw); err != nil {
				return nil, fmt.Errorf("stack output %d element %d: %w", j, i, err)
			}
		}
		stacked[j] = ref.ArrayOf(result)
	}
	return stacked, nil
}
