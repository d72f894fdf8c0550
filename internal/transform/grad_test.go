package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// sumSquaresFn computes sum(x * x), a scalar.
func sumSquaresFn() trace.Func {
	return trace.Func{
		Name: "sum_squares",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			b := c.Backend()
			return []ref.Value{ref.ArrayOf(b.Sum(b.Mul(x.Raw, x.Raw)))}, nil
		},
	}
}

func TestGradSumSquares(t *testing.T) {
	tr := newTracer()
	gradFn := Grad(tr, sumSquaresFn())

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	grads, err := gradFn(ref.ArrayOf(x))
	require.NoError(t, err)
	require.Len(t, grads, 1)

	// d/dx sum(x^2) = 2x
	assert.Equal(t, []float32{2, 4, 6}, grads[0].AsFloat32())
}

func TestGradMultipleArgs(t *testing.T) {
	tr := newTracer()

	// f(x, y) = sum(x * y): df/dx = y, df/dy = x.
	fn := trace.Func{
		Name: "dot",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			y, err := ref.AsArray(args[1])
			if err != nil {
				return nil, err
			}
			b := c.Backend()
			return []ref.Value{ref.ArrayOf(b.Sum(b.Mul(x.Raw, y.Raw)))}, nil
		},
	}

	gradFn := Grad(tr, fn)
	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	y, _ := tensor.FromSlice([]float32{5, 7}, tensor.Shape{2})

	grads, err := gradFn(ref.ArrayOf(x), ref.ArrayOf(y))
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Equal(t, []float32{5, 7}, grads[0].AsFloat32())
	assert.Equal(t, []float32{1, 2}, grads[1].AsFloat32())
}

func TestGradPlumbingRefNeedsStopGradient(t *testing.T) {
	tr := newTracer()
	logRef, err := ref.New(tr.Client(), tensor.Scalar[float32](0))
	require.NoError(t, err)

	// Computes sum(x*x) and stashes the loss into a plumbing ref.
	stashing := func(mark bool) trace.Func {
		return trace.Func{
			Name: "loss_with_log",
			Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
				x, err := ref.AsArray(args[0])
				if err != nil {
					return nil, err
				}
				r := args[1].(*ref.Ref)
				b := c.Backend()
				loss := ref.ArrayOf(b.Sum(b.Mul(x.Raw, x.Raw)))

				stash := loss
				if mark {
					stash = ref.NoGrad(stash)
				}
				if _, err := c.Swap(r, ref.All(), stash); err != nil {
					return nil, err
				}
				return []ref.Value{loss}, nil
			},
		}
	}

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})

	// Unmarked plumbing write fails the transform.
	_, err = Grad(tr, stashing(false))(ref.ArrayOf(x), logRef)
	var ti *trace.TransformIncompatibleError
	require.ErrorAs(t, err, &ti)
	assert.Equal(t, "grad", ti.Transform)

	// Marked write succeeds, the ref slot carries no gradient, and the
	// plumbing value landed.
	grads, err := Grad(tr, stashing(true))(ref.ArrayOf(x), logRef)
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Equal(t, []float32{2, 4}, grads[0].AsFloat32())
	assert.Nil(t, grads[1])

	logged, err := logRef.Get(ref.All())
	require.NoError(t, err)
	assert.Equal(t, float32(5), logged.Raw.AsFloat32()[0])
}

func TestGradStopGradientInputGetsNil(t *testing.T) {
	tr := newTracer()

	fn := trace.Func{
		Name: "weighted",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			w, err := ref.AsArray(args[1])
			if err != nil {
				return nil, err
			}
			b := c.Backend()
			return []ref.Value{ref.ArrayOf(b.Sum(b.Mul(x.Raw, w.Raw)))}, nil
		},
	}

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	w, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2})

	grads, err := Grad(tr, fn)(ref.ArrayOf(x), ref.NoGrad(ref.ArrayOf(w)))
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, grads[0].AsFloat32())
	assert.Nil(t, grads[1], "stop-gradient inputs carry no cotangent")
}

func TestGradUnreachedInputGetsZeros(t *testing.T) {
	tr := newTracer()

	// Only the first argument reaches the output.
	fn := trace.Func{
		Name: "ignore_second",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			b := c.Backend()
			return []ref.Value{ref.ArrayOf(b.Sum(b.Mul(x.Raw, x.Raw)))}, nil
		},
	}

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	unused, _ := tensor.FromSlice([]float32{9, 9, 9}, tensor.Shape{3})

	grads, err := Grad(tr, fn)(ref.ArrayOf(x), ref.ArrayOf(unused))
	require.NoError(t, err)
	require.NotNil(t, grads[1])
	assert.Equal(t, tensor.Shape{3}, grads[1].Shape())
	assert.Equal(t, []float32{0, 0, 0}, grads[1].AsFloat32())
}

func TestGradRejectsNonScalarOutput(t *testing.T) {
	tr := newTracer()

	fn := trace.Func{
		Name: "vector_out",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			return []ref.Value{ref.ArrayOf(c.Backend().MulScalar(x.Raw, float32(2)))}, nil
		},
	}

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	_, err := Grad(tr, fn)(ref.ArrayOf(x))
	assert.Error(t, err)
}
