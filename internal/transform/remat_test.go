package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

func TestRematRecomputesOnEveryCall(t *testing.T) {
	tr := newTracer()

	executions := 0
	fn := trace.Func{
		Name: "counted",
		Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
			executions++
			x, err := ref.AsArray(args[0])
			if err != nil {
				return nil, err
			}
			return []ref.Value{ref.ArrayOf(c.Backend().AddScalar(x.Raw, float32(1)))}, nil
		},
	}

	recompute, err := Remat(tr, fn)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		outs, err := recompute(ref.ArrayOf(tensor.Scalar[float32](1)))
		require.NoError(t, err)
		out, err := ref.AsArray(outs[0])
		require.NoError(t, err)
		assert.Equal(t, float32(2), out.Raw.AsFloat32()[0])
	}
	assert.Equal(t, 3, executions)
}

func TestRematCapturedRefRejected(t *testing.T) {
	tr := newTracer()
	r, err := ref.New(tr.Client(), tensor.Scalar[float32](0))
	require.NoError(t, err)

	fn := trace.Func{
		Name:     "impure",
		Captured: []*ref.Ref{r},
		Body: func(c *trace.Call, _ []ref.Value) ([]ref.Value, error) {
			_, err := c.Swap(r, ref.All(), ref.ArrayOf(tensor.Scalar[float32](1)))
			return nil, err
		},
	}

	_, err = Remat(tr, fn)
	var ti *trace.TransformIncompatibleError
	require.ErrorAs(t, err, &ti)
	assert.Equal(t, "remat", ti.Transform)
}

func TestRematRefArgumentRejectedPerCall(t *testing.T) {
	tr := newTracer()

	recompute, err := Remat(tr, doubleFn())
	require.NoError(t, err)

	// Array calls are fine.
	_, err = recompute(ref.ArrayOf(tensor.Scalar[float32](2)))
	require.NoError(t, err)

	// A ref anywhere in the arguments is not, even nested.
	r, err := ref.New(tr.Client(), tensor.Scalar[float32](0))
	require.NoError(t, err)

	var ti *trace.TransformIncompatibleError
	_, err = recompute(r)
	require.ErrorAs(t, err, &ti)

	_, err = recompute(ref.List{ref.ArrayOf(tensor.Scalar[float32](1)), r})
	require.ErrorAs(t, err, &ti)
}

func TestRematInternalRefsAllowed(t *testing.T) {
	tr := newTracer()

	// Internal refs are invisible from outside, so the call stays pure
	// and rematerialization is sound.
	fn := trace.Func{
		Name: "internal_state",
		Body: func(c *trace.Call, _ []ref.Value) ([]ref.Value, error) {
			r, err := c.NewRef(tensor.Scalar[float32](0))
			if err != nil {
				return nil, err
			}
			if _, err := c.Swap(r, ref.All(), ref.ArrayOf(tensor.Scalar[float32](7))); err != nil {
				return nil, err
			}
			out, err := c.Freeze(r)
			if err != nil {
				return nil, err
			}
			return []ref.Value{out}, nil
		},
	}

	recompute, err := Remat(tr, fn)
	require.NoError(t, err)

	outs, err := recompute()
	require.NoError(t, err)
	out, err := ref.AsArray(outs[0])
	require.NoError(t, err)
	assert.Equal(t, float32(7), out.Raw.AsFloat32()[0])
}
