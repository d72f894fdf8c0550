package trace

import (
	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Call is the per-invocation context handed to a traced function body. It
// routes indexed ref operations so that effects land in the call's scope in
// program order, exposes the compute backend, and applies the dynamic
// checks that depend on the active transformation.
type Call struct {
	tracer  *Tracer
	scope   *ref.Scope
	backend tensor.Backend
	opts    Options

	// refs created inside this call; they are internal to it and do not
	// affect its purity classification.
	created map[uuid.UUID]bool
}

// Scope returns the call's tracing scope.
func (c *Call) Scope() *ref.Scope {
	return c.scope
}

// Backend returns the compute backend for this call. Under reverse-mode
// differentiation this is the tape-recording autodiff decorator.
func (c *Call) Backend() tensor.Backend {
	return c.backend
}

// NewRef allocates a LIVE ref in this call's scope. Refs created here are
// internal: they must be frozen before the body returns and do not make
// the call impure.
func (c *Call) NewRef(initial *tensor.RawTensor) (*ref.Ref, error) {
	r, err := ref.NewIn(c.scope, c.tracer.client, initial, nil)
	if err != nil {
		return nil, err
	}
	c.created[r.ID()] = true
	return r, nil
}

// Get reads a snapshot of the addressed region of r, recording a READ
// effect in program order.
func (c *Call) Get(r *ref.Ref, idx ref.Indexer) (ref.Array, error) {
	return r.GetIn(c.scope, idx)
}

// Swap replaces the addressed region of r in place and returns the prior
// contents, recording a WRITE effect in program order.
//
// Under reverse-mode differentiation, a value flowing into an external
// (plumbing) ref must be explicitly marked as not needing a gradient;
// failing that the transform fails rather than silently producing an
// incorrect gradient through a mutable side channel.
func (c *Call) Swap(r *ref.Ref, idx ref.Indexer, value ref.Array) (ref.Array, error) {
	if c.opts.GradMode && !value.StopGrad && !c.created[r.ID()] {
		return ref.Array{}, &TransformIncompatibleError{
			Transform: "grad",
			Ref:       r.ID(),
			Reason:    "value written to a plumbing ref is not marked as stop-gradient",
		}
	}
	return r.SwapIn(c.scope, idx, value)
}

// Freeze converts r into its final immutable value. Fails with a scope
// violation unless r was created in this call's scope.
func (c *Call) Freeze(r *ref.Ref) (ref.Array, error) {
	return r.FreezeIn(c.scope)
}

// Invoke runs a nested traced call under this call's scope. The nested
// call's effects also appear, in order, in this call's effect log. The
// ref-return exception never propagates to nested bodies.
func (c *Call) Invoke(fn Func, args ...ref.Value) ([]ref.Value, *Summary, error) {
	opts := c.opts
	opts.AllowRefReturn = false
	return c.tracer.run(c.scope, fn, opts, args)
}
