// Package trace implements the effect-tracking tracing layer: scoped
// execution of traced functions, aliasing validation ahead of execution,
// ordered effect logs, and per-call-site purity classification.
package trace

import (
	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/config"
	"github.com/lumen-ml/lumen/internal/memory"
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Tracer executes traced functions against a memory client and a compute
// backend. Configuration is injected at construction so tests can toggle
// checking deterministically.
type Tracer struct {
	client  memory.Client
	backend tensor.Backend
	cfg     config.Config
}

// Options select per-invocation tracing behavior. Transforms use these;
// plain calls leave them zero.
type Options struct {
	// GradMode marks the call as running under reverse-mode
	// differentiation: writes to plumbing refs require stop-gradient
	// marked values.
	GradMode bool

	// AllowRefReturn permits the body to return a ref handle. Reserved
	// for custom-VJP forward rules, which return a ref purely to thread
	// its identity to the backward rule.
	AllowRefReturn bool

	// Backend overrides the tracer's backend for this call.
	Backend tensor.Backend
}

// New creates a tracer using the process configuration installed at the
// time of the call.
func New(client memory.Client, backend tensor.Backend) *Tracer {
	return NewWith(client, backend, config.Current())
}

// NewWith creates a tracer with an explicit configuration.
func NewWith(client memory.Client, backend tensor.Backend, cfg config.Config) *Tracer {
	return &Tracer{client: client, backend: backend, cfg: cfg}
}

// Client returns the tracer's memory client.
func (t *Tracer) Client() memory.Client {
	return t.client
}

// Backend returns the tracer's compute backend.
func (t *Tracer) Backend() tensor.Backend {
	return t.backend
}

// Run traces one call of fn with the given arguments, rooted in the eager
// scope. It validates aliasing before the body executes, records effects in
// program order, and classifies the call's purity.
func (t *Tracer) Run(fn Func, args ...ref.Value) ([]ref.Value, *Summary, error) {
	return t.run(ref.Root(), fn, Options{}, args)
}

// RunTraced is Run with explicit per-invocation options. Transforms use it.
func (t *Tracer) RunTraced(fn Func, opts Options, args ...ref.Value) ([]ref.Value, *Summary, error) {
	return t.run(ref.Root(), fn, opts, args)
}

func (t *Tracer) run(parent *ref.Scope, fn Func, opts Options, args []ref.Value) ([]ref.Value, *Summary, error) {
	argRefs := collectRefs(args, nil)
	if err := checkAliasing(fn, argRefs); err != nil {
		return nil, nil, err
	}

	backend := t.backend
	if opts.Backend != nil {
		backend = opts.Backend
	}

	call := &Call{
		tracer:  t,
		scope:   parent.Child(fn.Name),
		backend: backend,
		opts:    opts,
		created: make(map[uuid.UUID]bool),
	}

	outputs, err := fn.Body(call, args)
	if err != nil {
		return nil, nil, err
	}

	if !opts.AllowRefReturn {
		if err := checkNoRefEscape(fn, outputs, t.cfg.StrictRefChecks); err != nil {
			return nil, nil, err
		}
	}

	return outputs, summarize(fn, call, argRefs), nil
}

// checkAliasing rejects, before any effect applies, the argument patterns
// that would make in-place semantics ill-defined.
func checkAliasing(fn Func, argRefs []*ref.Ref) error {
	captured := fn.capturedSet()
	seen := make(map[uuid.UUID]bool, len(argRefs))
	for _, r := range argRefs {
		if seen[r.ID()] {
			return &AliasingViolationError{
				Ref:    r.ID(),
				Func:   fn.Name,
				Reason: "same ref passed more than once as an explicit argument",
			}
		}
		seen[r.ID()] = true
		if captured[r.ID()] {
			return &AliasingViolationError{
				Ref:    r.ID(),
				Func:   fn.Name,
				Reason: "ref is both an explicit argument and a closed-over variable",
			}
		}
	}
	return nil
}

// checkNoRefEscape rejects refs in a traced body's outputs. The top level
// of the result is always checked; nested structures are scanned when
// strict checks are enabled. Correct programs are unaffected by the flag.
func checkNoRefEscape(fn Func, outputs []ref.Value, strict bool) error {
	for _, v := range outputs {
		switch val := v.(type) {
		case *ref.Ref:
			return escapeError(fn, val)
		case ref.List:
			if !strict {
				continue
			}
			if escaped := collectRefs(val, nil); len(escaped) > 0 {
				return escapeError(fn, escaped[0])
			}
		}
	}
	return nil
}

func escapeError(fn Func, r *ref.Ref) error {
	return &AliasingViolationError{
		Ref:    r.ID(),
		Func:   fn.Name,
		Reason: "ref returned from a traced function body",
	}
}
