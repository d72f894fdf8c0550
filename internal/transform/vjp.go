package transform

import (
	"fmt"
	"sync"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// CustomVJP pairs a forward rule with a hand-written backward rule.
//
// The forward rule may return a ref handle among its residuals: this is the
// one sanctioned exception to "refs cannot be returned from a traced body",
// and exists purely so the same ref identity can be threaded to the
// backward rule. The handle gains no new capability by being returned.
type CustomVJP struct {
	// Name registers the rule pair.
	Name string

	// Forward computes the primal outputs followed by residuals saved for
	// the backward pass. Outputs are [primal..., residuals...] with
	// NumPrimal primal values first.
	Forward trace.Func

	// NumPrimal is the number of primal outputs of Forward.
	NumPrimal int

	// Backward receives the residuals followed by the output cotangent
	// and computes argument cotangents.
	Backward trace.Func
}

// Apply runs the forward rule and splits its outputs into primal values
// and residuals. The forward call runs with the ref-return exception
// enabled.
func (v CustomVJP) Apply(t *trace.Tracer, args ...ref.Value) (primal, residuals []ref.Value, err error) {
	outputs, _, err := t.RunTraced(v.Forward, trace.Options{AllowRefReturn: true}, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(outputs) < v.NumPrimal {
		return nil, nil, fmt.Errorf("custom vjp %q: forward returned %d outputs, want at least %d",
			v.Name, len(outputs), v.NumPrimal)
	}
	return outputs[:v.NumPrimal], outputs[v.NumPrimal:], nil
}

// Cotangent runs the backward rule on the saved residuals and the output
// cotangent. A ref residual arrives with the identity the forward rule
// returned.
func (v CustomVJP) Cotangent(t *trace.Tracer, residuals []ref.Value, outGrad ref.Array) ([]ref.Value, error) {
	args := append(append([]ref.Value(nil), residuals...), outGrad)
	outputs, _, err := t.Run(v.Backward, args...)
	return outputs, err
}

var (
	vjpMu       sync.RWMutex
	vjpRegistry = make(map[string]CustomVJP)
)

// RegisterVJP installs a custom rule pair under its name.
// Re-registration overwrites, matching last-wins semantics for reloads.
func RegisterVJP(v CustomVJP) {
	vjpMu.Lock()
	defer vjpMu.Unlock()
	vjpRegistry[v.Name] = v
}

// LookupVJP retrieves a registered rule pair.
func LookupVJP(name string) (CustomVJP, bool) {
	vjpMu.RLock()
	defer vjpMu.RUnlock()
	v, ok := vjpRegistry[name]
	return v, ok
}
