package trace

import (
	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/ref"
)

// Summary is the effect summary of one traced call. Purity is a property
// of the call site, not of the function value: the same body can be pure
// with no ref arguments and impure with them.
type Summary struct {
	// Effects is the call's effect log in program order.
	Effects []ref.Effect

	// ArgRefs are the refs passed as explicit arguments, in order.
	ArgRefs []uuid.UUID

	// CapturedRefs are the refs reachable only via closure, in order.
	CapturedRefs []uuid.UUID

	// Pure reports whether the call touched no externally visible ref.
	// Refs created and fully consumed inside the body do not count: they
	// cannot be observed outside the call.
	Pure bool
}

// summarize classifies a finished call.
func summarize(fn Func, call *Call, argRefs []*ref.Ref) *Summary {
	s := &Summary{Effects: call.scope.Effects()}

	external := make(map[uuid.UUID]bool, len(argRefs)+len(fn.Captured))
	for _, r := range argRefs {
		s.ArgRefs = append(s.ArgRefs, r.ID())
		external[r.ID()] = true
	}
	for _, r := range fn.Captured {
		s.CapturedRefs = append(s.CapturedRefs, r.ID())
		external[r.ID()] = true
	}

	s.Pure = true
	for _, e := range s.Effects {
		if external[e.Ref] {
			s.Pure = false
			break
		}
	}
	return s
}

// Touched reports whether the call's effect log contains any operation on
// the given ref.
func (s *Summary) Touched(id uuid.UUID) bool {
	for _, e := range s.Effects {
		if e.Ref == id {
			return true
		}
	}
	return false
}

// Writes returns the WRITE effects in program order.
func (s *Summary) Writes() []ref.Effect {
	var out []ref.Effect
	for _, e := range s.Effects {
		if e.Kind == ref.EffectWrite {
			out = append(out, e)
		}
	}
	return out
}
