package ref

import (
	"sync"

	"github.com/google/uuid"
)

// EffectKind classifies an indexed ref operation.
type EffectKind int

// Effect kinds.
const (
	EffectRead EffectKind = iota
	EffectWrite
)

// String returns "read" or "write".
func (k EffectKind) String() string {
	if k == EffectWrite {
		return "write"
	}
	return "read"
}

// Effect is one ordered log entry for an indexed get or swap against a ref
// during tracing. Effects for a single traced call are totally ordered by
// program order; they are never reordered or batched.
type Effect struct {
	Seq   int        // position in program order within the recording scope
	Ref   uuid.UUID  // identity of the target ref
	Kind  EffectKind // READ or WRITE
	Index string     // rendered index expression
}

// Scope is a tracing context. Refs record the scope they were created in;
// freezing is legal only from that scope. Scopes created for traced calls
// record the effects performed while they are active.
type Scope struct {
	id        uuid.UUID
	name      string
	parent    *Scope
	recording bool

	mu      sync.Mutex
	effects []Effect
}

var (
	rootOnce sync.Once
	root     *Scope
)

// Root returns the process-wide eager scope. Refs created outside any
// traced call live here; it does not record effects.
func Root() *Scope {
	rootOnce.Do(func() {
		root = &Scope{id: uuid.New(), name: "root"}
	})
	return root
}

// Child creates a recording scope for one traced call.
func (s *Scope) Child(name string) *Scope {
	return &Scope{id: uuid.New(), name: name, parent: s, recording: true}
}

// ID returns the scope's identity token.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Name returns the scope's human-readable name.
func (s *Scope) Name() string {
	return s.name
}

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// record appends an effect to this scope and every recording ancestor, in
// program order. Each scope numbers effects by its own sequence.
func (s *Scope) record(target uuid.UUID, kind EffectKind, index string) {
	for sc := s; sc != nil; sc = sc.parent {
		if !sc.recording {
			continue
		}
		sc.mu.Lock()
		sc.effects = append(sc.effects, Effect{
			Seq:   len(sc.effects),
			Ref:   target,
			Kind:  kind,
			Index: index,
		})
		sc.mu.Unlock()
	}
}

// Effects returns a copy of the effects recorded in this scope, in program
// order.
func (s *Scope) Effects() []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Effect(nil), s.effects...)
}
