// Package ref implements mutable array references over the immutable
// tensor substrate: a second-class, explicitly scoped escape hatch from the
// purely functional array model.
//
// A Ref owns exactly one buffer. Indexed writes mutate the buffer's
// contents in place at a stable address; freezing moves the buffer out as
// an immutable value and permanently invalidates the handle. Every indexed
// read and write is recorded as an ordered effect in the active tracing
// scope.
package ref

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lumen-ml/lumen/internal/memory"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// State is the ref lifecycle state.
type State int

// Ref states. LIVE transitions to FROZEN exactly once; FROZEN is terminal.
const (
	Live State = iota
	Frozen
)

// String returns "live" or "frozen".
func (s State) String() string {
	if s == Frozen {
		return "frozen"
	}
	return "live"
}

// Ref is a mutable cell addressing one exclusively owned buffer.
//
// Refs provide no internal locking: a single ref must not be touched from
// two goroutines without external synchronization. Each ref allocates its
// own buffer at creation, so no two live refs ever alias the same buffer
// identity.
type Ref struct {
	id    uuid.UUID
	buf   *memory.Buffer
	state State
	scope *Scope
}

// New allocates a LIVE ref in the root (eager) scope, taking ownership of
// a buffer initialized from a deep copy of initial.
func New(client memory.Client, initial *tensor.RawTensor) (*Ref, error) {
	return NewIn(Root(), client, initial, nil)
}

// NewIn allocates a LIVE ref in the given scope. The backing buffer is
// placed in space (nil for the client's default memory space).
func NewIn(sc *Scope, client memory.Client, initial *tensor.RawTensor, space *memory.MemorySpace) (*Ref, error) {
	buf, err := client.AllocateBuffer(initial, space)
	if err != nil {
		return nil, fmt.Errorf("ref: %w", err)
	}
	return &Ref{
		id:    uuid.New(),
		buf:   buf,
		state: Live,
		scope: sc,
	}, nil
}

// ID returns the ref's identity token.
func (r *Ref) ID() uuid.UUID {
	return r.id
}

// Scope returns the scope the ref was created in.
func (r *Ref) Scope() *Scope {
	return r.scope
}

// State returns the ref's lifecycle state.
func (r *Ref) State() State {
	return r.state
}

// Buffer returns the owned buffer. Nil once frozen.
func (r *Ref) Buffer() *memory.Buffer {
	return r.buf
}

// String returns a human-readable representation.
func (r *Ref) String() string {
	return fmt.Sprintf("Ref(%s, %s)", r.id, r.state)
}

// GetIn reads a snapshot of the addressed region, recording a READ effect
// in the executing scope sc.
func (r *Ref) GetIn(sc *Scope, idx Indexer) (Array, error) {
	if r.state == Frozen {
		return Array{}, r.useAfterFree("get")
	}
	storage, err := r.buf.Storage()
	if err != nil {
		return Array{}, err
	}
	out, err := Gather(storage, idx)
	if err != nil {
		return Array{}, fmt.Errorf("ref %s get: %w", r.id, err)
	}
	sc.record(r.id, EffectRead, idx.String())
	return ArrayOf(out), nil
}

// SwapIn replaces the addressed region in place and returns the prior
// contents, recording a WRITE effect in the executing scope sc. The
// buffer's address is stable across the update.
func (r *Ref) SwapIn(sc *Scope, idx Indexer, value Array) (Array, error) {
	if r.state == Frozen {
		return Array{}, r.useAfterFree("swap")
	}
	storage, err := r.buf.Storage()
	if err != nil {
		return Array{}, err
	}
	prev, err := Gather(storage, idx)
	if err != nil {
		return Array{}, fmt.Errorf("ref %s swap: %w", r.id, err)
	}
	if err := Scatter(storage, idx, value.Raw); err != nil {
		return Array{}, fmt.Errorf("ref %s swap: %w", r.id, err)
	}
	sc.record(r.id, EffectWrite, idx.String())
	return ArrayOf(prev), nil
}

// FreezeIn converts the ref into its final immutable value, invalidating
// the handle. Valid only from the ref's creation scope and only once;
// afterwards every operation on the ref fails.
func (r *Ref) FreezeIn(sc *Scope) (Array, error) {
	if r.state == Frozen {
		return Array{}, r.useAfterFree("freeze")
	}
	if sc != r.scope {
		return Array{}, &ScopeViolationError{
			Ref:           r.id,
			CreationScope: r.scope.Name(),
			CallScope:     sc.Name(),
		}
	}
	value, err := r.buf.Release()
	if err != nil {
		return Array{}, err
	}
	r.state = Frozen
	r.buf = nil
	return ArrayOf(value), nil
}

// Get reads from the root (eager) scope.
func (r *Ref) Get(idx Indexer) (Array, error) {
	return r.GetIn(Root(), idx)
}

// Swap writes in the root (eager) scope.
func (r *Ref) Swap(idx Indexer, value Array) (Array, error) {
	return r.SwapIn(Root(), idx, value)
}

// Freeze freezes from the root (eager) scope.
func (r *Ref) Freeze() (Array, error) {
	return r.FreezeIn(Root())
}

func (r *Ref) useAfterFree(op string) error {
	return &memory.UseAfterFreeError{Resource: "ref", ID: r.id.String(), Op: op}
}
