// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ref

import (
	"github.com/lumen-ml/lumen/internal/memory"
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Ref is a mutable cell addressing one exclusively owned buffer.
//
// A ref is created live, mutated in place through indexed Get/Swap, and
// ends its life with Freeze, which hands the buffer back as an immutable
// array. The ref's identity is stable across writes.
//
// Example:
//
//	r, _ := ref.New(client, tensor.Zeros[float32](tensor.Shape{4}))
//	r.Swap(ref.At(0), ref.ArrayOf(tensor.Scalar[float32](1)))
//	arr, _ := r.Freeze()
type Ref = ref.Ref

// State is the ref lifecycle state.
type State = ref.State

// Ref states.
const (
	Live   = ref.Live
	Frozen = ref.Frozen
)

// Value is a tree of arrays, lists, and refs passed to traced functions.
type Value = ref.Value

// Array wraps an immutable array value.
type Array = ref.Array

// List groups values into an ordered tree node.
type List = ref.List

// Indexer selects elements of an array for Get and Swap.
type Indexer = ref.Indexer

// Scope identifies one traced invocation for effect recording.
type Scope = ref.Scope

// Effect is one recorded read or write against a ref.
type Effect = ref.Effect

// Effect kinds.
const (
	EffectRead  = ref.EffectRead
	EffectWrite = ref.EffectWrite
)

// ScopeViolationError reports a freeze attempted outside the creating scope.
type ScopeViolationError = ref.ScopeViolationError

// TypeMismatchError reports an array operation applied to a ref value.
type TypeMismatchError = ref.TypeMismatchError

// New creates a live ref owning a copy of initial in the client's default
// memory space.
func New(client memory.Client, initial *tensor.RawTensor) (*Ref, error) {
	return ref.New(client, initial)
}

// Root returns the process-wide eager scope.
func Root() *Scope {
	return ref.Root()
}

// ArrayOf wraps a raw array as a Value.
func ArrayOf(raw *tensor.RawTensor) Array {
	return ref.ArrayOf(raw)
}

// NoGrad marks an array as a gradient stop for plumbing writes.
func NoGrad(a Array) Array {
	return ref.NoGrad(a)
}

// AsArray extracts the array from a value, rejecting refs and lists.
func AsArray(v Value) (Array, error) {
	return ref.AsArray(v)
}

// At selects a single element, dropping the indexed axes. Negative indices
// count from the end.
func At(indices ...int) Indexer {
	return ref.At(indices...)
}

// Span selects [start, stop) with the given step along the leading axis.
func Span(start, stop, step int) Indexer {
	return ref.Span(start, stop, step)
}

// All selects every element.
func All() Indexer {
	return ref.All()
}

// Tuple applies one indexer per leading axis.
func Tuple(parts ...Indexer) Indexer {
	return ref.Tuple(parts...)
}

// Take gathers rows by index along the leading axis. Out-of-bounds indices
// clamp to the nearest valid row.
func Take(indices []int32) Indexer {
	return ref.Take(indices)
}

// Mask selects rows where the mask is true. The mask length must equal the
// leading extent.
func Mask(mask []bool) Indexer {
	return ref.Mask(mask)
}

// Gather copies the elements selected by idx out of src into a new array.
func Gather(src *tensor.RawTensor, idx Indexer) (*tensor.RawTensor, error) {
	return ref.Gather(src, idx)
}

// Scatter writes value into the elements of dst selected by idx.
func Scatter(dst *tensor.RawTensor, idx Indexer, value *tensor.RawTensor) error {
	return ref.Scatter(dst, idx, value)
}
