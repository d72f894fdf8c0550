// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
	"github.com/lumen-ml/lumen/internal/transform"
)

// Batched describes one argument of a vectorized or sharded call.
type Batched = transform.Batched

// Elements is an array argument batched over its leading axis.
type Elements = transform.Elements

// Refs is a ref argument batched per element.
type Refs = transform.Refs

// Broadcast replicates one value across every batch element.
type Broadcast = transform.Broadcast

// CustomVJP pairs a forward rule with a hand-written backward rule.
type CustomVJP = transform.CustomVJP

// Vmap vectorizes fn over a leading batch axis of extent n.
//
// The function must not capture refs from an enclosing scope; refs may
// still be passed per element via Refs arguments.
func Vmap(t *trace.Tracer, fn trace.Func, n int) (func(args ...Batched) ([]ref.Array, error), error) {
	return transform.Vmap(t, fn, n)
}

// Shard runs fn concurrently over n batch elements. Per-element Refs
// arguments must be pairwise distinct.
func Shard(t *trace.Tracer, fn trace.Func, n int) (func(args ...Batched) ([]ref.Array, error), error) {
	return transform.Shard(t, fn, n)
}

// Loop runs fn a fixed number of times, threading a carry value. Each
// iteration is a traced call, so the per-call ref checks apply at every
// step; a ref returned as the carry fails the loop.
func Loop(t *trace.Tracer, fn trace.Func, n int) (func(carry ref.Value, extras ...ref.Value) (ref.Value, error), error) {
	return transform.Loop(t, fn, n)
}

// Remat wraps fn so that calls re-execute the body instead of saving
// residuals. The function must be pure.
func Remat(t *trace.Tracer, fn trace.Func) (func(args ...ref.Value) ([]ref.Value, error), error) {
	return transform.Remat(t, fn)
}

// Grad differentiates fn with respect to its array arguments. The first
// output of fn must be a scalar array.
func Grad(t *trace.Tracer, fn trace.Func) func(args ...ref.Value) ([]*tensor.RawTensor, error) {
	return transform.Grad(t, fn)
}

// RegisterVJP installs a custom rule pair under its name.
func RegisterVJP(v CustomVJP) {
	transform.RegisterVJP(v)
}

// LookupVJP retrieves a registered rule pair.
func LookupVJP(name string) (CustomVJP, bool) {
	return transform.LookupVJP(name)
}
