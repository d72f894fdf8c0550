// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transform provides function transformations over traced functions.
//
// # Overview
//
// Transformations wrap a trace.Func and change how it executes:
//   - Vmap maps a function over a leading batch axis
//   - Shard runs batch elements concurrently across goroutines
//   - Loop threads a carry through a fixed number of iterations
//   - Remat re-executes a pure function instead of saving residuals
//   - Grad differentiates a scalar-valued function by reverse mode
//   - CustomVJP pairs a forward rule with a hand-written backward rule
//
// Each transformation checks ref compatibility before running. Vmap and
// Shard reject functions that capture refs from an enclosing scope but
// accept refs passed as arguments, since per-element arguments keep batch
// elements independent. Loop re-applies the aliasing and ref-escape checks
// at every iteration, so a ref cannot leave the body as the carry while
// refs passed as loop-invariant extras may be updated in place. Remat
// rejects impure functions outright. Grad
// requires writes to external refs to be marked with ref.NoGrad.
//
// # Basic Usage
//
//	fn := trace.Func{
//	    Name: "scale",
//	    Body: func(c *trace.Call, args []ref.Value) ([]ref.Value, error) {
//	        x, _ := ref.AsArray(args[0])
//	        out := c.Backend().MulScalar(x.Raw, float32(2))
//	        return []ref.Value{ref.ArrayOf(out)}, nil
//	    },
//	}
//
//	batched, _ := transform.Vmap(tracer, fn, 8)
//	outs, _ := batched(transform.Elements{Raw: batch})
//	_ = outs
package transform
