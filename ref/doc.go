// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ref provides mutable array references over Lumen's immutable arrays.
//
// # Overview
//
// A Ref is a stable identity addressing one exclusively owned device buffer.
// Reads and writes go through indexed operations:
//   - Get(idx) copies the selected elements out as a fresh array
//   - Swap(idx, value) writes value in and returns the old contents
//   - Freeze() releases the buffer as an immutable array; the ref is dead
//
// Buffers are never shared between live refs, so writes through one ref can
// never be observed through another. Freeze is terminal: any operation on a
// frozen ref reports a use-after-free error.
//
// # Basic Usage
//
//	client := memory.NewHostClient()
//	r, _ := ref.New(client, tensor.Zeros[float32](tensor.Shape{3}))
//
//	old, _ := r.Swap(ref.At(1), ref.ArrayOf(tensor.Scalar[float32](5)))
//	row, _ := r.Get(ref.All())
//	final, _ := r.Freeze()
//	_, _, _ = old, row, final
//
// Inside traced functions, use the trace package's Call methods instead of
// the eager methods here; they record effects for purity analysis.
package ref
