// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense array representation used throughout Lumen.
//
// # Overview
//
// Arrays in Lumen are immutable values: operations produce new arrays and
// never modify their inputs. This package provides:
//   - RawTensor, the flat row-major storage with explicit dtype and shape
//   - Generic constructors (Zeros[T], Full[T], FromSlice[T], Arange[T])
//   - The Backend interface implemented by compute backends
//
// Mutable state lives in the ref package, which layers array references on
// top of the immutable arrays defined here.
//
// # Basic Usage
//
//	import (
//	    "github.com/lumen-ml/lumen/tensor"
//	    "github.com/lumen-ml/lumen/internal/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	    y := tensor.Full[float32](tensor.Shape{2, 3}, 1)
//
//	    z, _ := backend.Add(x, y)
//	    _ = z
//	}
//
// # Supported Data Types
//
// The DType constraint covers the element types arrays can hold:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - bool (boolean masks)
package tensor
