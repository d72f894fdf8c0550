// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/lumen-ml/lumen/internal/tensor"
)

// RawTensor is the flat row-major array representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Strides()
//   - Type-safe data access via AsFloat32(), AsInt64(), etc.
//   - Deep copies via Clone() and in-place fills via CopyFrom()
//
// Arrays are immutable by convention: backends allocate a fresh result for
// every operation, and in-place mutation is reserved for the ref package.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
//	data := raw.AsFloat32() // Type-safe access
//	clone := raw.Clone()    // Independent deep copy
type RawTensor = tensor.RawTensor

// Shape describes array dimensions in row-major order.
type Shape = tensor.Shape

// DataType is runtime type information for arrays.
type DataType = tensor.DataType

// Supported element types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Bool    = tensor.Bool
)

// DType constrains the Go element types arrays can hold.
type DType = tensor.DType

// Backend is the compute interface implemented by execution backends.
type Backend = tensor.Backend

// NewRaw allocates a zero-filled array with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Zeros creates a zero-filled array of the given shape.
func Zeros[T DType](shape Shape) *RawTensor {
	return tensor.Zeros[T](shape)
}

// Full creates an array of the given shape filled with value.
func Full[T DType](shape Shape, value T) *RawTensor {
	return tensor.Full[T](shape, value)
}

// FromSlice creates an array from a flat slice and shape.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a rank-0 array holding a single value.
func Scalar[T DType](value T) *RawTensor {
	return tensor.Scalar(value)
}

// Arange creates a 1-D array of values in [start, end).
func Arange[T DType](start, end T) *RawTensor {
	return tensor.Arange(start, end)
}

// TypedData returns the array contents as a typed slice.
func TypedData[T DType](r *RawTensor) []T {
	return tensor.TypedData[T](r)
}
