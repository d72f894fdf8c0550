package tensor

import "fmt"

// Zeros creates an array filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T DType](shape Shape) *RawTensor {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Data is already zero-initialized by make()
	return raw
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14)
func Full[T DType](shape Shape, value T) *RawTensor {
	raw := Zeros[T](shape)
	data := TypedData[T](raw)
	for i := range data {
		data[i] = value
	}
	return raw
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw := Zeros[T](shape)
	copy(TypedData[T](raw), data)
	return raw, nil
}

// Scalar creates a 0-D array holding a single value.
func Scalar[T DType](value T) *RawTensor {
	raw := Zeros[T](Shape{})
	TypedData[T](raw)[0] = value
	return raw
}

// Arange creates a 1D array with values from start to end (exclusive).
// Only works with numeric types (not bool).
//
// Example:
//
//	t := tensor.Arange[int32](0, 10) // [0, 1, 2, ..., 9]
func Arange[T DType](start, end T) *RawTensor {
	var numElements int
	switch s := any(start).(type) {
	case float32:
		numElements = int(any(end).(float32) - s)
	case float64:
		numElements = int(any(end).(float64) - s)
	case int32:
		numElements = int(any(end).(int32) - s)
	case int64:
		numElements = int(any(end).(int64) - s)
	default:
		panic("Arange not supported for this type")
	}

	if numElements <= 0 {
		panic("end must be greater than start")
	}

	raw := Zeros[T](Shape{numElements})
	switch data := any(TypedData[T](raw)).(type) {
	case []float32:
		for i := range data {
			data[i] = any(start).(float32) + float32(i)
		}
	case []float64:
		for i := range data {
			data[i] = any(start).(float64) + float64(i)
		}
	case []int32:
		for i := range data {
			data[i] = any(start).(int32) + int32(i) //nolint:gosec // G115: i is within valid range.
		}
	case []int64:
		for i := range data {
			data[i] = any(start).(int64) + int64(i)
		}
	}
	return raw
}

// TypedData returns a typed slice view of the array's data.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the array.
func TypedData[T DType](r *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	case bool:
		return any(r.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}
