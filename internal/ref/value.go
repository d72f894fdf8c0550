package ref

import "github.com/lumen-ml/lumen/internal/tensor"

// Value is the tagged variant flowing through traced functions: either an
// immutable array or a ref handle. Keeping the two apart at the type level
// makes "no math on a ref" a structural contract; arithmetic only exists
// on arrays.
type Value interface {
	isValue()
}

// Array is an immutable array value.
type Array struct {
	Raw *tensor.RawTensor

	// StopGrad marks the value as not needing a gradient. Required for
	// values flowing into plumbing refs under reverse-mode differentiation.
	StopGrad bool
}

func (Array) isValue() {}

// List groups values into a nested result structure.
type List []Value

func (List) isValue() {}

func (*Ref) isValue() {}

// ArrayOf wraps a raw array as a Value.
func ArrayOf(raw *tensor.RawTensor) Array {
	return Array{Raw: raw}
}

// NoGrad marks an array value as not needing a gradient.
func NoGrad(a Array) Array {
	a.StopGrad = true
	return a
}

// AsArray extracts the array from a value. Passing a ref fails with a
// TypeMismatchError: refs must be read through get before use as values.
func AsArray(v Value) (Array, error) {
	switch val := v.(type) {
	case Array:
		return val, nil
	case *Ref:
		return Array{}, &TypeMismatchError{Ref: val.ID(), Op: "value access"}
	default:
		return Array{}, &TypeMismatchError{Op: "value access"}
	}
}
