// Package autodiff implements automatic differentiation using the
// decorator pattern.
//
// Backend wraps any compute backend and adds gradient tracking through a
// GradientTape: the forward pass runs on the wrapped backend while each
// operation is recorded; walking the tape in reverse applies the chain
// rule.
package autodiff

import (
	"github.com/lumen-ml/lumen/internal/autodiff/ops"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Backend wraps a compute backend and records operations for reverse-mode
// differentiation. It implements tensor.Backend.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(x, y, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(x, y, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(x, y, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDivOp(x, y, result))
	}
	return result
}

// Neg performs element-wise negation and records the operation.
func (b *Backend[B]) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Neg(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewNegOp(x, result))
	}
	return result
}

// AddScalar adds a scalar to every element and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.AddScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddScalarOp(x, result))
	}
	return result
}

// MulScalar multiplies every element by a scalar and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.MulScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulScalarOp(x, result, scalar))
	}
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumOp(x, result))
	}
	return result
}
