// Package cpu implements the pure-Go CPU compute backend.
package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/parallel"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// CPUBackend implements array operations on the host CPU.
type CPUBackend struct {
	cfg parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		cfg: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition. Shapes must match.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, addKernel)
}

// Sub performs element-wise subtraction. Shapes must match.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, subKernel)
}

// Mul performs element-wise multiplication. Shapes must match.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mulKernel)
}

// Div performs element-wise division. Shapes must match.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, divKernel)
}

// Neg performs element-wise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("neg: failed to create result: %v", err))
	}
	negKernel(result, x, cpu.cfg)
	return result
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("addscalar: failed to create result: %v", err))
	}
	addScalarKernel(result, x, scalar, cpu.cfg)
	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("mulscalar: failed to create result: %v", err))
	}
	mulScalarKernel(result, x, scalar, cpu.cfg)
	return result
}

// Sum returns the total sum of all elements as a scalar array.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType())
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result: %v", err))
	}
	sumKernel(result, x)
	return result
}

// binary allocates the result and dispatches a same-shape binary kernel.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	kernel func(result, a, b *tensor.RawTensor, cfg parallel.Config),
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch: %v vs %v", name, a.Shape(), b.Shape()))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result: %v", name, err))
	}
	kernel(result, a, b, cpu.cfg)
	return result
}
