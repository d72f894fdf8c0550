package ops

import (
	"github.com/lumen-ml/lumen/internal/tensor"
)

// AddScalarOp represents element-wise scalar addition: output = x + s.
//
// Backward: the gradient flows through unchanged.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: x, output: output}
}

// Backward computes the input gradient: grad_x = outputGrad.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensor [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x + s.
func (op *AddScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// MulScalarOp represents element-wise scalar multiplication: output = x * s.
//
// Backward: grad_x = outputGrad * s.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar any
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar any) *MulScalarOp {
	return &MulScalarOp{input: x, output: output, scalar: scalar}
}

// Backward computes the input gradient: grad_x = outputGrad * s.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x * s.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// SumOp represents total reduction to a scalar: output = sum(x).
//
// Backward: every element contributed with weight 1, so the scalar output
// gradient is broadcast back to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: x, output: output}
}

// Backward broadcasts the scalar output gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	ones, err := tensor.NewRaw(op.input.Shape(), op.input.DType())
	if err != nil {
		panic(err) // input shape was valid in the forward pass
	}
	fillOnes(ones)
	return []*tensor.RawTensor{backend.MulScalar(ones, scalarValue(outputGrad))}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar output tensor.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

func fillOnes(t *tensor.RawTensor) {
	switch t.DType() {
	case tensor.Float32:
		for data, i := t.AsFloat32(), 0; i < len(data); i++ {
			data[i] = 1
		}
	case tensor.Float64:
		for data, i := t.AsFloat64(), 0; i < len(data); i++ {
			data[i] = 1
		}
	case tensor.Int32:
		for data, i := t.AsInt32(), 0; i < len(data); i++ {
			data[i] = 1
		}
	case tensor.Int64:
		for data, i := t.AsInt64(), 0; i < len(data); i++ {
			data[i] = 1
		}
	default:
		panic("fillOnes: unsupported dtype")
	}
}

func scalarValue(t *tensor.RawTensor) any {
	switch t.DType() {
	case tensor.Float32:
		return t.AsFloat32()[0]
	case tensor.Float64:
		return t.AsFloat64()[0]
	case tensor.Int32:
		return t.AsInt32()[0]
	case tensor.Int64:
		return t.AsInt64()[0]
	default:
		panic("scalarValue: unsupported dtype")
	}
}
