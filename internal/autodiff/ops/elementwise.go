package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// binaryOp is the shared shape of two-input elementwise operations.
type binaryOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor
}

// Inputs returns the input tensors [a, b].
func (op *binaryOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the operation's result tensor.
func (op *binaryOp) Output() *tensor.RawTensor {
	return op.output
}

// AddOp represents element-wise addition: output = a + b.
//
// Backward: d(a+b)/da = 1 and d(a+b)/db = 1, so the output gradient flows
// unchanged to both inputs.
type AddOp struct{ binaryOp }

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{binaryOp{inputs: []*tensor.RawTensor{a, b}, output: output}}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad, outputGrad}
}

// SubOp represents element-wise subtraction: output = a - b.
type SubOp struct{ binaryOp }

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{binaryOp{inputs: []*tensor.RawTensor{a, b}, output: output}}
}

// Backward computes input gradients for subtraction:
// grad_a = outputGrad, grad_b = -outputGrad.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad, backend.Neg(outputGrad)}
}

// MulOp represents element-wise multiplication: output = a * b.
//
// Backward: d(a*b)/da = b and d(a*b)/db = a.
type MulOp struct{ binaryOp }

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{binaryOp{inputs: []*tensor.RawTensor{a, b}, output: output}}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		backend.Mul(outputGrad, b),
		backend.Mul(outputGrad, a),
	}
}

// DivOp represents element-wise division: output = a / b.
//
// Backward: d(a/b)/da = 1/b and d(a/b)/db = -a/b².
type DivOp struct{ binaryOp }

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{binaryOp{inputs: []*tensor.RawTensor{a, b}, output: output}}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.Div(outputGrad, b)
	// grad_b = -outputGrad * a / b²
	gradB := backend.Neg(backend.Div(backend.Mul(outputGrad, a), backend.Mul(b, b)))
	return []*tensor.RawTensor{gradA, gradB}
}

// NegOp represents element-wise negation: output = -x.
type NegOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewNegOp creates a new NegOp.
func NewNegOp(x, output *tensor.RawTensor) *NegOp {
	return &NegOp{input: x, output: output}
}

// Backward computes the input gradient for negation: grad_x = -outputGrad.
func (op *NegOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(outputGrad)}
}

// Inputs returns the input tensor [x].
func (op *NegOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor -x.
func (op *NegOp) Output() *tensor.RawTensor {
	return op.output
}
