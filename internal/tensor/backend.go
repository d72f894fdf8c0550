package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for array operations.
//
// Implementations:
//   - backend/cpu: Pure Go
//   - autodiff: decorator that records operations for reverse-mode
//     differentiation (wraps any backend)
type Backend interface {
	// Element-wise binary operations (shapes must match)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise unary operations
	Neg(x *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor // total sum (scalar result)

	// Metadata
	Name() string
}
