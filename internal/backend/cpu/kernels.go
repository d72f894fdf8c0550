package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/parallel"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Numeric covers the element types supported by arithmetic kernels.
// Bool arrays are index masks, not operands.
type Numeric interface {
	~float32 | ~float64 | ~int32 | ~int64
}

func forEach[T Numeric](dst, a, b []T, f func(x, y T) T, cfg parallel.Config) {
	parallel.For(len(dst), func(i int) {
		dst[i] = f(a[i], b[i])
	}, cfg)
}

func addKernel(result, a, b *tensor.RawTensor, cfg parallel.Config) {
	switch a.DType() {
	case tensor.Float32:
		forEach(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), func(x, y float32) float32 { return x + y }, cfg)
	case tensor.Float64:
		forEach(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), func(x, y float64) float64 { return x + y }, cfg)
	case tensor.Int32:
		forEach(result.AsInt32(), a.AsInt32(), b.AsInt32(), func(x, y int32) int32 { return x + y }, cfg)
	case tensor.Int64:
		forEach(result.AsInt64(), a.AsInt64(), b.AsInt64(), func(x, y int64) int64 { return x + y }, cfg)
	default:
		panic("add: unsupported dtype")
	}
}

func subKernel(result, a, b *tensor.RawTensor, cfg parallel.Config) {
	switch a.DType() {
	case tensor.Float32:
		forEach(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), func(x, y float32) float32 { return x - y }, cfg)
	case tensor.Float64:
		forEach(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), func(x, y float64) float64 { return x - y }, cfg)
	case tensor.Int32:
		forEach(result.AsInt32(), a.AsInt32(), b.AsInt32(), func(x, y int32) int32 { return x - y }, cfg)
	case tensor.Int64:
		forEach(result.AsInt64(), a.AsInt64(), b.AsInt64(), func(x, y int64) int64 { return x - y }, cfg)
	default:
		panic("sub: unsupported dtype")
	}
}

func mulKernel(result, a, b *tensor.RawTensor, cfg parallel.Config) {
	switch a.DType() {
	case tensor.Float32:
		forEach(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), func(x, y float32) float32 { return x * y }, cfg)
	case tensor.Float64:
		forEach(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), func(x, y float64) float64 { return x * y }, cfg)
	case tensor.Int32:
		forEach(result.AsInt32(), a.AsInt32(), b.AsInt32(), func(x, y int32) int32 { return x * y }, cfg)
	case tensor.Int64:
		forEach(result.AsInt64(), a.AsInt64(), b.AsInt64(), func(x, y int64) int64 { return x * y }, cfg)
	default:
		panic("mul: unsupported dtype")
	}
}

func divKernel(result, a, b *tensor.RawTensor, cfg parallel.Config) {
	switch a.DType() {
	case tensor.Float32:
		forEach(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), func(x, y float32) float32 { return x / y }, cfg)
	case tensor.Float64:
		forEach(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), func(x, y float64) float64 { return x / y }, cfg)
	case tensor.Int32:
		forEach(result.AsInt32(), a.AsInt32(), b.AsInt32(), func(x, y int32) int32 { return x / y }, cfg)
	case tensor.Int64:
		forEach(result.AsInt64(), a.AsInt64(), b.AsInt64(), func(x, y int64) int64 { return x / y }, cfg)
	default:
		panic("div: unsupported dtype")
	}
}

func negKernel(result, x *tensor.RawTensor, cfg parallel.Config) {
	switch x.DType() {
	case tensor.Float32:
		dst, src := result.AsFloat32(), x.AsFloat32()
		parallel.For(len(dst), func(i int) { dst[i] = -src[i] }, cfg)
	case tensor.Float64:
		dst, src := result.AsFloat64(), x.AsFloat64()
		parallel.For(len(dst), func(i int) { dst[i] = -src[i] }, cfg)
	case tensor.Int32:
		dst, src := result.AsInt32(), x.AsInt32()
		parallel.For(len(dst), func(i int) { dst[i] = -src[i] }, cfg)
	case tensor.Int64:
		dst, src := result.AsInt64(), x.AsInt64()
		parallel.For(len(dst), func(i int) { dst[i] = -src[i] }, cfg)
	default:
		panic("neg: unsupported dtype")
	}
}

func addScalarKernel(result, x *tensor.RawTensor, scalar any, cfg parallel.Config) {
	switch x.DType() {
	case tensor.Float32:
		s := toFloat64(scalar)
		dst, src := result.AsFloat32(), x.AsFloat32()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] + float32(s) }, cfg)
	case tensor.Float64:
		s := toFloat64(scalar)
		dst, src := result.AsFloat64(), x.AsFloat64()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] + s }, cfg)
	case tensor.Int32:
		s := toInt64(scalar)
		dst, src := result.AsInt32(), x.AsInt32()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] + int32(s) }, cfg) //nolint:gosec // G115: caller controls range.
	case tensor.Int64:
		s := toInt64(scalar)
		dst, src := result.AsInt64(), x.AsInt64()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] + s }, cfg)
	default:
		panic("addscalar: unsupported dtype")
	}
}

func mulScalarKernel(result, x *tensor.RawTensor, scalar any, cfg parallel.Config) {
	switch x.DType() {
	case tensor.Float32:
		s := toFloat64(scalar)
		dst, src := result.AsFloat32(), x.AsFloat32()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] * float32(s) }, cfg)
	case tensor.Float64:
		s := toFloat64(scalar)
		dst, src := result.AsFloat64(), x.AsFloat64()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] * s }, cfg)
	case tensor.Int32:
		s := toInt64(scalar)
		dst, src := result.AsInt32(), x.AsInt32()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] * int32(s) }, cfg) //nolint:gosec // G115: caller controls range.
	case tensor.Int64:
		s := toInt64(scalar)
		dst, src := result.AsInt64(), x.AsInt64()
		parallel.For(len(dst), func(i int) { dst[i] = src[i] * s }, cfg)
	default:
		panic("mulscalar: unsupported dtype")
	}
}

// sumKernel is sequential: reductions are order-sensitive for floats and
// small enough here not to warrant chunked accumulation.
func sumKernel(result, x *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		var acc float32
		for _, v := range x.AsFloat32() {
			acc += v
		}
		result.AsFloat32()[0] = acc
	case tensor.Float64:
		var acc float64
		for _, v := range x.AsFloat64() {
			acc += v
		}
		result.AsFloat64()[0] = acc
	case tensor.Int32:
		var acc int32
		for _, v := range x.AsInt32() {
			acc += v
		}
		result.AsInt32()[0] = acc
	case tensor.Int64:
		var acc int64
		for _, v := range x.AsInt64() {
			acc += v
		}
		result.AsInt64()[0] = acc
	default:
		panic("sum: unsupported dtype")
	}
}

func toFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}

func toInt64(scalar any) int64 {
	switch s := scalar.(type) {
	case int:
		return int64(s)
	case int32:
		return int64(s)
	case int64:
		return s
	case float32:
		return int64(s)
	case float64:
		return int64(s)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
