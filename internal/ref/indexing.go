package ref

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// selection is the resolved form of an indexer against a concrete shape:
// one index list per axis, plus whether the axis survives in the result.
type selection struct {
	axes []axisSel
}

type axisSel struct {
	indices []int
	keep    bool
}

func (s selection) outShape() tensor.Shape {
	var out tensor.Shape
	for _, a := range s.axes {
		if a.keep {
			out = append(out, len(a.indices))
		}
	}
	return out
}

func (s selection) count() int {
	n := 1
	for _, a := range s.axes {
		n *= len(a.indices)
	}
	return n
}

// resolve normalizes an indexer into per-axis index lists. Basic integer
// and slice indexing validate bounds; advanced (array) indexing saturates.
func resolve(idx Indexer, shape tensor.Shape) (selection, error) {
	var parts []Indexer
	switch v := idx.(type) {
	case tupleIndex:
		parts = v
	default:
		parts = []Indexer{idx}
	}

	// A lone full-extent marker selects everything regardless of rank.
	if len(parts) == 1 {
		if _, ok := parts[0].(allIndex); ok {
			parts = nil
		}
	}

	if len(parts) > len(shape) {
		return selection{}, fmt.Errorf("indexer %s has %d parts for %dD array", idx, len(parts), len(shape))
	}

	sel := selection{axes: make([]axisSel, len(shape))}
	for d := range shape {
		n := shape[d]
		if d >= len(parts) {
			sel.axes[d] = fullAxis(n)
			continue
		}
		axis, err := resolveAxis(parts[d], n)
		if err != nil {
			return selection{}, fmt.Errorf("axis %d: %w", d, err)
		}
		sel.axes[d] = axis
	}
	return sel, nil
}

func fullAxis(n int) axisSel {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return axisSel{indices: indices, keep: true}
}

func resolveAxis(part Indexer, n int) (axisSel, error) {
	switch v := part.(type) {
	case intIndex:
		i := int(v)
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return axisSel{}, fmt.Errorf("index %d out of bounds for extent %d", int(v), n)
		}
		return axisSel{indices: []int{i}, keep: false}, nil

	case spanIndex:
		if v.step < 1 {
			return axisSel{}, fmt.Errorf("span step must be >= 1, got %d", v.step)
		}
		start, stop := v.start, v.stop
		if start < 0 {
			start += n
		}
		if stop < 0 {
			stop += n
		}
		start = clamp(start, 0, n)
		stop = clamp(stop, 0, n)
		var indices []int
		for i := start; i < stop; i += v.step {
			indices = append(indices, i)
		}
		if len(indices) == 0 {
			return axisSel{}, fmt.Errorf("span %s selects no elements", v)
		}
		return axisSel{indices: indices, keep: true}, nil

	case allIndex:
		return fullAxis(n), nil

	case takeIndex:
		if len(v) == 0 {
			return axisSel{}, fmt.Errorf("take selects no elements")
		}
		// Saturating gather: out-of-bounds indices clamp to the edges.
		indices := make([]int, len(v))
		for i, raw := range v {
			indices[i] = clamp(int(raw), 0, n-1)
		}
		return axisSel{indices: indices, keep: true}, nil

	case maskIndex:
		if len(v) != n {
			return axisSel{}, fmt.Errorf("mask length %d does not match extent %d", len(v), n)
		}
		var indices []int
		for i, b := range v {
			if b {
				indices = append(indices, i)
			}
		}
		if len(indices) == 0 {
			return axisSel{}, fmt.Errorf("mask selects no elements")
		}
		return axisSel{indices: indices, keep: true}, nil

	case tupleIndex:
		return axisSel{}, fmt.Errorf("nested tuples are not supported")

	default:
		return axisSel{}, fmt.Errorf("unsupported indexer %T", part)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Gather returns a copy of the region of src addressed by idx.
func Gather(src *tensor.RawTensor, idx Indexer) (*tensor.RawTensor, error) {
	sel, err := resolve(idx, src.Shape())
	if err != nil {
		return nil, err
	}

	out, err := tensor.NewRaw(sel.outShape(), src.DType())
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}

	elemSize := src.DType().Size()
	srcBytes, dstBytes := src.Bytes(), out.Bytes()
	strides := src.Strides()
	pos := 0
	forEachOffset(sel, strides, func(offset int) {
		copy(dstBytes[pos*elemSize:(pos+1)*elemSize], srcBytes[offset*elemSize:(offset+1)*elemSize])
		pos++
	})
	return out, nil
}

// Scatter writes value into the region of dst addressed by idx, in place.
// The value's shape must match the addressed region.
func Scatter(dst *tensor.RawTensor, idx Indexer, value *tensor.RawTensor) error {
	sel, err := resolve(idx, dst.Shape())
	if err != nil {
		return err
	}
	if value.DType() != dst.DType() {
		return fmt.Errorf("scatter: dtype mismatch: %s vs %s", value.DType(), dst.DType())
	}
	if !value.Shape().Equal(sel.outShape()) {
		return fmt.Errorf("scatter: value shape %v does not match region shape %v", value.Shape(), sel.outShape())
	}

	elemSize := dst.DType().Size()
	srcBytes, dstBytes := value.Bytes(), dst.Bytes()
	strides := dst.Strides()
	pos := 0
	forEachOffset(sel, strides, func(offset int) {
		copy(dstBytes[offset*elemSize:(offset+1)*elemSize], srcBytes[pos*elemSize:(pos+1)*elemSize])
		pos++
	})
	return nil
}

// forEachOffset enumerates the flat element offsets of a selection in
// row-major order of the selection's own index lists.
func forEachOffset(sel selection, strides []int, visit func(offset int)) {
	ndim := len(sel.axes)
	if ndim == 0 {
		visit(0) // scalar
		return
	}

	counters := make([]int, ndim)
	for {
		offset := 0
		for d, a := range sel.axes {
			offset += a.indices[counters[d]] * strides[d]
		}
		visit(offset)

		// Odometer increment, last axis fastest.
		d := ndim - 1
		for d >= 0 {
			counters[d]++
			if counters[d] < len(sel.axes[d].indices) {
				break
			}
			counters[d] = 0
			d--
		}
		if d < 0 {
			return
		}
	}
}
