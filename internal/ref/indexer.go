package ref

import (
	"fmt"
	"strings"
)

// Indexer addresses a region of an array: an integer, a slice, the full
// extent, a tuple of those, or an integer/boolean array (advanced
// indexing). Advanced integer indices saturate at the array bounds instead
// of raising, matching compiled-execution semantics where error signaling
// is expensive.
type Indexer interface {
	fmt.Stringer
	isIndexer()
}

type intIndex int

func (intIndex) isIndexer() {}

func (i intIndex) String() string { return fmt.Sprintf("%d", int(i)) }

type spanIndex struct {
	start, stop, step int
}

func (spanIndex) isIndexer() {}

func (s spanIndex) String() string {
	if s.step == 1 {
		return fmt.Sprintf("%d:%d", s.start, s.stop)
	}
	return fmt.Sprintf("%d:%d:%d", s.start, s.stop, s.step)
}

type allIndex struct{}

func (allIndex) isIndexer() {}

func (allIndex) String() string { return ":" }

type takeIndex []int32

func (takeIndex) isIndexer() {}

func (t takeIndex) String() string { return fmt.Sprintf("take%v", []int32(t)) }

type maskIndex []bool

func (maskIndex) isIndexer() {}

func (m maskIndex) String() string { return fmt.Sprintf("mask(len=%d)", len(m)) }

type tupleIndex []Indexer

func (tupleIndex) isIndexer() {}

func (t tupleIndex) String() string {
	parts := make([]string, len(t))
	for i, p := range t {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// At indexes one position per leading axis. Each integer drops its axis;
// At(1) on shape [3,4] addresses the row of shape [4]. Negative indices
// wrap from the end.
func At(indices ...int) Indexer {
	parts := make(tupleIndex, len(indices))
	for i, idx := range indices {
		parts[i] = intIndex(idx)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts
}

// Span selects [start, stop) with the given step (>= 1) along the leading
// axis. Bounds are clamped to the axis extent.
//
// A span that selects no elements is an error: shapes carry no zero
// extents, so an empty result has no representation.
func Span(start, stop, step int) Indexer {
	return spanIndex{start: start, stop: stop, step: step}
}

// All selects the full extent.
func All() Indexer {
	return allIndex{}
}

// Tuple combines per-axis indexers, leftmost axis first.
func Tuple(parts ...Indexer) Indexer {
	return tupleIndex(parts)
}

// Take gathers along the leading axis by integer array. Out-of-bounds
// entries are clamped to the valid range, never an error.
func Take(indices []int32) Indexer {
	return takeIndex(append([]int32(nil), indices...))
}

// Mask selects along the leading axis by boolean array. The mask length
// must equal the axis extent, and at least one entry must be true: shapes
// carry no zero extents, so an empty result has no representation.
func Mask(mask []bool) Indexer {
	return maskIndex(append([]bool(nil), mask...))
}
