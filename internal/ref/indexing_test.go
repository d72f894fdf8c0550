package ref

import (
	"testing"

	"github.com/lumen-ml/lumen/internal/tensor"
)

func matrix(t *testing.T) *tensor.RawTensor {
	t.Helper()
	// [[0 1 2] [3 4 5] [6 7 8] [9 10 11]]
	raw, err := tensor.FromSlice([]float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, tensor.Shape{4, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return raw
}

func TestGatherAt(t *testing.T) {
	src := matrix(t)

	row, err := Gather(src, At(1))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !row.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("row shape = %v, want [3]", row.Shape())
	}
	want := []float32{3, 4, 5}
	for i, v := range row.AsFloat32() {
		if v != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestGatherAtScalar(t *testing.T) {
	src := matrix(t)

	elem, err := Gather(src, At(2, 1))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if elem.NumElements() != 1 {
		t.Fatalf("element count = %d, want 1", elem.NumElements())
	}
	if elem.AsFloat32()[0] != 7 {
		t.Errorf("element = %v, want 7", elem.AsFloat32()[0])
	}
}

func TestGatherAtNegative(t *testing.T) {
	src := matrix(t)

	row, err := Gather(src, At(-1))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if row.AsFloat32()[0] != 9 {
		t.Errorf("row[0] = %v, want 9", row.AsFloat32()[0])
	}
}

func TestGatherAtOutOfBounds(t *testing.T) {
	src := matrix(t)
	if _, err := Gather(src, At(4)); err == nil {
		t.Error("basic integer indexing must validate bounds")
	}
	if _, err := Gather(src, At(-5)); err == nil {
		t.Error("basic integer indexing must validate negative bounds")
	}
}

func TestGatherAll(t *testing.T) {
	src := matrix(t)
	out, err := Gather(src, All())
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(src.Shape()) {
		t.Errorf("shape = %v, want %v", out.Shape(), src.Shape())
	}
	if !out.EqualData(src) {
		t.Error("All() gather should copy the full contents")
	}
	out.AsFloat32()[0] = 99
	if src.AsFloat32()[0] != 0 {
		t.Error("gather must copy, not alias")
	}
}

func TestGatherSpan(t *testing.T) {
	src := matrix(t)
	out, err := Gather(src, Span(1, 3, 1))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", out.Shape())
	}
	if out.AsFloat32()[0] != 3 || out.AsFloat32()[5] != 8 {
		t.Errorf("span contents = %v", out.AsFloat32())
	}
}

func TestGatherSpanClamps(t *testing.T) {
	src := matrix(t)
	// Stop past the extent clamps, like slice indexing.
	out, err := Gather(src, Span(2, 100, 1))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", out.Shape())
	}
}

func TestGatherSpanStep(t *testing.T) {
	src := matrix(t)
	out, err := Gather(src, Span(0, 4, 2))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", out.Shape())
	}
	if out.AsFloat32()[0] != 0 || out.AsFloat32()[3] != 6 {
		t.Errorf("step contents = %v", out.AsFloat32())
	}
}

func TestGatherSpanEmpty(t *testing.T) {
	src := matrix(t)
	// Shapes carry no zero extents, so an empty selection is an error.
	if _, err := Gather(src, Span(2, 2, 1)); err == nil {
		t.Error("empty span must be rejected")
	}
}

func TestGatherTakeSaturates(t *testing.T) {
	src := matrix(t)
	// Advanced indexing clamps out-of-bounds entries to the edges.
	out, err := Gather(src, Take([]int32{0, 2, 100, -5}))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{4, 3}) {
		t.Fatalf("shape = %v, want [4 3]", out.Shape())
	}
	data := out.AsFloat32()
	if data[0] != 0 || data[3] != 6 {
		t.Errorf("take rows 0,2 wrong: %v", data)
	}
	if data[6] != 9 { // 100 clamps to last row
		t.Errorf("take high OOB = %v, want 9", data[6])
	}
	if data[9] != 0 { // -5 clamps to first row
		t.Errorf("take low OOB = %v, want 0", data[9])
	}
}

func TestGatherMask(t *testing.T) {
	src := matrix(t)
	out, err := Gather(src, Mask([]bool{true, false, false, true}))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", out.Shape())
	}
	if out.AsFloat32()[3] != 9 {
		t.Errorf("mask contents = %v", out.AsFloat32())
	}
}

func TestGatherMaskLengthMismatch(t *testing.T) {
	src := matrix(t)
	if _, err := Gather(src, Mask([]bool{true, false})); err == nil {
		t.Error("mask length must equal the axis extent")
	}
}

func TestGatherMaskAllFalse(t *testing.T) {
	src := matrix(t)
	// Shapes carry no zero extents, so an empty selection is an error.
	if _, err := Gather(src, Mask([]bool{false, false, false, false})); err == nil {
		t.Error("all-false mask must be rejected")
	}
}

func TestGatherTuple(t *testing.T) {
	src := matrix(t)
	out, err := Gather(src, Tuple(Span(0, 2, 1), At(2)))
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", out.Shape())
	}
	if out.AsFloat32()[0] != 2 || out.AsFloat32()[1] != 5 {
		t.Errorf("tuple contents = %v", out.AsFloat32())
	}
}

func TestGatherTooManyParts(t *testing.T) {
	src := matrix(t)
	if _, err := Gather(src, Tuple(At(0), At(0), At(0))); err == nil {
		t.Error("indexer with more parts than axes must fail")
	}
}

func TestScatterRow(t *testing.T) {
	dst := matrix(t)
	row, _ := tensor.FromSlice([]float32{70, 71, 72}, tensor.Shape{3})

	if err := Scatter(dst, At(2), row); err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	data := dst.AsFloat32()
	if data[6] != 70 || data[7] != 71 || data[8] != 72 {
		t.Errorf("row 2 after scatter = %v", data[6:9])
	}
	// Neighbors untouched.
	if data[5] != 5 || data[9] != 9 {
		t.Error("scatter must only touch the addressed region")
	}
}

func TestScatterShapeMismatch(t *testing.T) {
	dst := matrix(t)
	bad, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	if err := Scatter(dst, At(0), bad); err == nil {
		t.Error("scatter value shape must match the addressed region")
	}
}

func TestScatterDTypeMismatch(t *testing.T) {
	dst := matrix(t)
	bad := tensor.Zeros[float64](tensor.Shape{3})
	if err := Scatter(dst, At(0), bad); err == nil {
		t.Error("scatter must reject a dtype mismatch")
	}
}

func TestScatterGatherRoundTrip(t *testing.T) {
	dst := matrix(t)
	idx := Tuple(Take([]int32{1, 3}), Span(0, 2, 1))

	region, err := Gather(dst, idx)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for i := range region.AsFloat32() {
		region.AsFloat32()[i] = -1
	}
	if err := Scatter(dst, idx, region); err != nil {
		t.Fatalf("Scatter: %v", err)
	}

	back, _ := Gather(dst, idx)
	if !back.EqualData(region) {
		t.Error("gather after scatter should see the written values")
	}
}
