package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float32)
	data := raw.AsFloat32()

	if len(data) != 6 {
		t.Errorf("AsFloat32 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	data[5] = -7
	if raw.AsInt64()[5] != -7 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[0] = true
	if raw.AsBool()[0] != true {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestRawTensorScalarShape(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64)
	if err != nil {
		t.Fatalf("NewRaw scalar: %v", err)
	}
	if raw.NumElements() != 1 {
		t.Errorf("scalar NumElements = %d, want 1", raw.NumElements())
	}
	if len(raw.AsFloat64()) != 1 {
		t.Errorf("scalar data length = %d, want 1", len(raw.AsFloat64()))
	}
}

func TestRawTensorInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32); err == nil {
		t.Error("NewRaw should reject zero-extent shapes")
	}
	if _, err := NewRaw(Shape{-1}, Float32); err == nil {
		t.Error("NewRaw should reject negative extents")
	}
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw := Full[float32](Shape{4}, 1.5)
	clone := raw.Clone()

	clone.AsFloat32()[0] = 99
	if raw.AsFloat32()[0] != 1.5 {
		t.Error("Clone should not share storage with the original")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("Clone shape = %v, want %v", clone.Shape(), raw.Shape())
	}
}

func TestRawTensorCopyFromKeepsAddress(t *testing.T) {
	dst := Zeros[float32](Shape{3})
	before := &dst.AsFloat32()[0]

	src := Full[float32](Shape{3}, 2)
	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}

	after := &dst.AsFloat32()[0]
	if before != after {
		t.Error("CopyFrom must write in place at a stable address")
	}
	if dst.AsFloat32()[1] != 2 {
		t.Errorf("CopyFrom contents = %v, want all 2", dst.AsFloat32())
	}
}

func TestRawTensorCopyFromMismatch(t *testing.T) {
	dst := Zeros[float32](Shape{3})

	if err := dst.CopyFrom(Zeros[float32](Shape{4})); err == nil {
		t.Error("CopyFrom should reject a shape mismatch")
	}
	if err := dst.CopyFrom(Zeros[float64](Shape{3})); err == nil {
		t.Error("CopyFrom should reject a dtype mismatch")
	}
}

func TestRawTensorEqualData(t *testing.T) {
	a := Full[int32](Shape{2, 2}, 7)
	b := Full[int32](Shape{2, 2}, 7)
	c := Full[int32](Shape{2, 2}, 8)

	if !a.EqualData(b) {
		t.Error("EqualData should be true for identical contents")
	}
	if a.EqualData(c) {
		t.Error("EqualData should be false for differing contents")
	}
}
