package tensor

import (
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(2,3) = %v, want nil", err)
	}
	if err := (Shape{}).Validate(); err != nil {
		t.Errorf("Validate(scalar) = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate should reject zero extents")
	}
	if err := (Shape{-2}).Validate(); err == nil {
		t.Error("Validate should reject negative extents")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("Equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("Unequal shapes reported equal")
	}
	if (Shape{2}).Equal(Shape{2, 1}) {
		t.Error("Different ranks reported equal")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	if len(strides) != len(want) {
		t.Fatalf("strides = %v, want %v", strides, want)
	}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestShapeCloneIndependent(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone should not alias the original")
	}
}
