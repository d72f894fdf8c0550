package cpu

import (
	"testing"

	"github.com/lumen-ml/lumen/internal/tensor"
)

func TestAdd(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	b, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3})

	result := backend.Add(a, b)
	want := []float32{11, 22, 33}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("Add[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAddDoesNotMutateInputs(t *testing.T) {
	backend := New()
	a := tensor.Full[float32](tensor.Shape{2}, 1)
	b := tensor.Full[float32](tensor.Shape{2}, 2)

	backend.Add(a, b)
	if a.AsFloat32()[0] != 1 || b.AsFloat32()[0] != 2 {
		t.Error("Add must allocate a fresh result, not mutate inputs")
	}
}

func TestSub(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]int64{5, 5}, tensor.Shape{2})
	b, _ := tensor.FromSlice([]int64{2, 7}, tensor.Shape{2})

	result := backend.Sub(a, b)
	want := []int64{3, -2}
	for i, v := range result.AsInt64() {
		if v != want[i] {
			t.Errorf("Sub[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMul(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float64{1.5, -2}, tensor.Shape{2})
	b, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2})

	result := backend.Mul(a, b)
	want := []float64{3, -6}
	for i, v := range result.AsFloat64() {
		if v != want[i] {
			t.Errorf("Mul[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestDiv(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float32{6, 9}, tensor.Shape{2})
	b, _ := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2})

	result := backend.Div(a, b)
	want := []float32{3, 3}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("Div[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestNeg(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]int32{1, -2, 0}, tensor.Shape{3})

	result := backend.Neg(a)
	want := []int32{-1, 2, 0}
	for i, v := range result.AsInt32() {
		if v != want[i] {
			t.Errorf("Neg[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAddScalar(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})

	result := backend.AddScalar(a, float32(10))
	want := []float32{11, 12}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("AddScalar[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMulScalar(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float64{1, -2}, tensor.Shape{2})

	result := backend.MulScalar(a, float64(3))
	want := []float64{3, -6}
	for i, v := range result.AsFloat64() {
		if v != want[i] {
			t.Errorf("MulScalar[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestSum(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Sum(a)
	if result.NumElements() != 1 {
		t.Fatalf("Sum result has %d elements, want 1", result.NumElements())
	}
	if result.AsFloat32()[0] != 10 {
		t.Errorf("Sum = %v, want 10", result.AsFloat32()[0])
	}
}

func TestBinaryShapeMismatchPanics(t *testing.T) {
	backend := New()
	defer func() {
		if recover() == nil {
			t.Error("Add with mismatched shapes should panic")
		}
	}()
	backend.Add(tensor.Zeros[float32](tensor.Shape{2}), tensor.Zeros[float32](tensor.Shape{3}))
}

func TestBinaryDTypeMismatchPanics(t *testing.T) {
	backend := New()
	defer func() {
		if recover() == nil {
			t.Error("Add with mismatched dtypes should panic")
		}
	}()
	backend.Add(tensor.Zeros[float32](tensor.Shape{2}), tensor.Zeros[float64](tensor.Shape{2}))
}
