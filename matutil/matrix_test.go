package matutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestEyeOffset(t *testing.T) {
	got := EyeOffset(3, 3, -1)
	want := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	})
	if !mat.Equal(got, want) {
		t.Errorf("EyeOffset(3, 3, -1) = \n%v", mat.Formatted(got))
	}

	rect := EyeOffset(2, 4, 0)
	want = mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
	})
	if !mat.Equal(rect, want) {
		t.Errorf("EyeOffset(2, 4, 0) = \n%v", mat.Formatted(rect))
	}
}

func TestFullAndOnes(t *testing.T) {
	m := Full(2, 2, 3.5)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if m.At(row, col) != 3.5 {
				t.Errorf("Full entry (%d,%d) = %v", row, col, m.At(row, col))
			}
		}
	}
	if !mat.Equal(Ones(2, 3), Full(2, 3, 1)) {
		t.Error("Ones differs from Full(..., 1)")
	}
}

func TestAllZero(t *testing.T) {
	if !AllZero(nil, 0) {
		t.Error("nil matrix should count as zero")
	}
	if !AllZero(mat.NewDense(2, 2, nil), 1e-12) {
		t.Error("zero matrix reported nonzero")
	}
	if AllZero(mat.NewDense(2, 2, []float64{0, 0, 1e-6, 0}), 1e-12) {
		t.Error("nonzero matrix reported zero")
	}
}

func TestHasNaN(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if HasNaN(m) {
		t.Error("finite matrix reported NaN")
	}
	m.Set(1, 0, math.NaN())
	if !HasNaN(m) {
		t.Error("NaN entry not detected")
	}
}

func TestSym(t *testing.T) {
	s := Sym(mat.NewDense(2, 2, []float64{2, 1, 1, 3}))
	if s.At(0, 1) != 1 || s.At(1, 0) != 1 || s.At(0, 0) != 2 || s.At(1, 1) != 3 {
		t.Errorf("Sym = \n%v", mat.Formatted(s))
	}
}
