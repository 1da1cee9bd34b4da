package data

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MissingFill is the default sentinel substituted for NaN entries so that
// downstream computation can treat missing data uniformly.
const MissingFill = -9999.0

// Mask records which entries of an observation matrix were missing in the
// source data.
type Mask struct {
	rows, cols int
	missing    []bool
	n          int
}

// NewMask returns an all-false mask with the given dimensions.
func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, missing: make([]bool, rows*cols)}
}

// Dims returns the dimensions of the mask.
func (m *Mask) Dims() (rows, cols int) { return m.rows, m.cols }

// At reports whether the entry at (i, j) was missing.
func (m *Mask) At(i, j int) bool { return m.missing[i*m.cols+j] }

// Set marks the entry at (i, j).
func (m *Mask) Set(i, j int, missing bool) {
	if m.missing[i*m.cols+j] != missing {
		if missing {
			m.n++
		} else {
			m.n--
		}
		m.missing[i*m.cols+j] = missing
	}
}

// Any reports whether any entry is masked.
func (m *Mask) Any() bool { return m.n > 0 }

// NumMissing returns the number of masked entries.
func (m *Mask) NumMissing() int { return m.n }

// MissingRows returns, for row t, the column positions that are masked.
func (m *Mask) MissingRows(t int) []int {
	var cols []int
	for j := 0; j < m.cols; j++ {
		if m.At(t, j) {
			cols = append(cols, j)
		}
	}
	return cols
}

// MaskMissing replaces NaN entries of values with the fill sentinel and
// records their positions in a Mask. The input is not modified.
//
// When any value was masked, the sentinel must not also occur among the
// finite entries, since the filtering stage could no longer tell a missing
// observation from a real one; that collision is an error. The collision is
// only checked when masking actually triggers. A DiagImputation diagnostic
// accompanies any non-empty mask.
func MaskMissing(values *mat.Dense, fill float64) (*mat.Dense, *Mask, []Diagnostic, error) {
	rows, cols := values.Dims()
	filled := mat.DenseCopyOf(values)
	mask := NewMask(rows, cols)

	collision := false
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := values.At(i, j)
			switch {
			case math.IsNaN(v):
				mask.Set(i, j, true)
				filled.Set(i, j, fill)
			case v == fill:
				collision = true
			}
		}
	}

	if !mask.Any() {
		return filled, mask, nil, nil
	}
	if collision {
		return nil, nil, nil, fmt.Errorf(
			"data contains the value %v, which is used as the missing value marker: %w",
			fill, ErrSentinelCollision)
	}
	return filled, mask, []Diagnostic{imputationDiag()}, nil
}
