package data

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMaskMissingClean(t *testing.T) {
	values := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	filled, mask, diags, err := MaskMissing(values, MissingFill)
	require.NoError(t, err)
	assert.True(t, mat.Equal(values, filled))
	assert.False(t, mask.Any())
	assert.Empty(t, diags)
}

func TestMaskMissingRoundTrip(t *testing.T) {
	values := mat.NewDense(3, 2, []float64{1, math.NaN(), 3, 4, math.NaN(), 6})
	filled, mask, diags, err := MaskMissing(values, MissingFill)
	require.NoError(t, err)

	assert.Equal(t, 2, mask.NumMissing())
	assert.True(t, HasDiagnostic(diags, DiagImputation))

	// Re-inserting NaN at masked positions reproduces the input.
	rows, cols := filled.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			orig := values.At(i, j)
			if mask.At(i, j) {
				assert.Equal(t, MissingFill, filled.At(i, j))
				assert.True(t, math.IsNaN(orig))
			} else {
				assert.Equal(t, orig, filled.At(i, j))
			}
		}
	}
}

func TestMaskMissingDoesNotModifyInput(t *testing.T) {
	values := mat.NewDense(2, 1, []float64{math.NaN(), 5})
	_, _, _, err := MaskMissing(values, MissingFill)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(values.At(0, 0)))
}

func TestMaskMissingSentinelCollision(t *testing.T) {
	// Collision plus actual missing values is ambiguous.
	values := mat.NewDense(2, 1, []float64{-9999.0, math.NaN()})
	_, _, _, err := MaskMissing(values, MissingFill)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSentinelCollision))
}

func TestMaskMissingSentinelWithoutNaN(t *testing.T) {
	// The collision check only triggers when masking does.
	values := mat.NewDense(2, 1, []float64{-9999.0, 5})
	filled, mask, _, err := MaskMissing(values, MissingFill)
	require.NoError(t, err)
	assert.False(t, mask.Any())
	assert.Equal(t, -9999.0, filled.At(0, 0))
}

func TestMaskMissingCustomFill(t *testing.T) {
	values := mat.NewDense(2, 1, []float64{math.NaN(), 5})
	filled, mask, _, err := MaskMissing(values, -1.0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, filled.At(0, 0))
	assert.True(t, mask.At(0, 0))

	// The custom sentinel collides with real data.
	values = mat.NewDense(2, 1, []float64{math.NaN(), -1.0})
	_, _, _, err = MaskMissing(values, -1.0)
	assert.True(t, errors.Is(err, ErrSentinelCollision))
}

func TestMaskMissingRows(t *testing.T) {
	values := mat.NewDense(2, 3, []float64{1, math.NaN(), math.NaN(), 4, 5, 6})
	_, mask, _, err := MaskMissing(values, MissingFill)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, mask.MissingRows(0))
	assert.Nil(t, mask.MissingRows(1))
}
