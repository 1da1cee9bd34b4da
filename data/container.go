package data

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Container is the sealed set of accepted observation inputs: a plain
// numeric matrix, a labeled frame, a single named series, or a deferred
// value resolved at validation time.
type Container interface {
	preprocess(nObs int, checkColumns bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error)
}

// Preprocess validates the container's shape against the expected number of
// observed series and normalizes it to a (values, index) pair. obsCoords
// names the observed states of the target model; passing it signals that a
// meaningful row-label set is expected, so containers without one report
// DiagNoTimeIndex. When checkColumns is set, labeled frames must carry a
// column for every name in obsCoords.
func Preprocess(c Container, nObs int, checkColumns bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error) {
	if c == nil {
		return nil, nil, nil, ErrNoData
	}
	return c.preprocess(nObs, checkColumns, obsCoords)
}

// Matrix is a plain numeric observation matrix with no row labels.
type Matrix struct {
	Values *mat.Dense
}

func (c Matrix) preprocess(nObs int, _ bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error) {
	rows, cols := c.Values.Dims()
	if err := validateShape(cols, nObs, false, obsCoords, nil); err != nil {
		return nil, nil, nil, err
	}
	var diags []Diagnostic
	if obsCoords != nil {
		diags = append(diags, noTimeIndexDiag())
	}
	return c.Values, RangeIndex{Start: 0, N: rows}, diags, nil
}

// Deferred is a symbolic value whose shape and contents are only known at
// validation time. Deferred values never carry row labels, so preprocessing
// always falls back to a generated range index.
type Deferred struct {
	Name    string
	Resolve func() (*mat.Dense, error)
}

func (c Deferred) preprocess(nObs int, _ bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error) {
	values, err := c.Resolve()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving deferred data %q: %w", c.Name, err)
	}
	rows, cols := values.Dims()
	if err := validateShape(cols, nObs, false, obsCoords, nil); err != nil {
		return nil, nil, nil, err
	}
	var diags []Diagnostic
	if obsCoords != nil {
		diags = append(diags, noTimeIndexDiag())
	}
	return values, RangeIndex{Start: 0, N: rows}, diags, nil
}

// Series is a single named column of observations. It is promoted to a
// one-column Frame before validation.
type Series struct {
	Name   string
	Values []float64
	Index  Index
}

func (c Series) preprocess(nObs int, checkColumns bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error) {
	name := c.Name
	if name == "" {
		name = "data"
	}
	values := mat.NewDense(len(c.Values), 1, nil)
	for i, v := range c.Values {
		values.Set(i, 0, v)
	}
	frame := Frame{
		Columns: []string{name},
		Values:  values,
		Index:   c.Index,
	}
	return frame.preprocess(nObs, checkColumns, obsCoords)
}

// Frame is a table of observations with named columns and an optional row
// index.
type Frame struct {
	Columns []string
	Values  *mat.Dense
	Index   Index
}

func (c Frame) preprocess(nObs int, checkColumns bool, obsCoords []string) (*mat.Dense, Index, []Diagnostic, error) {
	rows, cols := c.Values.Dims()
	if err := validateShape(cols, nObs, checkColumns, obsCoords, c.Columns); err != nil {
		return nil, nil, nil, err
	}

	var diags []Diagnostic
	switch ix := c.Index.(type) {
	case nil:
		if obsCoords != nil {
			diags = append(diags, noTimeIndexDiag())
		}
		return c.Values, RangeIndex{Start: 0, N: rows}, diags, nil

	case TimeIndex:
		if ix.Freq == 0 {
			diags = append(diags, noFrequencyDiag())
			ix.Freq = ix.inferFreq()
		}
		return c.Values, ix, diags, nil

	case RangeIndex:
		// A default positional index carries no time information.
		if obsCoords != nil {
			diags = append(diags, noTimeIndexDiag())
		}
		return c.Values, ix, diags, nil

	case MultiIndex:
		if obsCoords != nil {
			diags = append(diags, noTimeIndexDiag())
		}
		return nil, nil, diags, fmt.Errorf("panel data: %w", ErrUnsupportedIndex)

	case IntIndex:
		if obsCoords != nil {
			diags = append(diags, noTimeIndexDiag())
		}
		r, err := ix.toRange()
		if err != nil {
			return nil, nil, diags, err
		}
		return c.Values, r, diags, nil

	default:
		return nil, nil, nil, fmt.Errorf("index %T: %w", c.Index, ErrUnsupportedIndex)
	}
}
