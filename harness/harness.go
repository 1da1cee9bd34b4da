// Package harness provides shared scaffolding for validating filter and
// smoother implementations: canonical test systems, missing-value
// injection, a fixed river-height data resource and output-shape oracles.
package harness

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hammal/statespace/matutil"
	"github.com/hammal/statespace/ssm"
	"gonum.org/v1/gonum/mat"
)

// MakeTestInputs builds the canonical test system with p observed series,
// m hidden states, r shocks and n time steps, together with a deterministic
// observation matrix whose entries count up from zero. The transition
// matrix averages the state into its first component and shifts the rest
// down one position. When hZero is set, the observation noise covariance is
// the zero matrix instead of the identity.
func MakeTestInputs(p, m, r, n int, hZero bool) (*ssm.LinearGaussian, *mat.Dense, error) {
	values := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			values.Set(i, j, float64(i*p+j))
		}
	}

	x0 := mat.NewVecDense(m, nil)
	p0 := matutil.Eye(m)

	t := matutil.EyeOffset(m, m, -1)
	for col := 0; col < m; col++ {
		t.Set(0, col, 1/float64(m))
	}

	z := ssm.FixedObservation(matutil.EyeOffset(p, m, 0))
	sel := matutil.EyeOffset(m, r, 0)
	q := matutil.Eye(r)

	h := matutil.Eye(p)
	if hZero {
		h = mat.NewDense(p, p, nil)
	}

	model, err := ssm.New(x0, p0, nil, nil, t, z, sel, q, h)
	if err != nil {
		return nil, nil, err
	}
	return model, values, nil
}

// AddMissingValues sets nMissing randomly chosen rows of values to NaN,
// in place, and returns the chosen row positions.
func AddMissingValues(values *mat.Dense, nMissing int, rng *rand.Rand) []int {
	n, p := values.Dims()
	rows := rng.Perm(n)[:nMissing]
	for _, row := range rows {
		for j := 0; j < p; j++ {
			values.Set(row, j, math.NaN())
		}
	}
	return rows
}

// ExpectedShape returns the shape a named filter output should have for a
// system with p observed series, m states, r shocks and n steps. The empty
// shape marks a scalar.
func ExpectedShape(name string, p, m, r, n int) ([]int, error) {
	switch name {
	case "log_likelihood":
		return nil, nil
	case "ll_obs":
		return []int{n}, nil
	}
	switch name {
	case "predicted_states", "filtered_states", "smoothed_states":
		return []int{n, m}, nil
	case "predicted_covs", "filtered_covs", "smoothed_covs":
		return []int{n, m, m}, nil
	}
	return nil, fmt.Errorf("unknown output %q", name)
}
