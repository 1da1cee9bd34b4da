// Package ssm describes discrete-time linear Gaussian state space models.
package ssm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearGaussian struct represents the system
//
// x[t] = c + T x[t-1] + R eps[t],  eps[t] ~ N(0, Q)
//
// y[t] = d + Z[t] x[t] + eta[t],   eta[t] ~ N(0, H)
//
// with hidden state x of size m, observation y of size p and shock eps of
// size r. R and Q may be nil, in which case the model carries no process
// noise dimension.
type LinearGaussian struct {
	// Initial state mean and covariance
	X0 *mat.VecDense
	P0 *mat.Dense
	// State and observation intercepts
	C *mat.VecDense
	D *mat.VecDense
	// State transition matrix
	T *mat.Dense
	// Observation matrix, fixed or per time step
	Z Observation
	// Shock selection and covariance
	R *mat.Dense
	Q *mat.Dense
	// Observation noise covariance
	H *mat.Dense
}

// Observation holds the observation matrix Z, either a single (p by m)
// matrix or one matrix per time step.
type Observation struct {
	fixed   *mat.Dense
	perStep []*mat.Dense
}

// FixedObservation returns a time-invariant observation matrix.
func FixedObservation(z *mat.Dense) Observation {
	return Observation{fixed: z}
}

// VaryingObservation returns a per-step observation matrix.
func VaryingObservation(zs []*mat.Dense) Observation {
	return Observation{perStep: zs}
}

// At returns the observation matrix for time step t.
func (o Observation) At(t int) *mat.Dense {
	if o.fixed != nil {
		return o.fixed
	}
	return o.perStep[t]
}

// Varying reports whether the observation matrix changes over time.
func (o Observation) Varying() bool { return o.fixed == nil }

// Steps returns the number of per-step matrices, or 0 for a fixed matrix.
func (o Observation) Steps() int { return len(o.perStep) }

// Dims returns the dimensions of the observation matrix.
func (o Observation) Dims() (p, m int) {
	return o.At(0).Dims()
}

// New creates a LinearGaussian model after checking that all parameter
// dimensions match. c and d default to zero vectors when nil. R and Q must
// either both be set or both be nil.
func New(x0 *mat.VecDense, p0 *mat.Dense, c, d *mat.VecDense, t *mat.Dense, z Observation, r, q, h *mat.Dense) (*LinearGaussian, error) {
	m := x0.Len()
	p, mz := z.Dims()

	if rows, cols := t.Dims(); rows != m || cols != m {
		return nil, fmt.Errorf(
			"transition matrix is %dx%d, initial state has length %d", rows, cols, m)
	}
	if rows, cols := p0.Dims(); rows != m || cols != m {
		return nil, fmt.Errorf(
			"initial covariance is %dx%d, expected %dx%d", rows, cols, m, m)
	}
	if mz != m {
		return nil, fmt.Errorf(
			"observation matrix has %d columns, state has length %d", mz, m)
	}
	if rows, cols := h.Dims(); rows != p || cols != p {
		return nil, fmt.Errorf(
			"observation noise covariance is %dx%d, expected %dx%d", rows, cols, p, p)
	}
	if (r == nil) != (q == nil) {
		return nil, fmt.Errorf("shock selection and covariance must be set together")
	}
	if r != nil {
		rm, rr := r.Dims()
		if rm != m {
			return nil, fmt.Errorf(
				"shock selection matrix has %d rows, state has length %d", rm, m)
		}
		if rows, cols := q.Dims(); rows != rr || cols != rr {
			return nil, fmt.Errorf(
				"shock covariance is %dx%d, expected %dx%d", rows, cols, rr, rr)
		}
	}

	if c == nil {
		c = mat.NewVecDense(m, nil)
	} else if c.Len() != m {
		return nil, fmt.Errorf(
			"state intercept has length %d, state has length %d", c.Len(), m)
	}
	if d == nil {
		d = mat.NewVecDense(p, nil)
	} else if d.Len() != p {
		return nil, fmt.Errorf(
			"observation intercept has length %d, observation has length %d", d.Len(), p)
	}

	return &LinearGaussian{
		X0: x0, P0: p0, C: c, D: d, T: t, Z: z, R: r, Q: q, H: h,
	}, nil
}

// StateDim returns the hidden state dimension m.
func (model *LinearGaussian) StateDim() int {
	return model.X0.Len()
}

// ObservationDim returns the observed dimension p.
func (model *LinearGaussian) ObservationDim() int {
	p, _ := model.Z.Dims()
	return p
}

// ShockDim returns the process noise dimension r, 0 when the model carries
// no process noise.
func (model *LinearGaussian) ShockDim() int {
	if model.R == nil {
		return 0
	}
	_, r := model.R.Dims()
	return r
}

// NewLocalLinearTrend returns the classic local linear trend model with a
// single observed series: a random-walk level with a random-walk slope,
//
// x[t] = [[1, 1], [0, 1]] x[t-1] + eps[t]
//
// y[t] = [1, 0] x[t] + eta[t]
//
// with level, trend and observation noise variances as given. The initial
// state is zero with a diffuse covariance.
func NewLocalLinearTrend(sigmaLevel, sigmaTrend, sigmaObs float64) *LinearGaussian {
	x0 := mat.NewVecDense(2, nil)
	p0 := mat.NewDense(2, 2, []float64{1e6, 0, 0, 1e6})
	t := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	z := FixedObservation(mat.NewDense(1, 2, []float64{1, 0}))
	r := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	q := mat.NewDense(2, 2, []float64{sigmaLevel, 0, 0, sigmaTrend})
	h := mat.NewDense(1, 1, []float64{sigmaObs})

	model, err := New(x0, p0, nil, nil, t, z, r, q, h)
	if err != nil {
		panic(err)
	}
	return model
}
