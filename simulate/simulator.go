// Package simulate draws ground-truth trajectories from linear Gaussian
// state space models. The simulated states and observations serve as the
// reference that filtered and smoothed estimates are validated against.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"github.com/hammal/statespace/matutil"
	"github.com/hammal/statespace/ssm"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Numerical tolerance below which a covariance matrix counts as zero and no
// noise is drawn from it.
const zeroTol = 1e-12

// Simulate runs the model forward for the given number of steps and returns
// the hidden state trajectory (steps by m) and the observation trajectory
// (steps by p).
//
// The recurrence starts at x[0] = x0 with y[0] = Z[0] x[0], then advances
//
// x[t] = c + T x[t-1] + R eps[t]
//
// y[t] = d + Z[t] x[t] + eta[t]
//
// Process noise is only drawn when the model carries a process noise
// dimension and Q is not numerically zero; observation noise is only drawn
// when H is not numerically zero. A time-varying observation matrix must
// provide at least steps matrices.
func Simulate(model *ssm.LinearGaussian, steps int, src rand.Source) (states, obs *mat.Dense, err error) {
	if steps <= 0 {
		return nil, nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	if model.Z.Varying() && model.Z.Steps() < steps {
		return nil, nil, fmt.Errorf(
			"time-varying observation matrix covers %d steps, need %d",
			model.Z.Steps(), steps)
	}

	m := model.StateDim()
	p := model.ObservationDim()
	r := model.ShockDim()

	var shockDist, errorDist *distmv.Normal
	if r > 0 && !matutil.AllZero(model.Q, zeroTol) {
		shockDist, err = noiseDist(model.Q, src)
		if err != nil {
			return nil, nil, fmt.Errorf("process noise: %w", err)
		}
	}
	if !matutil.AllZero(model.H, zeroTol) {
		errorDist, err = noiseDist(model.H, src)
		if err != nil {
			return nil, nil, fmt.Errorf("observation noise: %w", err)
		}
	}

	states = mat.NewDense(steps, m, nil)
	obs = mat.NewDense(steps, p, nil)

	x := mat.VecDenseCopyOf(model.X0)
	y := mat.NewVecDense(p, nil)

	y.MulVec(model.Z.At(0), x)
	addNoise(y, errorDist)
	states.SetRow(0, vecData(x))
	obs.SetRow(0, vecData(y))

	innov := mat.NewVecDense(m, nil)
	for t := 1; t < steps; t++ {
		// x[t] = c + T x[t-1] + R shock
		innov.MulVec(model.T, x)
		x.AddVec(model.C, innov)
		if shockDist != nil {
			shock := mat.NewVecDense(r, shockDist.Rand(nil))
			innov.MulVec(model.R, shock)
			x.AddVec(x, innov)
		}

		// y[t] = d + Z[t] x[t] + error
		y.MulVec(model.Z.At(t), x)
		y.AddVec(model.D, y)
		addNoise(y, errorDist)

		states.SetRow(t, vecData(x))
		obs.SetRow(t, vecData(y))
	}
	return states, obs, nil
}

// noiseDist builds a zero-mean multivariate normal with the given covariance.
func noiseDist(cov *mat.Dense, src rand.Source) (*distmv.Normal, error) {
	n, _ := cov.Dims()
	dist, ok := distmv.NewNormal(make([]float64, n), matutil.Sym(cov), src)
	if !ok {
		return nil, fmt.Errorf("covariance is not positive definite")
	}
	return dist, nil
}

func addNoise(y *mat.VecDense, dist *distmv.Normal) {
	if dist == nil {
		return
	}
	draw := dist.Rand(nil)
	for i := 0; i < y.Len(); i++ {
		y.SetVec(i, y.AtVec(i)+draw[i])
	}
}

func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
