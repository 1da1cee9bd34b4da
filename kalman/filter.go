// Package kalman implements the Kalman filter and the Rauch–Tung–Striebel
// smoother for discrete-time linear Gaussian state space models. Missing
// observations, identified by a mask recorded at data ingestion, are
// marginalized out of the update step so the affected hidden states are
// estimated from the model dynamics alone.
package kalman

import (
	"fmt"

	"github.com/hammal/statespace/data"
	"github.com/hammal/statespace/ssm"
	"gonum.org/v1/gonum/mat"
)

const log2Pi = 1.8378770664093453

// Result holds the trajectories produced by a filter run. States are stored
// row-wise (n by m); covariances as one (m by m) matrix per step. Predicted
// quantities are the one-step-ahead estimates x_{t|t-1}, filtered quantities
// condition on observations up to t, and smoothed quantities, present only
// after a Smooth run, condition on the full observation set.
type Result struct {
	PredictedStates *mat.Dense
	FilteredStates  *mat.Dense
	SmoothedStates  *mat.Dense

	PredictedCovs []*mat.Dense
	FilteredCovs  []*mat.Dense
	SmoothedCovs  []*mat.Dense

	// Per-observation log likelihood contributions. Fully missing time
	// steps contribute zero.
	LogLikeObs []float64
}

// LogLike returns the total log likelihood of the observed data.
func (r *Result) LogLike() float64 {
	var sum float64
	for _, ll := range r.LogLikeObs {
		sum += ll
	}
	return sum
}

// Filter runs Kalman recursions over a fixed observation matrix.
type Filter struct {
	model *ssm.LinearGaussian
}

// NewFilter returns a Filter for the given model.
func NewFilter(model *ssm.LinearGaussian) *Filter {
	return &Filter{model: model}
}

// Run performs the forward pass over the observations y (n by p). mask may
// be nil when no values are missing; otherwise it must have the same shape
// as y and marks entries to marginalize.
func (f *Filter) Run(y *mat.Dense, mask *data.Mask) (*Result, error) {
	n, p := y.Dims()
	if p != f.model.ObservationDim() {
		return nil, fmt.Errorf(
			"observations have %d columns, model observes %d series",
			p, f.model.ObservationDim())
	}
	if mask != nil {
		mr, mc := mask.Dims()
		if mr != n || mc != p {
			return nil, fmt.Errorf(
				"mask is %dx%d, observations are %dx%d", mr, mc, n, p)
		}
	}
	if f.model.Z.Varying() && f.model.Z.Steps() < n {
		return nil, fmt.Errorf(
			"time-varying observation matrix covers %d steps, need %d",
			f.model.Z.Steps(), n)
	}

	m := f.model.StateDim()
	res := &Result{
		PredictedStates: mat.NewDense(n, m, nil),
		FilteredStates:  mat.NewDense(n, m, nil),
		PredictedCovs:   make([]*mat.Dense, n),
		FilteredCovs:    make([]*mat.Dense, n),
		LogLikeObs:      make([]float64, n),
	}

	// RQR' is constant over the recursion.
	rqr := mat.NewDense(m, m, nil)
	if f.model.ShockDim() > 0 {
		rqr.Product(f.model.R, f.model.Q, f.model.R.T())
	}

	a := mat.VecDenseCopyOf(f.model.X0)
	P := mat.DenseCopyOf(f.model.P0)

	for t := 0; t < n; t++ {
		res.PredictedStates.SetRow(t, rowOf(a))
		res.PredictedCovs[t] = mat.DenseCopyOf(P)

		observed := observedColumns(mask, t, p)
		if len(observed) == 0 {
			// Nothing observed: the a priori estimate stands.
			res.FilteredStates.SetRow(t, rowOf(a))
			res.FilteredCovs[t] = mat.DenseCopyOf(P)
		} else {
			ll, err := f.update(t, y, observed, a, P)
			if err != nil {
				return nil, fmt.Errorf("update at step %d: %w", t, err)
			}
			res.LogLikeObs[t] = ll
			res.FilteredStates.SetRow(t, rowOf(a))
			res.FilteredCovs[t] = mat.DenseCopyOf(P)
		}

		if t < n-1 {
			f.predict(a, P, rqr)
		}
	}
	return res, nil
}

// Smooth performs the forward pass followed by the Rauch–Tung–Striebel
// backward pass, filling the smoothed trajectories of the result.
func (f *Filter) Smooth(y *mat.Dense, mask *data.Mask) (*Result, error) {
	res, err := f.Run(y, mask)
	if err != nil {
		return nil, err
	}

	n, m := res.FilteredStates.Dims()
	res.SmoothedStates = mat.NewDense(n, m, nil)
	res.SmoothedCovs = make([]*mat.Dense, n)

	res.SmoothedStates.SetRow(n-1, res.FilteredStates.RawRowView(n-1))
	res.SmoothedCovs[n-1] = mat.DenseCopyOf(res.FilteredCovs[n-1])

	C := mat.NewDense(m, m, nil)
	predInv := mat.NewDense(m, m, nil)
	x := mat.NewVecDense(m, nil)
	P := mat.NewDense(m, m, nil)

	for t := n - 2; t >= 0; t-- {
		if err := predInv.Inverse(res.PredictedCovs[t+1]); err != nil {
			return nil, fmt.Errorf("smoothing at step %d: %w", t, err)
		}
		C.Product(res.FilteredCovs[t], f.model.T.T(), predInv)

		// x_s[t] = x_f[t] + C (x_s[t+1] - x_p[t+1])
		x.SubVec(
			rowVec(res.SmoothedStates, t+1),
			rowVec(res.PredictedStates, t+1),
		)
		x.MulVec(C, x)
		x.AddVec(rowVec(res.FilteredStates, t), x)

		// P_s[t] = P_f[t] + C (P_s[t+1] - P_p[t+1]) C'
		P.Sub(res.SmoothedCovs[t+1], res.PredictedCovs[t+1])
		P.Product(C, P, C.T())
		P.Add(res.FilteredCovs[t], P)

		res.SmoothedStates.SetRow(t, rowOf(x))
		res.SmoothedCovs[t] = mat.DenseCopyOf(P)
	}
	return res, nil
}

// update folds the observed components of y[t] into the state estimate in
// place and returns the log likelihood contribution of the step.
func (f *Filter) update(t int, y *mat.Dense, observed []int, a *mat.VecDense, P *mat.Dense) (float64, error) {
	m := f.model.StateDim()
	k := len(observed)

	Zt := selectRows(f.model.Z.At(t), observed)
	Ht := selectRowsCols(f.model.H, observed)
	dt := mat.NewVecDense(k, nil)
	yt := mat.NewVecDense(k, nil)
	for i, col := range observed {
		dt.SetVec(i, f.model.D.AtVec(col))
		yt.SetVec(i, y.At(t, col))
	}

	// v = y_t - d - Z a
	v := mat.NewVecDense(k, nil)
	v.MulVec(Zt, a)
	v.AddVec(dt, v)
	v.SubVec(yt, v)

	// F = Z P Z' + H
	ZP := mat.NewDense(k, m, nil)
	ZP.Mul(Zt, P)
	F := mat.NewDense(k, k, nil)
	F.Mul(ZP, Zt.T())
	F.Add(F, Ht)

	// K' = F^{-1} Z P, using that F is symmetric.
	var Kt mat.Dense
	if err := Kt.Solve(F, ZP); err != nil {
		return 0, fmt.Errorf("innovation covariance is singular: %w", err)
	}

	// a <- a + K v
	Kv := mat.NewVecDense(m, nil)
	Kv.MulVec(Kt.T(), v)
	a.AddVec(a, Kv)

	// P <- P - K Z P
	KZP := mat.NewDense(m, m, nil)
	KZP.Mul(Kt.T(), ZP)
	P.Sub(P, KZP)

	// ll = -(k log 2pi + log|F| + v' F^{-1} v) / 2
	var fv mat.VecDense
	if err := fv.SolveVec(F, v); err != nil {
		return 0, fmt.Errorf("innovation covariance is singular: %w", err)
	}
	logDet, sign := mat.LogDet(F)
	if sign <= 0 {
		return 0, fmt.Errorf("innovation covariance is not positive definite")
	}
	return -0.5 * (float64(k)*log2Pi + logDet + mat.Dot(v, &fv)), nil
}

// predict advances the state estimate one step in place.
func (f *Filter) predict(a *mat.VecDense, P *mat.Dense, rqr *mat.Dense) {
	m := f.model.StateDim()

	Ta := mat.NewVecDense(m, nil)
	Ta.MulVec(f.model.T, a)
	a.AddVec(f.model.C, Ta)

	var TPT mat.Dense
	TPT.Product(f.model.T, P, f.model.T.T())
	P.Add(&TPT, rqr)
}

// observedColumns returns the column positions of y[t] that carry real
// observations. A nil mask means everything is observed.
func observedColumns(mask *data.Mask, t, p int) []int {
	if mask == nil {
		all := make([]int, p)
		for i := range all {
			all[i] = i
		}
		return all
	}
	var observed []int
	for j := 0; j < p; j++ {
		if !mask.At(t, j) {
			observed = append(observed, j)
		}
	}
	return observed
}

func selectRows(a *mat.Dense, rows []int) *mat.Dense {
	_, cols := a.Dims()
	out := mat.NewDense(len(rows), cols, nil)
	for i, r := range rows {
		for j := 0; j < cols; j++ {
			out.Set(i, j, a.At(r, j))
		}
	}
	return out
}

func selectRowsCols(a *mat.Dense, idx []int) *mat.Dense {
	out := mat.NewDense(len(idx), len(idx), nil)
	for i, r := range idx {
		for j, c := range idx {
			out.Set(i, j, a.At(r, c))
		}
	}
	return out
}

func rowOf(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func rowVec(a *mat.Dense, t int) *mat.VecDense {
	row := a.RawRowView(t)
	return mat.NewVecDense(len(row), row)
}
