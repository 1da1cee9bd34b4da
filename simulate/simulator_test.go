package simulate

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/hammal/statespace/matutil"
	"github.com/hammal/statespace/ssm"
	"gonum.org/v1/gonum/mat"
)

// With Q and H both zero the recurrence is fully deterministic and must
// reproduce x[t] = c + T x[t-1] exactly.
func TestSimulateDeterministic(t *testing.T) {
	x0 := mat.NewVecDense(2, []float64{1, 2})
	c := mat.NewVecDense(2, []float64{0.5, 0})
	tr := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	z := ssm.FixedObservation(mat.NewDense(1, 2, []float64{1, 0}))

	model, err := ssm.New(x0, matutil.Eye(2), c, nil, tr, z,
		matutil.Eye(2), mat.NewDense(2, 2, nil), mat.NewDense(1, 1, nil))
	if err != nil {
		t.Fatal(err)
	}

	steps := 10
	states, obs, err := Simulate(model, steps, rand.NewPCG(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	// Recompute the trajectory by hand.
	level, trend := 1.0, 2.0
	for step := 0; step < steps; step++ {
		if step > 0 {
			level = 0.5 + level + trend
		}
		if math.Abs(states.At(step, 0)-level) > 1e-12 {
			t.Errorf("state[%d][0] = %v, want %v", step, states.At(step, 0), level)
		}
		if math.Abs(states.At(step, 1)-trend) > 1e-12 {
			t.Errorf("state[%d][1] = %v, want %v", step, states.At(step, 1), trend)
		}
		if math.Abs(obs.At(step, 0)-level) > 1e-12 {
			t.Errorf("obs[%d] = %v, want %v", step, obs.At(step, 0), level)
		}
	}
}

func TestSimulateShapesAndNoise(t *testing.T) {
	model := ssm.NewLocalLinearTrend(0.5, 0.01, 0.8)
	steps := 50

	states, obs, err := Simulate(model, steps, rand.NewPCG(7, 13))
	if err != nil {
		t.Fatal(err)
	}

	if r, c := states.Dims(); r != steps || c != 2 {
		t.Errorf("states dims = (%d, %d), want (%d, 2)", r, c, steps)
	}
	if r, c := obs.Dims(); r != steps || c != 1 {
		t.Errorf("obs dims = (%d, %d), want (%d, 1)", r, c, steps)
	}
	if matutil.HasNaN(states) || matutil.HasNaN(obs) {
		t.Error("simulated trajectory contains NaN")
	}

	// With nonzero noise the observations should not reproduce Z x exactly.
	exact := true
	for step := 0; step < steps; step++ {
		if obs.At(step, 0) != states.At(step, 0) {
			exact = false
			break
		}
	}
	if exact {
		t.Error("observation noise was not applied")
	}
}

func TestSimulateTimeVaryingObservation(t *testing.T) {
	steps := 4
	zs := make([]*mat.Dense, steps)
	for i := range zs {
		// Alternate between observing each state component.
		if i%2 == 0 {
			zs[i] = mat.NewDense(1, 2, []float64{1, 0})
		} else {
			zs[i] = mat.NewDense(1, 2, []float64{0, 1})
		}
	}

	x0 := mat.NewVecDense(2, []float64{3, 4})
	tr := matutil.Eye(2)
	model, err := ssm.New(x0, matutil.Eye(2), nil, nil, tr,
		ssm.VaryingObservation(zs), nil, nil, mat.NewDense(1, 1, nil))
	if err != nil {
		t.Fatal(err)
	}

	_, obs, err := Simulate(model, steps, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 4, 3, 4}
	for step := range want {
		if math.Abs(obs.At(step, 0)-want[step]) > 1e-12 {
			t.Errorf("obs[%d] = %v, want %v", step, obs.At(step, 0), want[step])
		}
	}

	// Too few per-step matrices is an error.
	if _, _, err := Simulate(model, steps+1, rand.NewPCG(1, 2)); err == nil {
		t.Error("expected error for too few observation matrices")
	}
}

func TestSimulateRejectsBadArguments(t *testing.T) {
	model := ssm.NewLocalLinearTrend(0.5, 0.01, 0.8)
	if _, _, err := Simulate(model, 0, rand.NewPCG(1, 1)); err == nil {
		t.Error("expected error for zero steps")
	}
}
