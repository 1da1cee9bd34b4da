package harness

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotTrajectory saves a visual-aid line plot of a simulated hidden state
// trajectory and its observations to path. Only the first observed series
// is drawn next to the states.
func PlotTrajectory(states, obs *mat.Dense, path string) error {
	p := plot.New()
	p.Title.Text = "Simulated trajectory"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "value"

	lines := []any{"observed", colPoints(obs, 0)}
	_, m := states.Dims()
	for col := 0; col < m; col++ {
		lines = append(lines, fmt.Sprintf("state %d", col), colPoints(states, col))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// colPoints turns one column of a trajectory into plottable points.
func colPoints(a *mat.Dense, col int) plotter.XYs {
	n, _ := a.Dims()
	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = float64(i)
		pts[i].Y = a.At(i, col)
	}
	return pts
}
