package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ezoic/olsfit/pkg/errors"
)

// SavePredictionPlot draws predicted against observed values with the
// y = x reference line and saves the figure to path. The image format
// follows the file extension (png, svg, pdf, ...).
func SavePredictionPlot(path string, yTrue, yPred []float64) error {
	const op = "report.SavePredictionPlot"
	if len(yTrue) == 0 {
		return errors.NewModelError(op, "no points", errors.ErrEmptyData)
	}
	if len(yTrue) != len(yPred) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}

	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, len(yTrue))
	for i := range yTrue {
		pts[i].X = yTrue[i]
		pts[i].Y = yPred[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "failed to create scatter plot")
	}
	scatter.Color = plotter.DefaultLineStyle.Color
	p.Add(scatter)
	p.Legend.Add("Observations", scatter)

	lo := floats.Min(yTrue)
	hi := floats.Max(yTrue)
	if m := floats.Min(yPred); m < lo {
		lo = m
	}
	if m := floats.Max(yPred); m > hi {
		hi = m
	}
	line, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "failed to create reference line")
	}
	line.Width = vg.Points(2)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(line)
	p.Legend.Add("y = x", line)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot %s", path)
	}
	return nil
}
