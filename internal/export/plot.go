package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piwi3910/palletpack/internal/model"
)

// fitnessPlot builds a line plot of best and mean fitness with a one
// standard deviation band around the mean.
func fitnessPlot(history []model.GenerationStats) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no generations to plot")
	}

	p := plot.New()
	p.Title.Text = "Genetic Search Fitness"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness (cells)"

	best := make(plotter.XYs, len(history))
	mean := make(plotter.XYs, len(history))
	upper := make(plotter.XYs, len(history))
	lower := make(plotter.XYs, len(history))
	for i, h := range history {
		x := float64(h.Generation)
		best[i] = plotter.XY{X: x, Y: float64(h.Best)}
		mean[i] = plotter.XY{X: x, Y: h.Mean}
		upper[i] = plotter.XY{X: x, Y: h.Mean + h.StdDev}
		lower[i] = plotter.XY{X: x, Y: h.Mean - h.StdDev}
	}

	lines := []struct {
		name  string
		pts   plotter.XYs
		color color.Color
		width vg.Length
		dash  []vg.Length
	}{
		{"best", best, PlacementColor(0), vg.Points(1.5), nil},
		{"mean", mean, PlacementColor(1), vg.Points(1), nil},
		{"mean ± sd", upper, PlacementColor(2), vg.Points(0.5), []vg.Length{vg.Points(3), vg.Points(2)}},
		{"", lower, PlacementColor(2), vg.Points(0.5), []vg.Length{vg.Points(3), vg.Points(2)}},
	}
	for _, l := range lines {
		line, err := plotter.NewLine(l.pts)
		if err != nil {
			return nil, err
		}
		line.Color = l.color
		line.Width = l.width
		line.Dashes = l.dash
		p.Add(line)
		if l.name != "" {
			p.Legend.Add(l.name, line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// PlotFitnessHistory saves the fitness plot to path. The image format follows
// the file extension (png, svg, pdf).
func PlotFitnessHistory(path string, history []model.GenerationStats) error {
	p, err := fitnessPlot(history)
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save fitness plot: %w", err)
	}
	return nil
}

// WriteFitnessPlot writes the fitness plot as a PNG image.
func WriteFitnessPlot(w io.Writer, history []model.GenerationStats) error {
	p, err := fitnessPlot(history)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
