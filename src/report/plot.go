package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ResearchLuxembourg/restimator/src/interval"
)

// PlotSeries draws the R_t series: the MAP line over its shaded 50%
// credible band, with a reference line at R = 1. The output format
// follows the path extension (png, pdf, svg, ...).
func PlotSeries(path, title string, estimates []interval.DailyEstimate) error {
	if len(estimates) == 0 {
		return fmt.Errorf("plot %s: no estimates", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "R_t"
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}

	// Credible band as a closed polygon: lower bound left to right,
	// upper bound back right to left.
	band := make(plotter.XYs, 0, 2*len(estimates))
	for _, e := range estimates {
		band = append(band, plotter.XY{X: float64(e.Date.Unix()), Y: e.RLow})
	}
	for i := len(estimates) - 1; i >= 0; i-- {
		e := estimates[i]
		band = append(band, plotter.XY{X: float64(e.Date.Unix()), Y: e.RHigh})
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return fmt.Errorf("plot band: %w", err)
	}
	poly.Color = color.NRGBA{A: 40}
	poly.LineStyle.Width = 0
	p.Add(poly)

	line := make(plotter.XYs, len(estimates))
	for i, e := range estimates {
		line[i] = plotter.XY{X: float64(e.Date.Unix()), Y: e.RMap}
	}
	rt, err := plotter.NewLine(line)
	if err != nil {
		return fmt.Errorf("plot line: %w", err)
	}
	rt.Color = color.NRGBA{R: 180, A: 255}
	p.Add(rt)
	p.Legend.Add("R_t (MAP)", rt)

	ref, err := plotter.NewLine(plotter.XYs{
		{X: line[0].X, Y: 1.0},
		{X: line[len(line)-1].X, Y: 1.0},
	})
	if err != nil {
		return fmt.Errorf("plot reference: %w", err)
	}
	ref.Color = color.NRGBA{A: 120}
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(ref)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
