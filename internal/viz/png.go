package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/spectrum"
)

// Series is one named curve over a shared abscissa.
type Series struct {
	Name string
	X, Y []float64
}

// HistorySeries returns one series per requested channel of res, over time.
func HistorySeries(res *dynamo.Result, channels []dynamo.Channel) []Series {
	t := res.Times()
	out := make([]Series, 0, len(channels))
	for _, c := range channels {
		out = append(out, Series{Name: c.String(), X: t, Y: res.Channel(c)})
	}
	return out
}

// SpectrumSeries returns one series per requested channel of spec, over
// period.
func SpectrumSeries(spec *spectrum.Spectrum, channels []dynamo.Channel) []Series {
	out := make([]Series, 0, len(channels))
	for _, c := range channels {
		if y := spec.Channel(c); y != nil {
			out = append(out, Series{Name: c.String(), X: spec.Periods, Y: y})
		}
	}
	return out
}

// SavePNG draws the series as lines and saves the figure. The format follows
// the extension of filename (.png, .svg, .pdf); anything else gets .png
// appended. Non-finite samples are skipped.
func SavePNG(filename, title, xLabel string, series []Series) error {
	if len(series) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range series {
		pts := make(plotter.XYs, 0, len(s.X))
		for j := range s.X {
			if j >= len(s.Y) || !finite(s.X[j]) || !finite(s.Y[j]) {
				continue
			}
			pts = append(pts, plotter.XY{X: s.X[j], Y: s.Y[j]})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("no finite samples to plot")
	}
	if len(series) == 1 {
		p.Y.Label.Text = series[0].Name
	}
	p.Legend.Top = true

	zero, err := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: 0}, {X: p.X.Max, Y: 0}})
	if err != nil {
		return err
	}
	zero.LineStyle.Color = color.Gray{Y: 160}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	width := 8 * vg.Inch
	height := 5 * vg.Inch
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func SaveHistoryPNG(filename string, res *dynamo.Result, channels []dynamo.Channel) error {
	title := fmt.Sprintf("Response (m=%g, k=%g, h=%g, β=%g)", res.Params.Mass, res.Params.Stiffness, res.Params.Damping, res.Params.Beta)
	return SavePNG(filename, title, "time (s)", HistorySeries(res, channels))
}

func SaveSpectrumPNG(filename string, spec *spectrum.Spectrum, channels []dynamo.Channel) error {
	return SavePNG(filename, "Response spectrum", "period (s)", SpectrumSeries(spec, channels))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
