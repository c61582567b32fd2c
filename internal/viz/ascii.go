package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// ASCII renders the series as a terminal line chart. Infinite samples are
// drawn as gaps like NaN.
func ASCII(s Series, width, height int) string {
	data := make([]float64, len(s.Y))
	ok := false
	for i, v := range s.Y {
		if finite(v) {
			data[i] = v
			ok = true
		} else {
			data[i] = math.NaN()
		}
	}
	if !ok {
		return Subtle.Render(fmt.Sprintf("%s: no finite samples", s.Name))
	}

	caption := s.Name
	if n := len(s.X); n > 0 {
		caption = fmt.Sprintf("%s  [%g .. %g]", s.Name, s.X[0], s.X[n-1])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// ASCIIOverlay draws several series on one chart, colored in order.
func ASCIIOverlay(series []Series, width, height int, caption string) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		row := make([]float64, len(s.Y))
		ok := false
		for i, v := range s.Y {
			if finite(v) {
				row[i] = v
				ok = true
			} else {
				row[i] = math.NaN()
			}
		}
		if ok {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return Subtle.Render(caption + ": no finite samples")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(overlayColors[:min(len(data), len(overlayColors))]...),
	)
}

var overlayColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Blue,
}
