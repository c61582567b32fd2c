package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// Point is one sample of a portrait.
type Point struct {
	X, Y float64
}

// Portrait2D holds one response quantity plotted against another.
type Portrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// Portrait pairs two channels of a result sample by sample.
func Portrait(r *dynamo.Result, xc, yc dynamo.Channel) *Portrait2D {
	xs, ys := r.Channel(xc), r.Channel(yc)
	if xs == nil || ys == nil {
		return nil
	}

	p := &Portrait2D{XLabel: xc.String(), YLabel: yc.String(), Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// PortraitByName is Portrait with channels given by name.
func PortraitByName(r *dynamo.Result, x, y string) (*Portrait2D, error) {
	xc, err := dynamo.ParseChannel(x)
	if err != nil {
		return nil, err
	}
	yc, err := dynamo.ParseChannel(y)
	if err != nil {
		return nil, err
	}
	p := Portrait(r, xc, yc)
	if p == nil {
		return nil, fmt.Errorf("no %s/%s history in result", x, y)
	}
	return p, nil
}

// RestoringForce returns the loop of displacement against k·x + c·v, whose
// enclosed area is the energy dissipated per cycle.
func RestoringForce(r *dynamo.Result) *Portrait2D {
	k, c := r.Params.Stiffness, r.Params.DampingCoefficient()
	p := &Portrait2D{XLabel: "displacement", YLabel: "restoring_force", Points: make([]Point, r.Len())}
	for i := range p.Points {
		x, v := r.Displacement[i], r.Velocity[i]
		p.Points[i] = Point{X: x, Y: k*x + c*v}
	}
	return p
}

// ToASCII renders the portrait as a width×height character plot.
func (p *Portrait2D) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
