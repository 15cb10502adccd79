package main

import (
	"errors"
	"image"

	"gonum.org/v1/plot"
	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/multislice/lineout"
)

// intensityGrid adapts an image-ordered matrix to plotter.GridXYZ. Row 0 of
// the matrix is the top of the plot.
type intensityGrid struct {
	m    [][]float64
	x, y []float64
}

func (g intensityGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g intensityGrid) Z(c, r int) float64 { return g.m[len(g.y)-1-r][c] }
func (g intensityGrid) X(c int) float64    { return g.x[c] }
func (g intensityGrid) Y(r int) float64    { return g.y[r] }

func setLiberationFonts(p *plot.Plot) {
	for _, s := range []*draw.TextStyle{&p.Title.TextStyle, &p.X.Label.TextStyle, &p.Y.Label.TextStyle} {
		s.Font.Typeface = "Liberation"
		s.Font.Variant = "Sans"
		s.Font.Size = vg.Points(12)
	}
	for _, s := range []*draw.TextStyle{&p.X.Tick.Label, &p.Y.Tick.Label} {
		s.Font.Typeface = "Liberation"
		s.Font.Variant = "Sans"
		s.Font.Size = vg.Points(10)
	}
}

// makeHeatMapImage renders m as a heat map with axes xVals (columns) and
// yVals (rows, increasing upwards). Both axes must be increasing.
func makeHeatMapImage(title string, m [][]float64, xVals, yVals []float64, wPx, hPx float64) (image.Image, error) {
	if len(xVals) < 2 || len(yVals) < 2 {
		return nil, errors.New("heat map needs at least 2x2 samples")
	}
	if len(m) != len(yVals) || len(m[0]) != len(xVals) {
		return nil, errors.New("heat map axes do not match the matrix")
	}

	p := plot.New()
	setLiberationFonts(p)

	p.Title.Text = title
	p.X.Label.Text = "x (nm)"
	p.Y.Label.Text = "y (nm)"

	xSpan := xVals[len(xVals)-1] - xVals[0]
	ySpan := yVals[len(yVals)-1] - yVals[0]
	p.X.Tick.Marker = lineout.StepTicks{Step: xSpan / 8, Format: "%.3g"}
	p.Y.Tick.Marker = lineout.StepTicks{Step: ySpan / 8, Format: "%.3g"}

	heat := plotter.NewHeatMap(intensityGrid{m: m, x: xVals, y: yVals}, palette.Heat(64, 1))
	p.Add(heat)

	// Render into an in-memory image at 96 dpi
	const dpi = 96
	c := vgimg.New(vg.Length(wPx)*vg.Inch/dpi, vg.Length(hPx)*vg.Inch/dpi)
	p.Draw(draw.New(c))
	return c.Image(), nil
}
