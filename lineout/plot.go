package lineout

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// StepTicks places a tick every Step units.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	if t.Step <= 0 || math.IsNaN(t.Step) {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max+t.Step*1e-9; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// PlotOptions controls PlotProfile.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64 // pixels
	Height float64 // pixels
}

func setFonts(p *plot.Plot) {
	for _, s := range []*vgdraw.TextStyle{&p.Title.TextStyle, &p.X.Label.TextStyle, &p.Y.Label.TextStyle} {
		s.Font.Typeface = "Liberation"
		s.Font.Variant = "Sans"
		s.Font.Size = vg.Points(12)
	}
	for _, s := range []*vgdraw.TextStyle{&p.X.Tick.Label, &p.Y.Tick.Label} {
		s.Font.Typeface = "Liberation"
		s.Font.Variant = "Sans"
		s.Font.Size = vg.Points(10)
	}
}

// PlotProfile renders a profile as a line plot with a dashed zero line.
func PlotProfile(profile []Point, opts PlotOptions) (image.Image, error) {
	if len(profile) < 2 {
		return nil, fmt.Errorf("lineout: need at least 2 profile points, have %d", len(profile))
	}

	p := plot.New()
	setFonts(p)

	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	span := profile[len(profile)-1].Distance - profile[0].Distance
	maxIntensity := 0.0
	for _, pt := range profile {
		maxIntensity = math.Max(maxIntensity, pt.Intensity)
	}
	if maxIntensity == 0 {
		maxIntensity = 1
	}
	p.Y.Min = 0
	p.Y.Max = 1.1 * maxIntensity
	p.X.Tick.Marker = StepTicks{Step: span / 10, Format: "%.3g"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(profile))
	for i, pt := range profile {
		pts[i].X = pt.Distance
		pts[i].Y = pt.Intensity
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	zero, err := plotter.NewLine(plotter.XYs{
		{X: profile[0].Distance, Y: 0},
		{X: profile[len(profile)-1].Distance, Y: 0},
	})
	if err != nil {
		return nil, err
	}
	zero.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	zero.Color = color.RGBA{A: 255}
	p.Add(zero)

	const dpi = 96
	c := vgimg.New(vg.Length(opts.Width)*vg.Inch/dpi, vg.Length(opts.Height)*vg.Inch/dpi)
	p.Draw(vgdraw.New(c))
	return c.Image(), nil
}

// SaveProfilePlot renders a profile and writes it to a PNG file.
func SaveProfilePlot(filename string, profile []Point, opts PlotOptions) (err error) {
	img, err := PlotProfile(profile, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
