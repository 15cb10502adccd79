// Package lineout extracts intensity profiles along straight lines across
// detector images, plots them, and draws the sampled line on display images.
package lineout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// SamplePoint is a position on the path in image pixels, with its distance
// from the start of the path.
type SamplePoint struct {
	X                 float64
	Y                 float64
	DistanceFromStart float64
}

// Point is one sample of an extracted profile.
type Point struct {
	Distance  float64 // from path start, in PixelSize units (pixels if PixelSize is 0)
	Intensity float64
}

// Path is a straight line across a Width x Height image.
type Path struct {
	// Input parameters
	AngleDegrees float64 // counter-clockwise from the +x (column) axis as seen on screen
	OffsetPixels float64 // perpendicular offset from the image centre; positive is below the centre for AngleDegrees = 0
	Width        int
	Height       int
	PixelSize    float64 // physical length of one pixel, 0 for pixel units

	// Computed values
	StartX       float64
	StartY       float64
	EndX         float64
	EndY         float64
	SamplePoints []SamplePoint
}

// ErrNoIntersection is returned when the path misses the image.
var ErrNoIntersection = errors.New("lineout: path does not cross the image")

// HorizontalPath returns a computed path along image row.
func HorizontalPath(width, height, row int, pixelSize float64) (*Path, error) {
	p := &Path{
		OffsetPixels: float64(row) - float64(height-1)/2,
		Width:        width,
		Height:       height,
		PixelSize:    pixelSize,
	}
	if err := p.ComputeEndpoints(); err != nil {
		return nil, err
	}
	p.ComputeSamplePoints()
	return p, nil
}

type crossing struct {
	x, y, t float64
}

// ComputeEndpoints finds where the path enters and leaves the image. The
// start is the entry point when walking in the path direction.
func (p *Path) ComputeEndpoints() error {
	if p.Width < 2 || p.Height < 2 {
		return fmt.Errorf("lineout: image %dx%d is too small for a path", p.Width, p.Height)
	}
	halfW := float64(p.Width-1) / 2
	halfH := float64(p.Height-1) / 2
	theta := p.AngleDegrees * math.Pi / 180

	// Image rows grow downwards, so a positive angle points up the screen.
	dx := math.Cos(theta)
	dy := -math.Sin(theta)
	nx := math.Sin(theta)
	ny := math.Cos(theta)
	x0 := p.OffsetPixels * nx
	y0 := p.OffsetPixels * ny

	var hits []crossing
	if math.Abs(dx) > 1e-12 {
		for _, edge := range []float64{-halfW, halfW} {
			t := (edge - x0) / dx
			if y := y0 + t*dy; y >= -halfH-1e-9 && y <= halfH+1e-9 {
				hits = append(hits, crossing{edge, y, t})
			}
		}
	}
	if math.Abs(dy) > 1e-12 {
		for _, edge := range []float64{-halfH, halfH} {
			t := (edge - y0) / dy
			if x := x0 + t*dx; x >= -halfW-1e-9 && x <= halfW+1e-9 {
				hits = append(hits, crossing{x, edge, t})
			}
		}
	}
	hits = removeDuplicateCrossings(hits, 1e-9)
	if len(hits) < 2 {
		return ErrNoIntersection
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	first, last := hits[0], hits[len(hits)-1]
	p.StartX, p.StartY = first.x+halfW, first.y+halfH
	p.EndX, p.EndY = last.x+halfW, last.y+halfH
	p.SamplePoints = nil
	return nil
}

func removeDuplicateCrossings(hits []crossing, tol float64) []crossing {
	var result []crossing
	for _, h := range hits {
		duplicate := false
		for _, r := range result {
			if math.Abs(h.x-r.x) < tol && math.Abs(h.y-r.y) < tol {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, h)
		}
	}
	return result
}

// ComputeSamplePoints samples the path at 1-pixel steps, both ends included.
func (p *Path) ComputeSamplePoints() {
	xLength := p.EndX - p.StartX
	yLength := p.EndY - p.StartY
	pathLength := math.Hypot(xLength, yLength)

	n := int(math.Floor(pathLength+1e-9)) + 1
	p.SamplePoints = make([]SamplePoint, 0, n)
	for i := 0; i < n; i++ {
		k := float64(i)
		sp := SamplePoint{X: p.StartX, Y: p.StartY, DistanceFromStart: k}
		if pathLength > 0 {
			sp.X += k * xLength / pathLength
			sp.Y += k * yLength / pathLength
		}
		p.SamplePoints = append(p.SamplePoints, sp)
	}
}

// Extract samples intensity along p with bilinear interpolation.
func Extract(intensity [][]float64, p *Path) []Point {
	if len(p.SamplePoints) == 0 {
		p.ComputeSamplePoints()
	}
	scale := p.PixelSize
	if scale == 0 {
		scale = 1
	}

	profile := make([]Point, len(p.SamplePoints))
	for i, sp := range p.SamplePoints {
		profile[i] = Point{
			Distance:  sp.DistanceFromStart * scale,
			Intensity: interpolate(intensity, sp.X, sp.Y),
		}
	}
	return profile
}

// interpolate returns the bilinear interpolation of m at column x, row y,
// clamping to the matrix edges.
func interpolate(m [][]float64, x, y float64) float64 {
	h := len(m)
	if h == 0 || len(m[0]) == 0 {
		return 0
	}
	w := len(m[0])

	x = math.Max(0, math.Min(x, float64(w-1)))
	y = math.Max(0, math.Min(y, float64(h-1)))

	x0 := int(x)
	y0 := int(y)
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	v0 := m[y0][x0]*(1-xFrac) + m[y0][x1]*xFrac
	v1 := m[y1][x0]*(1-xFrac) + m[y1][x1]*xFrac
	return v0*(1-yFrac) + v1*yFrac
}
