package lineout

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
)

// DrawPathOnImage returns a copy of src with the path drawn as a red line,
// a red dot at the start and a green dot at the end.
func DrawPathOnImage(src image.Image, p *Path) *image.RGBA {
	bounds := src.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, src, bounds.Min, draw.Src)

	red := color.RGBA{R: 255, A: 255}
	drawLine(result, p.StartX, p.StartY, p.EndX, p.EndY, red)
	drawDot(result, p.StartX, p.StartY, 3, red)
	drawDot(result, p.EndX, p.EndY, 3, color.RGBA{G: 255, A: 255})
	return result
}

// drawLine draws a 3-pixel wide line with Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 float64, col color.Color) {
	x1, y1 = math.Round(x1), math.Round(y1)
	x2, y2 = math.Round(x2), math.Round(y2)
	dx := math.Abs(x2 - x1)
	dy := math.Abs(y2 - y1)
	sx := -1.0
	if x1 < x2 {
		sx = 1.0
	}
	sy := -1.0
	if y1 < y2 {
		sy = 1.0
	}
	err := dx - dy

	for {
		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				setIfInside(img, int(x1)+ox, int(y1)+oy, col)
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func drawDot(img *image.RGBA, cx, cy float64, radius int, col color.Color) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				setIfInside(img, int(math.Round(cx))+x, int(math.Round(cy))+y, col)
			}
		}
	}
}

func setIfInside(img *image.RGBA, x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

// LoadGray16PNG reads a 16-bit grayscale PNG into a matrix, dividing each
// pixel value by scale to recover intensity.
func LoadGray16PNG(filename string, scale float64) (matrix [][]float64, err error) {
	img, err := LoadImageFromFile(filename)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	matrix = make([][]float64, bounds.Dy())
	for y := range matrix {
		matrix[y] = make([]float64, bounds.Dx())
		for x := range matrix[y] {
			c := img.At(x+bounds.Min.X, y+bounds.Min.Y)
			g := color.Gray16Model.Convert(c).(color.Gray16)
			matrix[y][x] = float64(g.Y) / scale
		}
	}
	return matrix, nil
}

// LoadImageFromFile loads any PNG image file.
func LoadImageFromFile(filename string) (img image.Image, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	img, err = png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return img, nil
}

// SaveImageToFile saves an image to a PNG file.
func SaveImageToFile(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
