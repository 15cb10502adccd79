package main

import (
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// gray16FullScale is the data-image scale used while the peak intensity
// stays below 65535/gray16FullScale.
const gray16FullScale = 4000.0

func checkMatrix(m [][]float64) (h, w int, err error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, 0, errors.New("empty matrix")
	}
	h = len(m)
	w = len(m[0])
	for y := 1; y < h; y++ {
		if len(m[y]) != w {
			return 0, 0, errors.New("ragged matrix")
		}
	}
	return h, w, nil
}

// Flatten2D returns the row-major concatenation of m.
func Flatten2D(m [][]float64) []float64 {
	out := make([]float64, 0, len(m)*len(m[0]))
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// LogIntensity returns log10(v + floor) for every element; floor keeps zero
// intensity finite.
func LogIntensity(m [][]float64, floor float64) [][]float64 {
	out := make([][]float64, len(m))
	for y, row := range m {
		out[y] = make([]float64, len(row))
		for x, v := range row {
			out[y][x] = math.Log10(v + floor)
		}
	}
	return out
}

// Gray16Scale picks the data-image scale: the fixed gray16FullScale when it
// fits the peak, otherwise the scale that maps the peak to 65535.
func Gray16Scale(m [][]float64) float64 {
	peak := floats.Max(Flatten2D(m))
	if peak <= 0 || peak*gray16FullScale <= 65535 {
		return gray16FullScale
	}
	return 65535 / peak
}

// MatrixToGray16Data maps v to round(v * scale), clamped to [0, 65535].
// Non-finite values become 0.
func MatrixToGray16Data(m [][]float64, scale float64) (*image.Gray16, error) {
	h, w, err := checkMatrix(m)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.New("scale must be > 0")
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m[y][x]
			var y16 uint16
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				y16 = uint16(math.Max(0, math.Min(65535, math.Round(v*scale))))
			}

			// Gray16 Pix is big-endian per pixel: high then low
			i := row + 2*x
			img.Pix[i] = uint8(y16 >> 8)
			img.Pix[i+1] = uint8(y16)
		}
	}
	return img, nil
}

// MatrixToGrayViewPercentile maps the pLow..pHigh percentile range of the
// finite values to 0..255 and clamps.
func MatrixToGrayViewPercentile(m [][]float64, pLow, pHigh float64) (*image.Gray, error) {
	h, w, err := checkMatrix(m)
	if err != nil {
		return nil, err
	}
	if !(0 <= pLow && pLow < pHigh && pHigh <= 100) {
		return nil, errors.New("percentiles must satisfy 0 <= pLow < pHigh <= 100")
	}

	vals := make([]float64, 0, h*w)
	for _, v := range Flatten2D(m) {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, errors.New("matrix has no finite values")
	}
	sort.Float64s(vals)

	lo := stat.Quantile(pLow/100, stat.LinInterp, vals, nil)
	hi := stat.Quantile(pHigh/100, stat.LinInterp, vals, nil)
	if hi == lo {
		hi = lo + 1 // constant image
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.Pix[row+x] = 0
				continue
			}
			t := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
			img.Pix[row+x] = uint8(math.Round(t * 255.0))
		}
	}
	return img, nil
}

func SavePNG(filename string, img image.Image) (err error) {
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
