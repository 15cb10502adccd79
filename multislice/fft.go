package multislice

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// fft2 returns the 2D discrete Fourier transform of a, rows then columns.
// The inverse is scaled by 1/(h*w) so that fft2(fft2(a, true), false) == a;
// gonum's transforms are unnormalized in both directions.
func fft2(a [][]complex128, forward bool) [][]complex128 {
	h := len(a)
	w := len(a[0])
	out := make([][]complex128, h)
	for y := range a {
		out[y] = make([]complex128, w)
		copy(out[y], a[y])
	}

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	// rows
	for y := 0; y < h; y++ {
		if forward {
			rowFFT.Coefficients(out[y], out[y])
		} else {
			rowFFT.Sequence(out[y], out[y])
		}
	}

	// cols
	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = out[y][x]
		}
		if forward {
			colFFT.Coefficients(col, col)
		} else {
			colFFT.Sequence(col, col)
		}
		for y := 0; y < h; y++ {
			out[y][x] = col[y]
		}
	}

	if !forward {
		scale := complex(1/float64(h*w), 0)
		for y := range out {
			for x := range out[y] {
				out[y][x] *= scale
			}
		}
	}
	return out
}

// fftshift2D moves the zero-frequency sample from (0, 0) to (h/2, w/2).
func fftshift2D(a [][]complex128) [][]complex128 {
	return roll2D(a, len(a)/2, len(a[0])/2)
}

// ifftshift2D undoes fftshift2D, also for odd sizes.
func ifftshift2D(a [][]complex128) [][]complex128 {
	return roll2D(a, -(len(a) / 2), -(len(a[0]) / 2))
}

// roll2D cyclically shifts a by dy rows and dx columns: out[y+dy][x+dx] = a[y][x].
func roll2D(a [][]complex128, dy, dx int) [][]complex128 {
	h := len(a)
	w := len(a[0])
	out := make([][]complex128, h)
	for y := range out {
		out[y] = make([]complex128, w)
	}
	for y := 0; y < h; y++ {
		yy := mod(y+dy, h)
		for x := 0; x < w; x++ {
			out[yy][mod(x+dx, w)] = a[y][x]
		}
	}
	return out
}

func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
