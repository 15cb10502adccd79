package multislice

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// Wavefront is a complex field sampled on an (nY, nX) transverse plane, row major.
type Wavefront [][]complex128

// Kind selects the initial illumination.
type Kind int

const (
	// Plane is uniform illumination with zero phase.
	Plane Kind = iota
	// Point is a centred square top-hat aperture.
	Point
)

func (k Kind) String() string {
	switch k {
	case Plane:
		return "plane"
	case Point:
		return "point"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plane":
		return Plane, nil
	case "point":
		return Point, nil
	}
	return 0, fmt.Errorf("%w: unknown wavefront type %q", ErrInvalidParameter, name)
}

// NewWavefront returns an all-zero wavefront.
func NewWavefront(ny, nx int) Wavefront {
	w := make(Wavefront, ny)
	for i := range w {
		w[i] = make([]complex128, nx)
	}
	return w
}

// Initialize builds the starting field for a lateral shape (ny, nx).
//
// For Point, a width x width block of ones is placed in the corner and rolled
// by (n-width)/2 along each axis separately, so rectangular shapes get an
// aperture centred on both axes. width is ignored for Plane.
func Initialize(ny, nx int, kind Kind, width int) (Wavefront, error) {
	if ny < 1 || nx < 1 {
		return nil, fmt.Errorf("%w: lateral shape %dx%d", ErrInvalidParameter, ny, nx)
	}

	switch kind {
	case Plane:
		w := NewWavefront(ny, nx)
		for r := range w {
			for c := range w[r] {
				w[r][c] = 1
			}
		}
		return w, nil

	case Point:
		if width < 1 || width > ny || width > nx {
			return nil, fmt.Errorf("%w: aperture width %d does not fit %dx%d", ErrInvalidParameter, width, ny, nx)
		}
		w := NewWavefront(ny, nx)
		for r := 0; r < width; r++ {
			for c := 0; c < width; c++ {
				w[r][c] = 1
			}
		}
		return roll2D(w, (ny-width)/2, (nx-width)/2), nil
	}

	return nil, fmt.Errorf("%w: unknown wavefront kind %d", ErrInvalidParameter, int(kind))
}

// Shape returns the lateral shape, failing on an empty or ragged field.
func (w Wavefront) Shape() (ny, nx int, err error) {
	ny = len(w)
	if ny == 0 {
		return 0, 0, fmt.Errorf("%w: empty wavefront", ErrIncompatibleShape)
	}
	nx = len(w[0])
	if nx == 0 {
		return 0, 0, fmt.Errorf("%w: empty wavefront", ErrIncompatibleShape)
	}
	for i := 1; i < ny; i++ {
		if len(w[i]) != nx {
			return 0, 0, fmt.Errorf("%w: ragged wavefront at row %d", ErrIncompatibleShape, i)
		}
	}
	return ny, nx, nil
}

// Clone returns a deep copy.
func (w Wavefront) Clone() Wavefront {
	out := make(Wavefront, len(w))
	for i := range w {
		out[i] = make([]complex128, len(w[i]))
		copy(out[i], w[i])
	}
	return out
}

// Intensity returns |w|^2 per sample.
func (w Wavefront) Intensity() [][]float64 {
	return w.apply(func(v complex128) float64 {
		return real(v)*real(v) + imag(v)*imag(v)
	})
}

// Amplitude returns |w| per sample.
func (w Wavefront) Amplitude() [][]float64 {
	return w.apply(cmplx.Abs)
}

// Phase returns arg(w) per sample, in (-pi, pi].
func (w Wavefront) Phase() [][]float64 {
	return w.apply(cmplx.Phase)
}

func (w Wavefront) apply(f func(complex128) float64) [][]float64 {
	out := make([][]float64, len(w))
	for i := range w {
		out[i] = make([]float64, len(w[i]))
		for j, v := range w[i] {
			out[i][j] = f(v)
		}
	}
	return out
}
