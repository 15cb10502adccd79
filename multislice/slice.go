package multislice

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ApplySlice multiplies w by the transmission function of one slab of
// thickness voxelZ (projection approximation):
//
//	T = exp(i k delta) * exp(-k beta),  k = 2 pi voxelZ / lambda
//
// delta drives the phase, beta the attenuation. No diffraction happens inside the slab.
func ApplySlice(delta, beta mat.Matrix, w Wavefront, wavelength, voxelZ float64) (Wavefront, error) {
	ny, nx, err := w.Shape()
	if err != nil {
		return nil, err
	}
	if r, c := delta.Dims(); r != ny || c != nx {
		return nil, fmt.Errorf("%w: delta slice is %dx%d, wavefront is %dx%d", ErrIncompatibleShape, r, c, ny, nx)
	}
	if r, c := beta.Dims(); r != ny || c != nx {
		return nil, fmt.Errorf("%w: beta slice is %dx%d, wavefront is %dx%d", ErrIncompatibleShape, r, c, ny, nx)
	}
	if wavelength <= 0 || math.IsNaN(wavelength) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidWavelength, wavelength)
	}

	k := 2 * math.Pi * voxelZ / wavelength
	out := NewWavefront(ny, nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			phase := cmplx.Exp(complex(0, k*delta.At(r, c)))
			out[r][c] = w[r][c] * phase * complex(math.Exp(-k*beta.At(r, c)), 0)
		}
	}
	return out, nil
}
