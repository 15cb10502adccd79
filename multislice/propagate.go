package multislice

import (
	"fmt"
	"math"
	"math/cmplx"
)

// TransferFunction returns the angular-spectrum transfer function
//
//	H = exp(-i 2 pi d / lambda * sqrt(1 - lambda^2 u^2 - lambda^2 v^2))
//
// on mesh. The radicand is built with a negative-zero imaginary part so that
// cmplx.Sqrt returns -i*sqrt(|r|) beyond the propagation band. Evanescent
// components are then scaled by exp(-2 pi d sqrt(|r|) / lambda), which decays
// for d > 0 and is the exact reciprocal for -d.
func TransferFunction(mesh FrequencyMesh, wavelength, distance float64) [][]complex128 {
	ny, nx := mesh.U.Dims()
	negZero := math.Copysign(0, -1)
	k := complex(0, -2*math.Pi*distance/wavelength)
	l2 := wavelength * wavelength

	h := make([][]complex128, ny)
	for r := 0; r < ny; r++ {
		h[r] = make([]complex128, nx)
		for c := 0; c < nx; c++ {
			u := mesh.U.At(r, c)
			v := mesh.V.At(r, c)
			root := cmplx.Sqrt(complex(1-l2*u*u-l2*v*v, negZero))
			h[r][c] = cmplx.Exp(k * root)
		}
	}
	return h
}

// Propagate carries w a distance through free space with the angular-spectrum
// method. A zero distance returns a copy of w unchanged.
func Propagate(w Wavefront, wavelength, distance, voxelX, voxelY float64) (Wavefront, error) {
	ny, nx, err := w.Shape()
	if err != nil {
		return nil, err
	}
	if wavelength <= 0 || math.IsNaN(wavelength) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidWavelength, wavelength)
	}
	if voxelX <= 0 || voxelY <= 0 {
		return nil, fmt.Errorf("%w: lateral pitch (%g, %g) must be positive", ErrInvalidParameter, voxelX, voxelY)
	}
	if distance == 0 {
		return w.Clone(), nil
	}

	h := TransferFunction(BuildMesh(ny, nx, voxelX, voxelY), wavelength, distance)

	spectrum := fftshift2D(fft2(w, true))
	for r := range spectrum {
		for c := range spectrum[r] {
			spectrum[r][c] *= h[r][c]
		}
	}
	return fft2(ifftshift2D(spectrum), false), nil
}
