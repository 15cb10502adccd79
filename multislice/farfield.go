package multislice

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FarField is a detector-plane field with its sampling axes. X runs along
// columns and Y along rows, in the grid's length unit. The detector pitch
// generally differs from the source pitch.
type FarField struct {
	Field Wavefront
	X     []float64
	Y     []float64
}

// FresnelFarField computes single-Fourier Fresnel diffraction of w to a
// detector at distance z. The field is premultiplied by a spherical phase
// keyed to each source point's distance from the detector axis, transformed
// once, and postmultiplied by the matching phase at the detector coordinates
// x = x0 * lambda * z / (nX * voxelX^2), and likewise for y.
//
// grid must be a CoordinateGrid; other grids fail with ErrUnsupportedGridType.
func FresnelFarField(grid Grid, w Wavefront, wavelength, z float64) (*FarField, error) {
	cg, ok := grid.(CoordinateGrid)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedGridType, grid)
	}
	ny, nx, err := checkFarField(grid, w, wavelength, z)
	if err != nil {
		return nil, err
	}
	xx, yy := cg.LateralMesh()
	if r, c := xx.Dims(); r != ny || c != nx {
		return nil, fmt.Errorf("%w: coordinate mesh is %dx%d, wavefront is %dx%d", ErrIncompatibleShape, r, c, ny, nx)
	}
	if r, c := yy.Dims(); r != ny || c != nx {
		return nil, fmt.Errorf("%w: coordinate mesh is %dx%d, wavefront is %dx%d", ErrIncompatibleShape, r, c, ny, nx)
	}

	vx, vy, _ := grid.Voxel()
	k := 2 * math.Pi / wavelength

	pre := NewWavefront(ny, nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			x0 := xx.At(r, c)
			y0 := yy.At(r, c)
			pre[r][c] = w[r][c] * sphericalPhase(k, z, x0, y0)
		}
	}
	field := fftshift2D(fft2(pre, true))

	sx := wavelength * z / (float64(nx) * vx * vx)
	sy := wavelength * z / (float64(ny) * vy * vy)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			field[r][c] *= sphericalPhase(k, z, xx.At(r, c)*sx, yy.At(r, c)*sy)
		}
	}

	ff := &FarField{Field: field, X: make([]float64, nx), Y: make([]float64, ny)}
	for c := range ff.X {
		ff.X[c] = xx.At(0, c) * sx
	}
	for r := range ff.Y {
		ff.Y[r] = yy.At(r, 0) * sy
	}
	return ff, nil
}

// ChirpFarField computes far-field diffraction of w to a detector at
// distance z with the scaled double-Fourier (chirp) algorithm.
//
// With N, M the row and column counts and D, H the physical extents, the
// frequency sampling is V = N/D, U = M/H. The field is premultiplied by a
// chirp over the source coordinates, transformed with shift, postmultiplied by
// a chirp over the frequency coordinates and scaled by -sqrt(i)/(U V lambda z).
// The detector axes are the frequency axes times lambda*z.
func ChirpFarField(grid Grid, w Wavefront, wavelength, z float64) (*FarField, error) {
	ny, nx, err := checkFarField(grid, w, wavelength, z)
	if err != nil {
		return nil, err
	}
	vx, vy, _ := grid.Voxel()

	n := float64(ny)
	m := float64(nx)
	extentY := n * vy
	extentX := m * vx
	bigV := n / extentY
	bigU := m / extentX

	d := CoordinateAxis(ny, extentY/n)
	h := CoordinateAxis(nx, extentX/m)
	v := CoordinateAxis(ny, bigV/n)
	u := CoordinateAxis(nx, bigU/m)

	k := 2 * math.Pi / wavelength
	pre := NewWavefront(ny, nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			pre[r][c] = w[r][c] * sphericalPhase(k, z, h[c], d[r])
		}
	}
	field := fftshift2D(fft2(pre, true))

	l2 := wavelength * wavelength
	norm := -cmplx.Sqrt(1i) / complex(bigU*bigV*wavelength*z, 0)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			chirp := cmplx.Exp(complex(0, -k*z*math.Sqrt(1+l2*(v[r]*v[r]+u[c]*u[c]))))
			field[r][c] *= chirp * norm
		}
	}

	ff := &FarField{Field: field, X: make([]float64, nx), Y: make([]float64, ny)}
	for c := range u {
		ff.X[c] = u[c] * wavelength * z
	}
	for r := range v {
		ff.Y[r] = v[r] * wavelength * z
	}
	return ff, nil
}

// sphericalPhase returns exp(-i k sqrt(z^2 + x^2 + y^2)).
func sphericalPhase(k, z, x, y float64) complex128 {
	return cmplx.Exp(complex(0, -k*math.Sqrt(z*z+x*x+y*y)))
}

func checkFarField(grid Grid, w Wavefront, wavelength, z float64) (ny, nx int, err error) {
	if wavelength <= 0 || math.IsNaN(wavelength) {
		return 0, 0, fmt.Errorf("%w: %g", ErrInvalidWavelength, wavelength)
	}
	if z <= 0 || math.IsNaN(z) {
		return 0, 0, fmt.Errorf("%w: detector distance %g must be positive", ErrInvalidParameter, z)
	}
	ny, nx, err = w.Shape()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrIncompatibleGrid, err)
	}
	if _, gy, gx := grid.Dims(); gy != ny || gx != nx {
		return 0, 0, fmt.Errorf("%w: grid is %dx%d, wavefront is %dx%d", ErrIncompatibleGrid, gy, gx, ny, nx)
	}
	return ny, nx, nil
}
