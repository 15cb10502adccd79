package multislice

import (
	"gonum.org/v1/gonum/mat"
)

// FrequencyMesh holds spatial frequencies on the lateral grid, in cycles per
// length unit. U varies along columns (x) and V along rows (y).
type FrequencyMesh struct {
	U *mat.Dense
	V *mat.Dense
}

// FrequencyAxis returns the frequencies of an fftshift-ed spectrum of n
// samples at the given pitch: (j - n/2) / (n * pitch). Zero frequency sits at
// index n/2 and the axis covers the Nyquist band [-1/(2*pitch), 1/(2*pitch)].
func FrequencyAxis(n int, pitch float64) []float64 {
	axis := make([]float64, n)
	step := 1 / (float64(n) * pitch)
	for j := range axis {
		axis[j] = float64(j-n/2) * step
	}
	return axis
}

// BuildMesh returns the frequency mesh for a (ny, nx) grid with the given pitch.
// Its ordering matches fftshift2D, which Propagate relies on.
func BuildMesh(ny, nx int, voxelX, voxelY float64) FrequencyMesh {
	u := FrequencyAxis(nx, voxelX)
	v := FrequencyAxis(ny, voxelY)

	mesh := FrequencyMesh{
		U: mat.NewDense(ny, nx, nil),
		V: mat.NewDense(ny, nx, nil),
	}
	for r := 0; r < ny; r++ {
		mesh.U.SetRow(r, u)
		for c := 0; c < nx; c++ {
			mesh.V.Set(r, c, v[r])
		}
	}
	return mesh
}
