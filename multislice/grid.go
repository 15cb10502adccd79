package multislice

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// hcKeVNm converts photon energy in keV to wavelength in nm (lambda = hc/E).
const hcKeVNm = 1.23984

// Grid is the read-only view of a material volume that the engine needs.
// Slices are ordered along the beam: slice 0 is met first.
type Grid interface {
	Dims() (nSlices, nY, nX int)
	Voxel() (x, y, z float64)
	Slice(i int) (delta, beta mat.Matrix)
}

// CoordinateGrid is a Grid that also carries lateral coordinate meshes.
type CoordinateGrid interface {
	Grid
	LateralMesh() (xx, yy mat.Matrix)
}

// MaterialGrid holds per-slice delta and beta values and the voxel pitch.
type MaterialGrid struct {
	Delta []*mat.Dense
	Beta  []*mat.Dense

	VoxelX float64
	VoxelY float64
	VoxelZ float64
}

// NewMaterialGrid validates the slices and pitches and returns a grid.
// Every delta and beta slice must have the same (nY, nX) shape.
func NewMaterialGrid(delta, beta []*mat.Dense, voxelX, voxelY, voxelZ float64) (*MaterialGrid, error) {
	if len(delta) == 0 {
		return nil, fmt.Errorf("%w: grid has no slices", ErrIncompatibleShape)
	}
	if len(delta) != len(beta) {
		return nil, fmt.Errorf("%w: %d delta slices, %d beta slices", ErrIncompatibleShape, len(delta), len(beta))
	}
	if voxelX <= 0 || voxelY <= 0 || voxelZ <= 0 {
		return nil, fmt.Errorf("%w: voxel pitch (%g, %g, %g) must be positive", ErrInvalidParameter, voxelX, voxelY, voxelZ)
	}

	ny, nx := delta[0].Dims()
	for i := range delta {
		if r, c := delta[i].Dims(); r != ny || c != nx {
			return nil, fmt.Errorf("%w: delta slice %d is %dx%d, want %dx%d", ErrIncompatibleShape, i, r, c, ny, nx)
		}
		if r, c := beta[i].Dims(); r != ny || c != nx {
			return nil, fmt.Errorf("%w: beta slice %d is %dx%d, want %dx%d", ErrIncompatibleShape, i, r, c, ny, nx)
		}
	}

	return &MaterialGrid{
		Delta:  delta,
		Beta:   beta,
		VoxelX: voxelX,
		VoxelY: voxelY,
		VoxelZ: voxelZ,
	}, nil
}

// NewVacuumGrid returns a grid of the given shape with delta and beta zero
// everywhere. Callers may paint material into the returned slices.
func NewVacuumGrid(nSlices, ny, nx int, voxelX, voxelY, voxelZ float64) (*MaterialGrid, error) {
	if nSlices < 1 || ny < 1 || nx < 1 {
		return nil, fmt.Errorf("%w: grid shape (%d, %d, %d)", ErrInvalidParameter, nSlices, ny, nx)
	}
	delta := make([]*mat.Dense, nSlices)
	beta := make([]*mat.Dense, nSlices)
	for i := 0; i < nSlices; i++ {
		delta[i] = mat.NewDense(ny, nx, nil)
		beta[i] = mat.NewDense(ny, nx, nil)
	}
	return NewMaterialGrid(delta, beta, voxelX, voxelY, voxelZ)
}

func (g *MaterialGrid) Dims() (nSlices, nY, nX int) {
	nY, nX = g.Delta[0].Dims()
	return len(g.Delta), nY, nX
}

func (g *MaterialGrid) Voxel() (x, y, z float64) {
	return g.VoxelX, g.VoxelY, g.VoxelZ
}

func (g *MaterialGrid) Slice(i int) (delta, beta mat.Matrix) {
	return g.Delta[i], g.Beta[i]
}

// MeshedGrid is a MaterialGrid with lateral coordinate meshes. XX varies
// along columns and YY along rows; both are centred on the grid middle.
type MeshedGrid struct {
	*MaterialGrid

	XX *mat.Dense
	YY *mat.Dense
}

// NewMeshedGrid builds the coordinate meshes for g.
func NewMeshedGrid(g *MaterialGrid) *MeshedGrid {
	_, ny, nx := g.Dims()
	x := CoordinateAxis(nx, g.VoxelX)
	y := CoordinateAxis(ny, g.VoxelY)

	xx := mat.NewDense(ny, nx, nil)
	yy := mat.NewDense(ny, nx, nil)
	for r := 0; r < ny; r++ {
		xx.SetRow(r, x)
		for c := 0; c < nx; c++ {
			yy.Set(r, c, y[r])
		}
	}
	return &MeshedGrid{MaterialGrid: g, XX: xx, YY: yy}
}

func (g *MeshedGrid) LateralMesh() (xx, yy mat.Matrix) {
	return g.XX, g.YY
}

// CoordinateAxis returns n sample positions (j - (n-1)/2) * pitch, symmetric about zero.
func CoordinateAxis(n int, pitch float64) []float64 {
	axis := make([]float64, n)
	if n < 2 {
		return axis
	}
	half := float64(n-1) / 2
	floats.Span(axis, -half*pitch, half*pitch)
	return axis
}

// Source is the radiation source. Wavelength uses the same length unit as the grid pitch.
type Source struct {
	Wavelength float64
}

// SourceFromEnergy returns a source whose wavelength, in nm, corresponds to
// a photon energy given in keV.
func SourceFromEnergy(keV float64) (Source, error) {
	if keV <= 0 {
		return Source{}, fmt.Errorf("%w: energy %g keV", ErrInvalidParameter, keV)
	}
	return Source{Wavelength: hcKeVNm / keV}, nil
}
