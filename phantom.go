package main

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/multislice/multislice"
)

const (
	shapeEllipsoid = "ellipsoid"
	shapeCuboid    = "cuboid"
)

// insideEllipsoid reports whether (x,y,z) is inside or on an axis-aligned
// ellipsoid centred at c with diameters d.
func insideEllipsoid(x, y, z float64, c, d [3]float64) bool {
	tx := (x - c[0]) / (d[0] / 2)
	ty := (y - c[1]) / (d[1] / 2)
	tz := (z - c[2]) / (d[2] / 2)
	return tx*tx+ty*ty+tz*tz <= 1.0
}

func insideCuboid(x, y, z float64, c, d [3]float64) bool {
	return math.Abs(x-c[0]) <= d[0]/2 &&
		math.Abs(y-c[1]) <= d[1]/2 &&
		math.Abs(z-c[2]) <= d[2]/2
}

func (ph PhantomSpec) contains(x, y, z float64) bool {
	if ph.Shape == shapeCuboid {
		return insideCuboid(x, y, z, ph.CenterNm, ph.SizeNm)
	}
	return insideEllipsoid(x, y, z, ph.CenterNm, ph.SizeNm)
}

// buildMaterialGrid paints the phantoms, in list order, into an otherwise
// empty grid. A voxel belongs to a phantom when its centre does. Coordinates
// are centred on the grid with x across columns, y down rows and z along the
// beam.
func buildMaterialGrid(p *SimulationParams) (*multislice.MaterialGrid, error) {
	xVals := multislice.CoordinateAxis(p.NumCols, p.VoxelXNm)
	yVals := multislice.CoordinateAxis(p.NumRows, p.VoxelYNm)
	zVals := multislice.CoordinateAxis(p.NumSlices, p.VoxelZNm)

	delta := make([]*mat.Dense, p.NumSlices)
	beta := make([]*mat.Dense, p.NumSlices)
	for s := 0; s < p.NumSlices; s++ {
		delta[s] = mat.NewDense(p.NumRows, p.NumCols, nil)
		beta[s] = mat.NewDense(p.NumRows, p.NumCols, nil)

		for _, ph := range p.Phantoms {
			for row := 0; row < p.NumRows; row++ {
				for col := 0; col < p.NumCols; col++ {
					if ph.contains(xVals[col], yVals[row], zVals[s]) {
						delta[s].Set(row, col, ph.Delta)
						beta[s].Set(row, col, ph.Beta)
					}
				}
			}
		}
	}

	return multislice.NewMaterialGrid(delta, beta, p.VoxelXNm, p.VoxelYNm, p.VoxelZNm)
}
