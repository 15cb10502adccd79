package multislice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewMaterialGridValidation(t *testing.T) {
	ok := []*mat.Dense{mat.NewDense(3, 4, nil), mat.NewDense(3, 4, nil)}

	_, err := NewMaterialGrid(nil, nil, 1, 1, 1)
	assert.ErrorIs(t, err, ErrIncompatibleShape)

	_, err = NewMaterialGrid(ok, ok[:1], 1, 1, 1)
	assert.ErrorIs(t, err, ErrIncompatibleShape)

	mixed := []*mat.Dense{mat.NewDense(3, 4, nil), mat.NewDense(4, 4, nil)}
	_, err = NewMaterialGrid(ok, mixed, 1, 1, 1)
	assert.ErrorIs(t, err, ErrIncompatibleShape)

	_, err = NewMaterialGrid(ok, ok, 1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	g, err := NewMaterialGrid(ok, ok, 1, 2, 3)
	require.NoError(t, err)
	n, ny, nx := g.Dims()
	assert.Equal(t, [3]int{2, 3, 4}, [3]int{n, ny, nx})
	x, y, z := g.Voxel()
	assert.Equal(t, [3]float64{1, 2, 3}, [3]float64{x, y, z})
}

func TestNewVacuumGrid(t *testing.T) {
	_, err := NewVacuumGrid(0, 4, 4, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	g, err := NewVacuumGrid(2, 3, 5, 1, 1, 1)
	require.NoError(t, err)
	delta, beta := g.Slice(1)
	assert.Equal(t, 0.0, mat.Max(delta))
	assert.Equal(t, 0.0, mat.Max(beta))
}

func TestCoordinateAxis(t *testing.T) {
	assert.InDeltaSlice(t, []float64{-1.5, -0.5, 0.5, 1.5}, CoordinateAxis(4, 1), 1e-15)
	assert.InDeltaSlice(t, []float64{-2, 0, 2}, CoordinateAxis(3, 2), 1e-15)
	assert.Equal(t, []float64{0}, CoordinateAxis(1, 5))
}

func TestMeshedGrid(t *testing.T) {
	g, err := NewVacuumGrid(1, 2, 3, 0.5, 2, 1)
	require.NoError(t, err)
	mg := NewMeshedGrid(g)

	var cg CoordinateGrid = mg
	xx, yy := cg.LateralMesh()
	assert.InDelta(t, -0.5, xx.At(1, 0), 1e-15)
	assert.InDelta(t, 0.5, xx.At(0, 2), 1e-15)
	assert.InDelta(t, -1, yy.At(0, 2), 1e-15)
	assert.InDelta(t, 1, yy.At(1, 1), 1e-15)

	_, isMeshed := Grid(g).(CoordinateGrid)
	assert.False(t, isMeshed)
}

func TestSourceFromEnergy(t *testing.T) {
	src, err := SourceFromEnergy(10)
	require.NoError(t, err)
	assert.InDelta(t, 0.123984, src.Wavelength, 1e-12)

	_, err = SourceFromEnergy(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
