package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntensityGridFlipsRows(t *testing.T) {
	g := intensityGrid{
		m: [][]float64{{1, 2, 3}, {4, 5, 6}},
		x: []float64{-1, 0, 1},
		y: []float64{-0.5, 0.5},
	}
	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 4.0, g.Z(0, 0))
	assert.Equal(t, 3.0, g.Z(2, 1))
	assert.Equal(t, 1.0, g.X(2))
	assert.Equal(t, 0.5, g.Y(1))
}

func TestMakeHeatMapImage(t *testing.T) {
	m := [][]float64{{0, 1}, {2, 3}}
	img, err := makeHeatMapImage("test", m, []float64{-1, 1}, []float64{-1, 1}, 400, 300)
	require.NoError(t, err)
	assert.InDelta(t, 400, img.Bounds().Dx(), 1)
	assert.InDelta(t, 300, img.Bounds().Dy(), 1)

	_, err = makeHeatMapImage("test", m, []float64{0}, []float64{-1, 1}, 400, 300)
	assert.Error(t, err)
	_, err = makeHeatMapImage("test", m, []float64{-1, 0, 1}, []float64{-1, 1}, 400, 300)
	assert.Error(t, err)
}
