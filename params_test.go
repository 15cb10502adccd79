package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/multislice/multislice"
)

const minimalJSON5 = `{
	// JSON5 allows comments and trailing commas
	"grid_num_slices": 2,
	"grid_num_rows": 8,
	"grid_num_cols": 16,
	"voxel_x_nm": 5, "voxel_y_nm": 5, "voxel_z_nm": 10,
	"wavelength_nm": 0.1,
}`

const fullYAML = `
title: sphere
show_input_bool: true
window_size_pixels: 600
output_folder: out
grid_num_slices: 4
grid_num_rows: 32
grid_num_cols: 32
voxel_x_nm: 2.5
voxel_y_nm: 2.5
voxel_z_nm: 5
energy_kev: 10
wavefront_type: point
aperture_width_pixels: 4
free_propagation_distance_nm: 1000
detector_model: chirp
detector_distance_nm: 1e6
log_level: debug
phantoms:
  - shape: ellipsoid
    center_nm: [0, 0, 0]
    size_nm: [20, 20, 20]
    delta: 1e-5
    beta: 1e-7
  - shape: cuboid
    center_nm: [5, -5, 0]
    size_nm: [4, 4, 20]
    delta: 2e-5
    beta: 0
`

func parseAndValidate(t *testing.T, name, text string) (SimulationParams, string, bool) {
	t.Helper()
	table, err := parseParameterTable(name, []byte(text))
	require.NoError(t, err)
	var p SimulationParams
	msg, ok := validateParamsAndFill(table, &p)
	return p, msg, ok
}

func TestMinimalJSON5Defaults(t *testing.T) {
	p, msg, ok := parseAndValidate(t, "run.json5", minimalJSON5)
	require.True(t, ok, msg)

	assert.Equal(t, 2, p.NumSlices)
	assert.Equal(t, 8, p.NumRows)
	assert.Equal(t, 16, p.NumCols)
	assert.Equal(t, 10.0, p.VoxelZNm)
	assert.Equal(t, 0.1, p.WavelengthNm)
	assert.Equal(t, multislice.Plane, p.WavefrontType)
	assert.Equal(t, detectorMultislice, p.DetectorModel)
	assert.Equal(t, ".", p.OutputFolder)
	assert.Equal(t, slog.LevelInfo, p.LogLevel)
	assert.False(t, p.HasFreePropagation)
	assert.Zero(t, p.WindowSizePixels)
	assert.Empty(t, p.Phantoms)
}

func TestFullYAML(t *testing.T) {
	p, msg, ok := parseAndValidate(t, "run.yaml", fullYAML)
	require.True(t, ok, msg)

	assert.Equal(t, "sphere", p.Title)
	assert.True(t, p.ShowInput)
	assert.Equal(t, 600, p.WindowSizePixels)
	assert.Equal(t, "out", p.OutputFolder)
	assert.InDelta(t, 0.123984, p.WavelengthNm, 1e-9)
	assert.Equal(t, multislice.Point, p.WavefrontType)
	assert.Equal(t, 4, p.ApertureWidth)
	assert.True(t, p.HasFreePropagation)
	assert.Equal(t, 1000.0, p.FreePropagationNm)
	assert.Equal(t, detectorChirp, p.DetectorModel)
	assert.Equal(t, 1e6, p.DetectorDistanceNm)
	assert.Equal(t, slog.LevelDebug, p.LogLevel)

	require.Len(t, p.Phantoms, 2)
	assert.Equal(t, PhantomSpec{
		Shape:    shapeCuboid,
		CenterNm: [3]float64{5, -5, 0},
		SizeNm:   [3]float64{4, 4, 20},
		Delta:    2e-5,
	}, p.Phantoms[1])
}

func TestWavelengthWinsOverEnergy(t *testing.T) {
	p, msg, ok := parseAndValidate(t, "run.json5", `{
		"grid_num_slices": 1, "grid_num_rows": 4, "grid_num_cols": 4,
		"voxel_x_nm": 1, "voxel_y_nm": 1, "voxel_z_nm": 1,
		"wavelength_nm": 0.5, "energy_kev": 10,
	}`)
	require.True(t, ok, msg)
	assert.Equal(t, 0.5, p.WavelengthNm)
}

func TestValidationMessagesNameTheKey(t *testing.T) {
	base := `grid_num_slices: 1
grid_num_rows: 4
grid_num_cols: 4
voxel_x_nm: 1
voxel_y_nm: 1
voxel_z_nm: 1
`
	tests := []struct {
		name  string
		extra string
		want  string
	}{
		{"missing wavelength", "", "wavelength_nm: not found"},
		{"negative wavelength", "wavelength_nm: -1\n", "wavelength_nm: must be positive"},
		{"bad bool", "wavelength_nm: 1\nshow_input_bool: 3\n", "show_input_bool: is not a bool"},
		{"bad kind", "wavelength_nm: 1\nwavefront_type: spherical\n", "wavefront_type:"},
		{"point without width", "wavelength_nm: 1\nwavefront_type: point\n", "aperture_width_pixels: not found"},
		{"aperture too wide", "wavelength_nm: 1\nwavefront_type: point\naperture_width_pixels: 9\n", "aperture_width_pixels: 9 does not fit"},
		{"far field without distance", "wavelength_nm: 1\ndetector_model: fresnel\n", "detector_distance_nm: not found"},
		{"unknown model", "wavelength_nm: 1\ndetector_model: lens\n", "detector_model:"},
		{"bad level", "wavelength_nm: 1\nlog_level: loud\n", "log_level:"},
		{"phantoms not a list", "wavelength_nm: 1\nphantoms: 3\n", "phantoms: is not a list"},
		{"phantom shape", "wavelength_nm: 1\nphantoms:\n  - shape: cone\n", "phantoms[0].shape:"},
		{"phantom center", "wavelength_nm: 1\nphantoms:\n  - {shape: cuboid, center_nm: [1, 2], size_nm: [1, 1, 1], delta: 0, beta: 0}\n", "phantoms[0].center_nm:"},
		{"phantom size", "wavelength_nm: 1\nphantoms:\n  - {shape: cuboid, center_nm: [1, 2, 3], size_nm: [1, 0, 1], delta: 0, beta: 0}\n", "phantoms[0].size_nm:"},
		{"phantom beta", "wavelength_nm: 1\nphantoms:\n  - {shape: cuboid, center_nm: [1, 2, 3], size_nm: [1, 1, 1], delta: 0}\n", "phantoms[0].beta: not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg, ok := parseAndValidate(t, "run.yml", base+tt.extra)
			assert.False(t, ok)
			assert.Contains(t, msg, tt.want)
		})
	}

	_, msg, ok := parseAndValidate(t, "run.yml", "grid_num_slices: 1.5\n")
	assert.False(t, ok)
	assert.Contains(t, msg, "grid_num_slices: is not a whole number")
}

func TestParseParameterTableErrors(t *testing.T) {
	_, err := parseParameterTable("bad.json5", []byte("{ unterminated"))
	assert.Error(t, err)

	_, err = parseParameterTable("bad.yaml", []byte("a: [1, 2"))
	assert.Error(t, err)

	_, err = parseParameterTable("empty.yaml", []byte(""))
	assert.Error(t, err)
}

func TestGetLeafValue(t *testing.T) {
	table := map[string]interface{}{
		"outer": map[string]interface{}{"inner": 3.0},
	}
	v, ok := getLeafValue(table, "outer", "inner")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = getLeafValue(table, "outer", "missing")
	assert.False(t, ok)
	_, ok = getLeafValue(table, "outer", "inner", "deeper")
	assert.False(t, ok)
}
