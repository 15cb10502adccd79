package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	json "github.com/KevinWang15/go-json5"
	"gopkg.in/yaml.v3"

	"github.com/bob-anderson-ok/multislice/multislice"
)

// Detector models selectable in the parameter file.
const (
	detectorMultislice = "multislice"
	detectorFresnel    = "fresnel"
	detectorChirp      = "chirp"
)

type PhantomSpec struct {
	Shape    string // "ellipsoid" or "cuboid"
	CenterNm [3]float64
	SizeNm   [3]float64 // diameters for ellipsoids, edge lengths for cuboids
	Delta    float64
	Beta     float64
}

type SimulationParams struct {
	Title              string
	ShowInput          bool
	WindowSizePixels   int
	OutputFolder       string
	NumSlices          int
	NumRows            int
	NumCols            int
	VoxelXNm           float64
	VoxelYNm           float64
	VoxelZNm           float64
	WavelengthNm       float64 // from wavelength_nm, or derived from energy_kev
	EnergyKeV          float64
	WavefrontType      multislice.Kind
	ApertureWidth      int
	FreePropagationNm  float64
	HasFreePropagation bool
	DetectorModel      string
	DetectorDistanceNm float64
	Phantoms           []PhantomSpec
	LogLevel           slog.Level
}

// parseParameterTable decodes a parameter file into a generic table. Files
// ending in .yaml or .yml are read as YAML, everything else as JSON5.
func parseParameterTable(path string, data []byte) (map[string]interface{}, error) {
	var table map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	}
	if table == nil {
		return nil, fmt.Errorf("no parameters found")
	}
	return table, nil
}

func getLeafValue(table map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = table
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// asNumber accepts the numeric types produced by both decoders: JSON5 yields
// float64, YAML yields int for integral literals.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func optionalNumber(table map[string]interface{}, key string) (value float64, present bool, msg string) {
	raw, ok := getLeafValue(table, key)
	if !ok {
		return 0, false, ""
	}
	value, ok = asNumber(raw)
	if !ok {
		return 0, true, key + ": is not a number"
	}
	return value, true, ""
}

func requiredPositive(table map[string]interface{}, key string) (float64, string) {
	value, present, msg := optionalNumber(table, key)
	if msg != "" {
		return 0, msg
	}
	if !present {
		return 0, key + ": not found"
	}
	if value <= 0 {
		return 0, fmt.Sprintf("%s: must be positive, got %g", key, value)
	}
	return value, ""
}

func optionalString(table map[string]interface{}, key string) (string, bool, string) {
	raw, ok := getLeafValue(table, key)
	if !ok {
		return "", false, ""
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, key + ": is not a string"
	}
	return s, true, ""
}

func validateParamsAndFill(table map[string]interface{}, p *SimulationParams) (string, bool) {
	var msg string
	var ok bool
	var present bool

	if p.Title, _, msg = optionalString(table, "title"); msg != "" {
		return msg, false
	}

	if showInput, found := getLeafValue(table, "show_input_bool"); found {
		p.ShowInput, ok = showInput.(bool)
		if !ok {
			return "show_input_bool: is not a bool", false
		}
	}

	windowSize, _, msg := optionalNumber(table, "window_size_pixels")
	if msg != "" {
		return msg, false
	}
	if windowSize < 0 {
		return "window_size_pixels: must not be negative", false
	}
	p.WindowSizePixels = int(windowSize)

	if p.OutputFolder, present, msg = optionalString(table, "output_folder"); msg != "" {
		return msg, false
	}
	if !present || p.OutputFolder == "" {
		p.OutputFolder = "."
	}

	for _, dim := range []struct {
		key string
		dst *int
	}{
		{"grid_num_slices", &p.NumSlices},
		{"grid_num_rows", &p.NumRows},
		{"grid_num_cols", &p.NumCols},
	} {
		v, m := requiredPositive(table, dim.key)
		if m != "" {
			return m, false
		}
		if v != float64(int(v)) {
			return dim.key + ": is not a whole number", false
		}
		*dim.dst = int(v)
	}

	for _, voxel := range []struct {
		key string
		dst *float64
	}{
		{"voxel_x_nm", &p.VoxelXNm},
		{"voxel_y_nm", &p.VoxelYNm},
		{"voxel_z_nm", &p.VoxelZNm},
	} {
		v, m := requiredPositive(table, voxel.key)
		if m != "" {
			return m, false
		}
		*voxel.dst = v
	}

	// Wavelength takes precedence over energy when both are given.
	if _, found := getLeafValue(table, "wavelength_nm"); found {
		if p.WavelengthNm, msg = requiredPositive(table, "wavelength_nm"); msg != "" {
			return msg, false
		}
	} else if _, found := getLeafValue(table, "energy_kev"); found {
		if p.EnergyKeV, msg = requiredPositive(table, "energy_kev"); msg != "" {
			return msg, false
		}
		src, err := multislice.SourceFromEnergy(p.EnergyKeV)
		if err != nil {
			return "energy_kev: " + err.Error(), false
		}
		p.WavelengthNm = src.Wavelength
	} else {
		return "wavelength_nm: not found (give wavelength_nm or energy_kev)", false
	}

	kindName, present, msg := optionalString(table, "wavefront_type")
	if msg != "" {
		return msg, false
	}
	if !present {
		kindName = multislice.Plane.String()
	}
	kind, err := multislice.ParseKind(kindName)
	if err != nil {
		return fmt.Sprintf("wavefront_type: %q is not one of plane, point", kindName), false
	}
	p.WavefrontType = kind
	if kind == multislice.Point {
		width, m := requiredPositive(table, "aperture_width_pixels")
		if m != "" {
			return m, false
		}
		p.ApertureWidth = int(width)
		if p.ApertureWidth > min(p.NumRows, p.NumCols) {
			return fmt.Sprintf("aperture_width_pixels: %d does not fit in a %dx%d grid",
				p.ApertureWidth, p.NumRows, p.NumCols), false
		}
	}

	if p.FreePropagationNm, p.HasFreePropagation, msg = optionalNumber(table, "free_propagation_distance_nm"); msg != "" {
		return msg, false
	}

	if p.DetectorModel, present, msg = optionalString(table, "detector_model"); msg != "" {
		return msg, false
	}
	if !present {
		p.DetectorModel = detectorMultislice
	}
	switch p.DetectorModel {
	case detectorMultislice:
	case detectorFresnel, detectorChirp:
		if p.DetectorDistanceNm, msg = requiredPositive(table, "detector_distance_nm"); msg != "" {
			return msg, false
		}
	default:
		return fmt.Sprintf("detector_model: %q is not one of multislice, fresnel, chirp", p.DetectorModel), false
	}

	if raw, found := getLeafValue(table, "phantoms"); found {
		list, ok := raw.([]interface{})
		if !ok {
			return "phantoms: is not a list", false
		}
		for i, item := range list {
			ph, m := parsePhantom(item, fmt.Sprintf("phantoms[%d]", i))
			if m != "" {
				return m, false
			}
			p.Phantoms = append(p.Phantoms, ph)
		}
	}

	levelName, present, msg := optionalString(table, "log_level")
	if msg != "" {
		return msg, false
	}
	if present {
		if err := p.LogLevel.UnmarshalText([]byte(levelName)); err != nil {
			return fmt.Sprintf("log_level: %q is not one of debug, info, warn, error", levelName), false
		}
	}

	return "No problem found in parameter file", true
}

func parsePhantom(item interface{}, name string) (PhantomSpec, string) {
	var ph PhantomSpec
	table, ok := item.(map[string]interface{})
	if !ok {
		return ph, name + ": is not a table"
	}

	shape, present, msg := optionalString(table, "shape")
	if msg != "" {
		return ph, name + "." + msg
	}
	if !present {
		return ph, name + ".shape: not found"
	}
	if shape != shapeEllipsoid && shape != shapeCuboid {
		return ph, fmt.Sprintf("%s.shape: %q is not one of ellipsoid, cuboid", name, shape)
	}
	ph.Shape = shape

	for _, vec := range []struct {
		key string
		dst *[3]float64
	}{
		{"center_nm", &ph.CenterNm},
		{"size_nm", &ph.SizeNm},
	} {
		raw, found := getLeafValue(table, vec.key)
		if !found {
			return ph, name + "." + vec.key + ": not found"
		}
		list, ok := raw.([]interface{})
		if !ok || len(list) != 3 {
			return ph, name + "." + vec.key + ": is not a list of 3 numbers"
		}
		for j, v := range list {
			if vec.dst[j], ok = asNumber(v); !ok {
				return ph, name + "." + vec.key + ": is not a list of 3 numbers"
			}
		}
	}
	for _, s := range ph.SizeNm {
		if s <= 0 {
			return ph, name + ".size_nm: sizes must be positive"
		}
	}

	for _, c := range []struct {
		key string
		dst *float64
	}{
		{"delta", &ph.Delta},
		{"beta", &ph.Beta},
	} {
		v, present, m := optionalNumber(table, c.key)
		if m != "" {
			return ph, name + "." + m
		}
		if !present {
			return ph, name + "." + c.key + ": not found"
		}
		*c.dst = v
	}
	return ph, ""
}
