package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/multislice/lineout"
	"github.com/bob-anderson-ok/multislice/multislice"
)

const version = "1_0_0"

// Output file names, written into the configured output folder.
const (
	intensity8bitFile    = "intensity8bit.png"
	intensity16bitFile   = "intensity16bit.png"
	intensityHeatmapFile = "intensityHeatmap.png"
	profileFile          = "profile.png"
)

// detectorResult is the field at the chosen detector with its sampling axes.
type detectorResult struct {
	field multislice.Wavefront
	x, y  []float64
}

func main() {
	programStart := time.Now()

	args := os.Args
	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: multislice <parameter-file>")
		os.Exit(1)
	}
	path := args[1]

	// Read the JSON5 (or YAML) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	table, err := parseParameterTable(path, data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var params SimulationParams
	msg, ok := validateParamsAndFill(table, &params)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	logger := newLogger(params.LogLevel)

	if params.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete parameter file contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)
	fmt.Printf("Grid is %d slices of %dx%d voxels (%g x %g x %g nm)\n",
		params.NumSlices, params.NumRows, params.NumCols, params.VoxelXNm, params.VoxelYNm, params.VoxelZNm)
	fmt.Printf("Wavelength is %0.6g nm\n", params.WavelengthNm)

	if err := os.MkdirAll(params.OutputFolder, 0o755); err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not create output folder %q: %w\n", params.OutputFolder, err))
		os.Exit(5)
	}

	start := time.Now()
	grid, err := buildMaterialGrid(&params)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBuilding the material grid failed: %w\n", err))
		os.Exit(6)
	}
	fmt.Printf("Painting %d phantoms into the grid took %s\n", len(params.Phantoms), time.Since(start))

	initial, err := multislice.Initialize(params.NumRows, params.NumCols, params.WavefrontType, params.ApertureWidth)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tInitializing the wavefront failed: %w\n", err))
		os.Exit(7)
	}

	start = time.Now()
	result, err := runDetectorModel(&params, grid, initial, logger)
	if err != nil {
		logger.Error("propagation failed", "model", params.DetectorModel, "error", err)
		fmt.Println(fmt.Errorf("\n\tPropagation failed: %w\n", err))
		os.Exit(8)
	}
	fmt.Printf("Propagation with the %s detector model took %s\n", params.DetectorModel, time.Since(start))

	intensity := result.field.Intensity()
	flat := Flatten2D(intensity)
	fmt.Printf("Intensity min %0.4g, max %0.4g, total %0.4g\n", floats.Min(flat), floats.Max(flat), floats.Sum(flat))

	start = time.Now()

	// User-friendly view: log intensity with a percentile stretch
	view, err := MatrixToGrayViewPercentile(LogIntensity(intensity, 1e-12), 0.5, 99.5)
	if err != nil {
		fmt.Println(fmt.Errorf("creation of the display image failed: %w", err))
		os.Exit(9)
	}
	viewFile := filepath.Join(params.OutputFolder, intensity8bitFile)
	if err = SavePNG(viewFile, view); err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", viewFile, err))
		os.Exit(10)
	}

	// Scientific version with a well-defined scale
	scale := Gray16Scale(intensity)
	dataImage, err := MatrixToGray16Data(intensity, scale)
	if err != nil {
		fmt.Println(fmt.Errorf("creation of the data image failed: %w", err))
		os.Exit(9)
	}
	dataFile := filepath.Join(params.OutputFolder, intensity16bitFile)
	if err = SavePNG(dataFile, dataImage); err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", dataFile, err))
		os.Exit(10)
	}
	fmt.Printf("%s written with scale %g (pixel value = intensity * scale)\n", intensity16bitFile, scale)

	var heatImg image.Image
	if len(result.x) > 1 && len(result.y) > 1 {
		heatImg, err = makeHeatMapImage(params.Title+" log10 intensity", LogIntensity(intensity, 1e-12), result.x, result.y, 800, 700)
		if err != nil {
			fmt.Println(fmt.Errorf("creation of the heat map failed: %w", err))
			os.Exit(11)
		}
		heatFile := filepath.Join(params.OutputFolder, intensityHeatmapFile)
		if err = SavePNG(heatFile, heatImg); err != nil {
			fmt.Println(fmt.Errorf("writing of %q failed: %w", heatFile, err))
			os.Exit(10)
		}
	} else {
		logger.Warn("heat map skipped", "rows", len(result.y), "cols", len(result.x))
	}

	// Central-row profile
	var profileImg image.Image
	profilePath, err := lineout.HorizontalPath(params.NumCols, params.NumRows, params.NumRows/2, axisPitch(result.x))
	if err != nil {
		logger.Warn("profile skipped", "error", err)
		profilePath = nil
	} else {
		profile := lineout.Extract(intensity, profilePath)
		profileImg, err = lineout.PlotProfile(profile, lineout.PlotOptions{
			Title:  "Intensity along the central row",
			XLabel: "distance (nm)",
			YLabel: "intensity",
			Width:  1200,
			Height: 500,
		})
		if err != nil {
			fmt.Println(fmt.Errorf("creation of the profile plot failed: %w", err))
			os.Exit(12)
		}
		pFile := filepath.Join(params.OutputFolder, profileFile)
		if err = lineout.SaveImageToFile(pFile, profileImg); err != nil {
			fmt.Println(fmt.Errorf("writing of %q failed: %w", pFile, err))
			os.Exit(10)
		}
	}

	fmt.Printf("Writing the output images took %s\n", time.Since(start))
	fmt.Printf("\nTotal program run time is %s\n", time.Since(programStart))

	if params.WindowSizePixels > 0 {
		showResults(&params, view, profilePath, heatImg, profileImg)
	}
}

// runDetectorModel runs the slab loop and, for the far-field models, the
// selected detector propagation.
func runDetectorModel(p *SimulationParams, grid *multislice.MaterialGrid, initial multislice.Wavefront,
	logger *slog.Logger) (*detectorResult, error) {
	src := multislice.Source{Wavelength: p.WavelengthNm}

	opts := []multislice.Option{multislice.WithLogger(logger)}
	if p.HasFreePropagation {
		opts = append(opts, multislice.WithFreePropagation(p.FreePropagationNm))
	}

	exit, err := multislice.Run(grid, src, initial, opts...)
	if err != nil {
		return nil, err
	}

	switch p.DetectorModel {
	case detectorFresnel:
		ff, err := multislice.FresnelFarField(multislice.NewMeshedGrid(grid), exit, p.WavelengthNm, p.DetectorDistanceNm)
		if err != nil {
			return nil, err
		}
		logger.Info("far field computed", "model", p.DetectorModel, "pitch_nm", axisPitch(ff.X))
		return &detectorResult{field: ff.Field, x: ff.X, y: ff.Y}, nil
	case detectorChirp:
		ff, err := multislice.ChirpFarField(grid, exit, p.WavelengthNm, p.DetectorDistanceNm)
		if err != nil {
			return nil, err
		}
		logger.Info("far field computed", "model", p.DetectorModel, "pitch_nm", axisPitch(ff.X))
		return &detectorResult{field: ff.Field, x: ff.X, y: ff.Y}, nil
	}

	return &detectorResult{
		field: exit,
		x:     multislice.CoordinateAxis(p.NumCols, p.VoxelXNm),
		y:     multislice.CoordinateAxis(p.NumRows, p.VoxelYNm),
	}, nil
}

func axisPitch(axis []float64) float64 {
	if len(axis) < 2 {
		return 0
	}
	return axis[1] - axis[0]
}

func showResults(p *SimulationParams, view *image.Gray, path *lineout.Path, heatImg, profileImg image.Image) {
	size := float32(p.WindowSizePixels)

	myApp := app.NewWithID("com.gmail.ok.anderson.bob.multislice")
	w := myApp.NewWindow(p.Title + " - detector intensity (log scale)")
	w.SetPadded(false)
	w.CenterOnScreen()

	var display image.Image = view
	if path != nil {
		// Red start dot to green end dot marks the profile row
		display = lineout.DrawPathOnImage(view, path)
	}
	img := canvas.NewImageFromImage(display)
	img.FillMode = canvas.ImageFillContain
	w.SetContent(container.NewStack(img))
	w.Resize(fyne.NewSize(size, size))
	w.Show()

	if heatImg != nil {
		heat := canvas.NewImageFromImage(heatImg)
		heat.FillMode = canvas.ImageFillContain
		heat.SetMinSize(fyne.NewSize(800, 700))

		w2 := myApp.NewWindow("Heat map")
		w2.SetContent(container.NewCenter(heat))
		w2.Resize(fyne.NewSize(820, 720))
		w2.Show()
	}

	if profileImg != nil {
		plotImg := canvas.NewImageFromImage(profileImg)
		plotImg.FillMode = canvas.ImageFillContain
		plotImg.SetMinSize(fyne.NewSize(1200, 500))

		w3 := myApp.NewWindow("Central row profile")
		w3.SetContent(container.NewCenter(plotImg))
		w3.Resize(fyne.NewSize(950, 550))
		w3.Show()
	}

	w.ShowAndRun()
}
