// Example program propagating a plane wave through a thin absorbing disc
// and writing the central intensity profile of the exit wavefront.
//
// Usage:
//
//	go run main.go
//
// The profile plot is written to exitProfile.png in the current directory.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bob-anderson-ok/multislice/lineout"
	"github.com/bob-anderson-ok/multislice/multislice"
	"gonum.org/v1/gonum/mat"
)

func main() {
	fmt.Println("Multislice Propagation Example")
	fmt.Println("==============================")

	const (
		n       = 128
		slices  = 8
		voxelNm = 5.0
	)

	// 10 keV x-rays through a disc of radius 20 voxels
	src, err := multislice.SourceFromEnergy(10)
	if err != nil {
		log.Fatalf("Failed to build source: %v", err)
	}

	delta := make([]*mat.Dense, slices)
	beta := make([]*mat.Dense, slices)
	for s := range delta {
		delta[s] = mat.NewDense(n, n, nil)
		beta[s] = mat.NewDense(n, n, nil)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy := float64(x-n/2), float64(y-n/2)
				if dx*dx+dy*dy < 20*20 {
					delta[s].Set(y, x, 3e-5)
					beta[s].Set(y, x, 2e-6)
				}
			}
		}
	}
	grid, err := multislice.NewMaterialGrid(delta, beta, voxelNm, voxelNm, voxelNm*100)
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}

	initial, err := multislice.Initialize(n, n, multislice.Plane, 0)
	if err != nil {
		log.Fatalf("Failed to initialise wavefront: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	start := time.Now()
	exit, err := multislice.Run(grid, src, initial,
		multislice.WithFreePropagation(50000),
		multislice.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Propagation failed: %v", err)
	}
	fmt.Printf("Propagated %d slices in %s\n", slices, time.Since(start))

	intensity := exit.Intensity()
	path, err := lineout.HorizontalPath(n, n, n/2, voxelNm)
	if err != nil {
		log.Fatalf("Failed to compute path: %v", err)
	}
	profile := lineout.Extract(intensity, path)
	fmt.Printf("Centre intensity: %.4f\n", intensity[n/2][n/2])
	fmt.Printf("Edge intensity: %.4f\n", intensity[n/2][0])

	err = lineout.SaveProfilePlot("exitProfile.png", profile, lineout.PlotOptions{
		Title:  "Exit intensity, central row",
		XLabel: "x (nm)",
		YLabel: "intensity",
		Width:  1000,
		Height: 500,
	})
	if err != nil {
		log.Printf("Could not save profile plot: %v\n", err)
	} else {
		fmt.Println("Saved profile plot to exitProfile.png")
	}
}
