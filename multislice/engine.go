package multislice

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	freeProp *float64
	logger   *slog.Logger
	observe  func(i int, w Wavefront)
}

// WithFreePropagation adds a final free-space propagation over distance
// after the last slab, using the grid's lateral pitch.
func WithFreePropagation(distance float64) Option {
	return func(c *runConfig) {
		d := distance
		c.freeProp = &d
	}
}

// WithLogger sets the logger used for progress records. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSliceObserver registers f to receive the wavefront leaving each slab,
// after its propagation step. f must not modify w.
func WithSliceObserver(f func(i int, w Wavefront)) Option {
	return func(c *runConfig) {
		c.observe = f
	}
}

// Run propagates initial through every slab of grid in order and returns
// the exit wavefront. Each slab is applied with ApplySlice and followed by
// Propagate over the slab thickness; slab i+1 always sees the output of slab i.
//
// Run fails with ErrInvalidWavelength or ErrIncompatibleGrid before any
// transform is computed.
func Run(grid Grid, src Source, initial Wavefront, opts ...Option) (Wavefront, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Everything is validated before the first transform.
	lambda := src.Wavelength
	if lambda <= 0 || math.IsNaN(lambda) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidWavelength, lambda)
	}
	ny, nx, err := initial.Shape()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleGrid, err)
	}
	if err := checkGrid(grid, ny, nx); err != nil {
		return nil, err
	}

	nSlices, _, _ := grid.Dims()
	vx, vy, vz := grid.Voxel()
	start := time.Now()

	// Slabs are strictly sequential.
	w := initial
	for i := 0; i < nSlices; i++ {
		delta, beta := grid.Slice(i)
		if w, err = ApplySlice(delta, beta, w, lambda, vz); err != nil {
			return nil, &StepError{Slice: i, Stage: StageModify, Err: err}
		}
		if w, err = Propagate(w, lambda, vz, vx, vy); err != nil {
			return nil, &StepError{Slice: i, Stage: StagePropagate, Err: err}
		}
		cfg.logger.Debug("slice propagated", "slice", i, "of", nSlices)
		if cfg.observe != nil {
			cfg.observe(i, w)
		}
	}

	// Free propagation to the detector.
	if cfg.freeProp != nil {
		if w, err = Propagate(w, lambda, *cfg.freeProp, vx, vy); err != nil {
			return nil, &StepError{Slice: -1, Stage: StageFreeProp, Err: err}
		}
		cfg.logger.Debug("free propagation done", "distance", *cfg.freeProp)
	}

	cfg.logger.Info("multislice run complete",
		"slices", nSlices, "shape", fmt.Sprintf("%dx%d", ny, nx),
		"wavelength", lambda, "elapsed", time.Since(start))

	if nSlices == 0 && cfg.freeProp == nil {
		return initial.Clone(), nil
	}
	return w, nil
}

// checkGrid verifies that every slice of grid has the lateral shape (ny, nx).
func checkGrid(grid Grid, ny, nx int) error {
	nSlices, gy, gx := grid.Dims()
	if gy != ny || gx != nx {
		return fmt.Errorf("%w: grid is %dx%d, wavefront is %dx%d", ErrIncompatibleGrid, gy, gx, ny, nx)
	}
	for i := 0; i < nSlices; i++ {
		delta, beta := grid.Slice(i)
		if r, c := delta.Dims(); r != ny || c != nx {
			return fmt.Errorf("%w: delta slice %d is %dx%d, wavefront is %dx%d", ErrIncompatibleGrid, i, r, c, ny, nx)
		}
		if r, c := beta.Dims(); r != ny || c != nx {
			return fmt.Errorf("%w: beta slice %d is %dx%d, wavefront is %dx%d", ErrIncompatibleGrid, i, r, c, ny, nx)
		}
	}
	return nil
}
