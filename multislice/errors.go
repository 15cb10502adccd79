package multislice

import (
	"errors"
	"fmt"
)

// Error kinds returned by the propagation routines. Use errors.Is to test for them.
var (
	// ErrIncompatibleShape indicates operands that should share a lateral shape do not.
	ErrIncompatibleShape = errors.New("multislice: incompatible shape")

	// ErrIncompatibleGrid indicates the grid lateral shape disagrees with the wavefront.
	ErrIncompatibleGrid = errors.New("multislice: grid does not match wavefront")

	// ErrInvalidWavelength indicates a non-positive wavelength.
	ErrInvalidWavelength = errors.New("multislice: wavelength must be positive")

	// ErrUnsupportedGridType indicates a grid without lateral coordinate meshes
	// was handed to an operation that needs them.
	ErrUnsupportedGridType = errors.New("multislice: grid has no lateral coordinate mesh")

	// ErrInvalidParameter indicates a scalar argument outside its valid range.
	ErrInvalidParameter = errors.New("multislice: invalid parameter")
)

// Stage names the step of the slab loop that failed.
type Stage string

const (
	StageModify    Stage = "modify"
	StagePropagate Stage = "propagate"
	StageFreeProp  Stage = "free-propagate"
)

// StepError wraps an error raised inside the slab loop with the slice index
// and stage at which it happened. Slice is -1 for the final free propagation.
type StepError struct {
	Slice int
	Stage Stage
	Err   error
}

func (e *StepError) Error() string {
	if e.Slice < 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("slice %d %s: %v", e.Slice, e.Stage, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
