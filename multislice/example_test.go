package multislice_test

import (
	"fmt"
	"log"
	"math/cmplx"

	"github.com/bob-anderson-ok/multislice/multislice"
)

// Example propagates a plane wave through two empty slabs and checks that
// the amplitude stays at one.
func Example() {
	grid, err := multislice.NewVacuumGrid(2, 4, 4, 1.0, 1.0, 1.0)
	if err != nil {
		log.Fatal(err)
	}
	start, err := multislice.Initialize(4, 4, multislice.Plane, 0)
	if err != nil {
		log.Fatal(err)
	}

	exit, err := multislice.Run(grid, multislice.Source{Wavelength: 2.0}, start)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("amplitude at centre: %.4f\n", cmplx.Abs(exit[2][2]))
	fmt.Printf("amplitude at corner: %.4f\n", cmplx.Abs(exit[0][0]))
	// Output:
	// amplitude at centre: 1.0000
	// amplitude at corner: 1.0000
}

// ExampleChirpFarField computes the far-field pattern of a small aperture
// and reports the detector sampling.
func ExampleChirpFarField() {
	grid, err := multislice.NewVacuumGrid(1, 16, 16, 0.5, 0.5, 1.0)
	if err != nil {
		log.Fatal(err)
	}
	aperture, err := multislice.Initialize(16, 16, multislice.Point, 4)
	if err != nil {
		log.Fatal(err)
	}

	ff, err := multislice.ChirpFarField(grid, aperture, 0.1, 1000)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("detector pitch: %.3f\n", ff.X[1]-ff.X[0])
	// Output:
	// detector pitch: 12.500
}
