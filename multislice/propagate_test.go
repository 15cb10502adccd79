package multislice

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagateZeroDistanceIsIdentity(t *testing.T) {
	f := testField(5, 6)
	got, err := Propagate(f, 0.7, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	h := TransferFunction(BuildMesh(5, 6, 1, 1), 0.7, 0)
	for r := range h {
		for c := range h[r] {
			assert.Equal(t, complex(1, 0), h[r][c])
		}
	}
}

func TestPropagateRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		ny, nx     int
		wavelength float64
		distance   float64
		vx, vy     float64
	}{
		{"propagating band only", 8, 8, 0.5, 40, 1, 1},
		{"rectangular grid", 6, 10, 0.3, 12.5, 0.8, 1.2},
		{"with evanescent band", 8, 8, 2, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testField(tt.ny, tt.nx)
			there, err := Propagate(f, tt.wavelength, tt.distance, tt.vx, tt.vy)
			require.NoError(t, err)
			back, err := Propagate(there, tt.wavelength, -tt.distance, tt.vx, tt.vy)
			require.NoError(t, err)
			requireWavefrontsClose(t, f, back, 1e-9)
		})
	}
}

func TestPropagateDoesNotModifyInput(t *testing.T) {
	f := testField(4, 4)
	keep := f.Clone()
	_, err := Propagate(f, 1, 3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, keep, f)
}

func TestTransferFunctionEvanescentDamping(t *testing.T) {
	// lambda = 2 and unit pitch: the corner frequency (-0.5, -0.5) has
	// radicand 1 - 4*(0.25+0.25) = -1.
	mesh := BuildMesh(4, 4, 1, 1)
	forward := TransferFunction(mesh, 2, 1)
	backward := TransferFunction(mesh, 2, -1)

	corner := forward[0][0]
	assert.False(t, cmplx.IsNaN(corner))
	assert.InDelta(t, math.Exp(-math.Pi), real(corner), 1e-12)
	assert.InDelta(t, 0, imag(corner), 1e-12)

	for r := range forward {
		for c := range forward[r] {
			assert.LessOrEqual(t, cmplx.Abs(forward[r][c]), 1+1e-12)
			prod := forward[r][c] * backward[r][c]
			assert.InDelta(t, 1, real(prod), 1e-12, "H(d)H(-d) at (%d,%d)", r, c)
			assert.InDelta(t, 0, imag(prod), 1e-12, "H(d)H(-d) at (%d,%d)", r, c)
		}
	}
}

func TestTransferFunctionComposesInDistance(t *testing.T) {
	mesh := BuildMesh(6, 6, 1, 1)
	h1 := TransferFunction(mesh, 1.5, 0.7)
	h2 := TransferFunction(mesh, 1.5, 1.9)
	h12 := TransferFunction(mesh, 1.5, 2.6)
	for r := range h12 {
		for c := range h12[r] {
			assert.InDelta(t, 0, cmplx.Abs(h1[r][c]*h2[r][c]-h12[r][c]), 1e-12)
		}
	}
}

func TestPropagateTiltedPlaneWaveIsEigenmode(t *testing.T) {
	// A plane wave at frequency u0 = 1/(n*vx) only picks up H(u0, 0), which
	// checks that the spectrum and the mesh share the same alignment.
	const (
		n          = 8
		vx         = 1.0
		wavelength = 1.0
		distance   = 3.0
	)
	u0 := 1 / (n * vx)
	f := NewWavefront(n, n)
	for r := range f {
		for c := range f[r] {
			f[r][c] = cmplx.Exp(complex(0, 2*math.Pi*u0*float64(c)*vx))
		}
	}

	got, err := Propagate(f, wavelength, distance, vx, vx)
	require.NoError(t, err)

	h := cmplx.Exp(complex(0, -2*math.Pi*distance/wavelength*math.Sqrt(1-wavelength*wavelength*u0*u0)))
	want := NewWavefront(n, n)
	for r := range f {
		for c := range f[r] {
			want[r][c] = f[r][c] * h
		}
	}
	requireWavefrontsClose(t, want, got, 1e-10)
}

func TestPropagateValidation(t *testing.T) {
	f := testField(4, 4)

	_, err := Propagate(f, 0, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidWavelength)

	_, err = Propagate(f, -1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidWavelength)

	_, err = Propagate(f, 1, 1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Propagate(Wavefront{}, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrIncompatibleShape)
}
