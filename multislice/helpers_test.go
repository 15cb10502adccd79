package multislice

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireWavefrontsClose(t *testing.T, want, got Wavefront, tol float64) {
	t.Helper()
	require.Len(t, got, len(want), "row count")
	for r := range want {
		require.Len(t, got[r], len(want[r]), "column count in row %d", r)
		for c := range want[r] {
			require.LessOrEqualf(t, cmplx.Abs(want[r][c]-got[r][c]), tol,
				"sample (%d,%d): want %v, got %v", r, c, want[r][c], got[r][c])
		}
	}
}

// testField returns a deterministic, non-trivial complex field.
func testField(ny, nx int) Wavefront {
	w := NewWavefront(ny, nx)
	for r := range w {
		for c := range w[r] {
			w[r][c] = complex(float64((r*7+c*3)%5)-2, float64((r*2+c*5)%3)-1)
		}
	}
	return w
}
