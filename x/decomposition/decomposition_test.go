package decomposition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/itohio/rastershift/x/fft/gonumfft"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/translation"
)

func rampImage(t *testing.T, size rimage.Size) rimage.Image {
	t.Helper()
	data := make([]float64, size.CellCount())
	for i := range data {
		data[i] = float64(i % 7)
	}
	im, err := rimage.NewFromData(size, data)
	require.NoError(t, err)
	return im
}

func TestRegular_DelegatesToKernel(t *testing.T) {
	kernel := translation.New(gonumfft.New())
	im := rampImage(t, rimage.Size{Row: 8, Col: 8})

	want, err := kernel.Shift(im, 1.5, -0.5)
	require.NoError(t, err)

	got, err := Regular{}.DecomposeAndProcess(im, kernel, 1.5, -0.5)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestPeriodicSmooth_ZeroShiftRecoversOriginalOnCommonExtent(t *testing.T) {
	fft := gonumfft.New()
	kernel := translation.New(fft)
	policy := PeriodicSmooth{FFT: fft}
	im := rampImage(t, rimage.Size{Row: 8, Col: 8})

	out, err := policy.DecomposeAndProcess(im, kernel, 0, 0)
	require.NoError(t, err)

	require.Equal(t, im.Size, out.Size)
	for i := range im.Data {
		assert.InDelta(t, im.Data[i], out.Data[i], 1e-6)
	}
}

func TestBoundaryDiscontinuity_ZeroForPeriodicImage(t *testing.T) {
	// A checkerboard-like pattern with period 2 on an even-sized image
	// is already periodic, so the boundary-discontinuity image should
	// be zero everywhere.
	size := rimage.Size{Row: 4, Col: 4}
	data := make([]float64, size.CellCount())
	for i := 0; i < size.Row; i++ {
		for j := 0; j < size.Col; j++ {
			data[i*size.Col+j] = float64((i + j) % 2)
		}
	}
	im, err := rimage.NewFromData(size, data)
	require.NoError(t, err)

	v := boundaryDiscontinuity(im)
	for _, val := range v.Data {
		assert.InDelta(t, 0, val, 1e-9)
	}
}

// smoothPeriodicImage builds a sinusoid whose period equals the image
// extent on both axes, so it is already periodic (near-zero boundary
// discontinuity) and Moisan's smooth component is expected to be
// negligible.
func smoothPeriodicImage(t *testing.T, size rimage.Size) rimage.Image {
	t.Helper()
	im := rimage.New(size)
	for i := 0; i < size.Row; i++ {
		for j := 0; j < size.Col; j++ {
			v := math.Sin(2*math.Pi*float64(i)/float64(size.Row)) +
				math.Cos(2*math.Pi*float64(j)/float64(size.Col))
			im.Set(i, j, v)
		}
	}
	return im
}

// TestPolicyConsistency_SmoothInput covers the "for smooth inputs ...
// Regular and Periodic-Smooth outputs agree" half of the policy
// consistency property: on an already-periodic input the smooth
// component is negligible, so both policies should produce nearly
// identical shifted output on their common extent.
func TestPolicyConsistency_SmoothInput(t *testing.T) {
	fft := gonumfft.New()
	kernel := translation.New(fft)
	im := smoothPeriodicImage(t, rimage.Size{Row: 16, Col: 16})

	regularOut, err := Regular{}.DecomposeAndProcess(im, kernel, 1.3, -0.7)
	require.NoError(t, err)

	psOut, err := PeriodicSmooth{FFT: fft}.DecomposeAndProcess(im, kernel, 1.3, -0.7)
	require.NoError(t, err)

	rows := min(regularOut.Size.Row, psOut.Size.Row)
	cols := min(regularOut.Size.Col, psOut.Size.Col)
	require.Greater(t, rows*cols, 0)

	maxAbs := 0.0
	for _, v := range im.Data {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, regularOut.Get(i, j), psOut.Get(i, j), 1e-3*maxAbs,
				"policy outputs diverge at (%d,%d)", i, j)
		}
	}
}

// TestPeriodicSmooth_ReducesBoundaryDiscontinuity covers the "for
// inputs with strong boundary mismatch, Periodic-Smooth reduces
// spectral cross-artifacts" half: the periodic component Moisan's
// construction produces should itself be (near) periodic, i.e. its own
// boundary-discontinuity energy should collapse relative to the
// original image's, which is exactly what suppresses the cross-shaped
// spectral leakage a plain FFT of a non-periodic image would show.
func TestPeriodicSmooth_ReducesBoundaryDiscontinuity(t *testing.T) {
	size := rimage.Size{Row: 16, Col: 16}
	im := rimage.New(size)
	for i := 0; i < size.Row; i++ {
		for j := 0; j < size.Col; j++ {
			im.Set(i, j, float64(i*10+j))
		}
	}

	fft := gonumfft.New()
	policy := PeriodicSmooth{FFT: fft}
	periodic, _, err := policy.decompose(im)
	require.NoError(t, err)

	originalDiscontinuity := floats.Norm(boundaryDiscontinuity(im).Data, 2)
	periodicDiscontinuity := floats.Norm(boundaryDiscontinuity(periodic).Data, 2)

	require.Greater(t, originalDiscontinuity, 0.0, "fixture must have a real boundary mismatch")
	assert.Less(t, periodicDiscontinuity, 1e-6*originalDiscontinuity,
		"periodic component should have collapsed boundary discontinuity relative to the original image")
}

func TestRecombine_CommonExtent(t *testing.T) {
	a := rimage.New(rimage.Size{Row: 3, Col: 4})
	for i := range a.Data {
		a.Data[i] = 1
	}
	b := rimage.New(rimage.Size{Row: 2, Col: 5})
	for i := range b.Data {
		b.Data[i] = 2
	}

	out := recombine(a, b)
	require.Equal(t, rimage.Size{Row: 2, Col: 4}, out.Size)
	for _, v := range out.Data {
		assert.InDelta(t, 3, v, 1e-9)
	}
}
