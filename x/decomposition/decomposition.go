// Package decomposition implements the image-decomposition policies
// that sit between the shift façade and the translation kernel: a
// Regular pass-through and a Periodic-Smooth policy that suppresses
// the spectral cross-shaped artifacts caused by implicit periodization.
package decomposition

import (
	"math"

	"github.com/itohio/rastershift/x/fft"
	"github.com/itohio/rastershift/x/interpolation"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/translation"
)

// Policy decomposes an image and applies the appropriate shift
// operator(s) to each part, returning the recombined, shifted image.
type Policy interface {
	DecomposeAndProcess(img rimage.Image, kernel *translation.FrequencyTranslation, rowShift, colShift float64) (rimage.Image, error)
}

// Regular is the C6a pass-through policy: it forwards directly to the
// translation kernel.
type Regular struct{}

// DecomposeAndProcess implements Policy.
func (Regular) DecomposeAndProcess(img rimage.Image, kernel *translation.FrequencyTranslation, rowShift, colShift float64) (rimage.Image, error) {
	return kernel.Shift(img, rowShift, colShift)
}

// PeriodicSmooth is the C6b policy: it splits u = p + s via Moisan's
// periodic-plus-smooth construction, shifts p through the Fourier
// kernel and s through bilinear interpolation (s carries only
// low-frequency content), then sums the results on their common
// extent.
type PeriodicSmooth struct {
	FFT fft.Transformer2D
}

// DecomposeAndProcess implements Policy.
func (p PeriodicSmooth) DecomposeAndProcess(img rimage.Image, kernel *translation.FrequencyTranslation, rowShift, colShift float64) (rimage.Image, error) {
	periodic, smooth, err := p.decompose(img)
	if err != nil {
		return rimage.Image{}, err
	}

	shiftedPeriodic, err := kernel.Shift(periodic, rowShift, colShift)
	if err != nil {
		return rimage.Image{}, err
	}
	shiftedSmooth := interpolation.Bilinear2D(smooth, rowShift, colShift)

	return recombine(shiftedPeriodic, shiftedSmooth), nil
}

// decompose splits u into its periodic component p and smooth
// component s such that u = p + s, following Moisan's construction:
// form the boundary-discontinuity image v, solve the discrete Poisson
// equation for s in the frequency domain, then p = u - s.
func (p PeriodicSmooth) decompose(u rimage.Image) (periodic, smooth rimage.Image, err error) {
	h, w := u.Size.Row, u.Size.Col

	v := boundaryDiscontinuity(u)

	vSpectrum, err := p.FFT.Forward(v)
	if err != nil {
		return rimage.Image{}, rimage.Image{}, err
	}

	cols := w/2 + 1
	sSpectrum := make([]complex128, len(vSpectrum))
	for i := 0; i < h; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			if i == 0 && j == 0 {
				sSpectrum[idx] = 0
				continue
			}
			denom := 2*math.Cos(2*math.Pi*float64(i)/float64(h)) +
				2*math.Cos(2*math.Pi*float64(j)/float64(w)) - 4
			sSpectrum[idx] = vSpectrum[idx] / complex(denom, 0)
		}
	}

	sUnnormalized, err := p.FFT.Inverse(u.Size, sSpectrum)
	if err != nil {
		return rimage.Image{}, rimage.Image{}, err
	}

	smooth = rimage.New(u.Size)
	cellCount := float64(u.Size.CellCount())
	for i := range smooth.Data {
		smooth.Data[i] = sUnnormalized.Data[i] / cellCount
	}

	periodic = rimage.New(u.Size)
	for i := range periodic.Data {
		periodic.Data[i] = u.Data[i] - smooth.Data[i]
	}

	return periodic, smooth, nil
}

// boundaryDiscontinuity builds the image v whose value at each border
// pixel equals the wrap-around difference across the corresponding
// edge, and is zero in the interior.
func boundaryDiscontinuity(u rimage.Image) rimage.Image {
	h, w := u.Size.Row, u.Size.Col
	v := rimage.New(u.Size)

	for j := 0; j < w; j++ {
		d := u.Get(h-1, j) - u.Get(0, j)
		v.Set(0, j, v.Get(0, j)+d)
		v.Set(h-1, j, v.Get(h-1, j)-d)
	}
	for i := 0; i < h; i++ {
		d := u.Get(i, w-1) - u.Get(i, 0)
		v.Set(i, 0, v.Get(i, 0)+d)
		v.Set(i, w-1, v.Get(i, w-1)-d)
	}
	return v
}

// recombine sums a and b pixel-wise on their common (smaller) extent,
// anchored at the top-left corner.
func recombine(a, b rimage.Image) rimage.Image {
	rows := min(a.Size.Row, b.Size.Row)
	cols := min(a.Size.Col, b.Size.Col)

	out := rimage.New(rimage.Size{Row: rows, Col: cols})
	for i := 0; i < rows; i++ {
		ar, br, or_ := a.Row(i), b.Row(i), out.Row(i)
		for j := 0; j < cols; j++ {
			or_[j] = ar[j] + br[j]
		}
	}
	return out
}
