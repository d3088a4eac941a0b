// Package translation implements the frequency-domain translation
// kernel: split a shift into integer and fractional parts, apply a
// separable phase ramp to the spectrum of the fractional part, and
// crop the borders a circular shift would otherwise pollute.
package translation

import (
	"math"
	"math/cmplx"

	"github.com/itohio/rastershift/pkg/logger"
	"github.com/itohio/rastershift/x/fft"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/sirius"
)

var log = logger.With("frequency_translation")

// FrequencyTranslation applies the full Fourier-shift algorithm to one
// in-memory image. It is pure and thread-safe on distinct inputs: two
// goroutines may call Shift concurrently as long as each passes its own
// Image.
type FrequencyTranslation struct {
	FFT fft.Transformer2D
}

// New builds a translation kernel backed by the given FFT port.
func New(transformer fft.Transformer2D) *FrequencyTranslation {
	return &FrequencyTranslation{FFT: transformer}
}

// Shift translates img by (rowShift, colShift) pixels, returning a new,
// border-cropped image. rowShift/colShift may be fractional and/or
// negative.
func (t *FrequencyTranslation) Shift(img rimage.Image, rowShift, colShift float64) (rimage.Image, error) {
	h, w := img.Size.Row, img.Size.Col
	if h <= 0 || w <= 0 {
		return rimage.Image{}, sirius.New(sirius.InvalidArgument, "translation.Shift", nil)
	}

	// Step 1: shift normalization.
	if math.Abs(rowShift) >= float64(h) || math.Abs(colShift) >= float64(w) {
		normRow := rowShift / float64(h)
		normCol := colShift / float64(w)
		log.Warn().
			Float64("col_shift", colShift).Float64("row_shift", rowShift).
			Float64("normalized_col_shift", normCol).Float64("normalized_row_shift", normRow).
			Msg("requested shift is greater than image size, normalizing")
		rowShift, colShift = normRow, normCol
	}

	// Step 2: integer/fraction split, trunc toward zero.
	intRow := int(math.Trunc(rowShift))
	intCol := int(math.Trunc(colShift))
	fracRow := rowShift - float64(intRow)
	fracCol := colShift - float64(intCol)

	var output rimage.Image
	if fracRow == 0 && fracCol == 0 {
		// Step 3: early exit, pure integer shift.
		output = img
	} else {
		shifted, err := t.shiftSubPixel(img, fracRow, fracCol)
		if err != nil {
			return rimage.Image{}, err
		}
		output = shifted
	}

	// Step 9: integer-part crop, on the side opposite the requested
	// shift direction (see DESIGN.md for the sign convention, pinned
	// to match the original algorithm's RemoveBorders calls).
	output = rimage.CropBorders(output, -intRow, -intCol)

	// Step 10: fractional-part crop, at most one extra row/col.
	fracRowCrop := roundAwayFromZero(fracRow)
	fracColCrop := roundAwayFromZero(fracCol)
	output = rimage.CropBorders(output, fracRowCrop, fracColCrop)

	return output, nil
}

// shiftSubPixel performs steps 4-8: centering, forward FFT, separable
// phase ramp multiplication, inverse FFT, recentering and
// normalization.
func (t *FrequencyTranslation) shiftSubPixel(img rimage.Image, fracRow, fracCol float64) (rimage.Image, error) {
	centered := rimage.IFFTShift2D(img)

	spectrum, err := t.FFT.Forward(centered)
	if err != nil {
		return rimage.Image{}, sirius.New(sirius.BackendFailure, "translation.shiftSubPixel.Forward", err)
	}

	h, w := img.Size.Row, img.Size.Col
	cols := w/2 + 1

	// Step 6: frequency vectors. freqCol is the half-axis over the
	// column count W; freqRow is the full FFT-shift-style axis over
	// the row count H.
	freqCol := rimage.ComputeFFTFreq(w, true)
	freqRow := rimage.ComputeFFTFreq(h, false)

	// Step 7: separable phase ramps.
	ex := make([]complex128, h)
	for i := range ex {
		ex[i] = cmplx.Exp(complex(0, -2*math.Pi*fracRow*freqRow[i]))
	}
	ey := make([]complex128, cols)
	for j := range ey {
		ey[j] = cmplx.Exp(complex(0, -2*math.Pi*fracCol*freqCol[j]))
	}

	// Step 8: spectrum multiplication.
	for i := 0; i < h; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			spectrum[idx] *= ex[i] * ey[j]
		}
	}

	unnormalized, err := t.FFT.Inverse(img.Size, spectrum)
	if err != nil {
		return rimage.Image{}, sirius.New(sirius.BackendFailure, "translation.shiftSubPixel.Inverse", err)
	}

	recentered := rimage.FFTShift2D(unnormalized)

	cellCount := float64(recentered.Size.CellCount())
	for i := range recentered.Data {
		recentered.Data[i] /= cellCount
	}
	return recentered, nil
}

// roundAwayFromZero rounds a signed fractional shift to at most one
// unit, away from zero: ceil when positive, floor when negative.
func roundAwayFromZero(frac float64) int {
	if frac < 0 {
		return int(math.Floor(frac))
	}
	return int(math.Ceil(frac))
}
