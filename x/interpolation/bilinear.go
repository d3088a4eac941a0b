// Package interpolation implements the 2-D bilinear interpolator used
// by the Periodic-Smooth decomposition policy to shift the smooth
// (low-frequency) component of an image, following the flat,
// receiver-less function style of the teacher's own interpolation
// package (no state to carry between calls, so no struct is needed).
package interpolation

import (
	"math"

	"github.com/itohio/rastershift/x/rimage"
)

// Bilinear2D shifts img by (rowShift, colShift) pixels using a
// mirror-padded bilinear convolution on the fractional remainder, then
// crops |⌈-rowShift⌉| rows and |⌈-colShift⌉| columns, the border a full
// shift would have replicated. The returned image therefore has
// H-⌈|rowShift|⌉ rows for a negative or integer rowShift and
// H-⌊rowShift⌋ rows for a positive non-integer one (likewise for
// columns).
func Bilinear2D(img rimage.Image, rowShift, colShift float64) rimage.Image {
	h, w := img.Size.Row, img.Size.Col

	alpha := colShift - float64(int(colShift)) // fractional column remainder
	beta := rowShift - float64(int(rowShift))  // fractional row remainder

	// Pre-flipped bilinear kernel.
	k00 := (1 - alpha) * (1 - beta)
	k01 := alpha * (1 - beta)
	k10 := beta * (1 - alpha)
	k11 := alpha * beta

	mirror := rimage.New(rimage.Size{Row: h + 1, Col: w + 1})
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			mirror.Set(i, j, img.Get(i, j))
		}
	}
	// Duplicate last row.
	for j := 0; j < w+1; j++ {
		mirror.Set(h, j, mirror.Get(h-1, j))
	}
	// Duplicate last column.
	for i := 0; i < h+1; i++ {
		mirror.Set(i, w, mirror.Get(i, w-1))
	}

	out := rimage.New(img.Size)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			v := mirror.Get(i, j)*k00 +
				mirror.Get(i, j+1)*k01 +
				mirror.Get(i+1, j)*k10 +
				mirror.Get(i+1, j+1)*k11
			out.Set(i, j, v)
		}
	}

	// Crop the border that would have been replicated on the opposite
	// side had the complete shift been applied, using the full shift
	// (not just its fractional remainder), mirroring the original
	// algorithm's RemoveBorders(interpolated, ceil(-rowShift), ceil(-colShift)).
	return rimage.CropBorders(out, ceilNeg(rowShift), ceilNeg(colShift))
}

// ceilNeg returns ceil(-x) as an int, matching the original
// algorithm's std::ceil(-shift) border-crop computation.
func ceilNeg(x float64) int {
	return int(math.Ceil(-x))
}
