// Package fft defines the abstract contract the translation kernel
// needs from an FFT backend: a forward real-to-complex transform and
// its inverse, with no normalization performed by the backend — the
// caller divides by the cell count.
package fft

import "github.com/itohio/rastershift/x/rimage"

// Transformer2D is the FFT port. Implementations are not required to
// be safe for concurrent use by multiple goroutines on the same
// instance; callers that need concurrency should use one instance per
// goroutine (see x/shift.Translator, which owns its own scratch state
// per Compute call).
type Transformer2D interface {
	// Forward computes the real-to-complex transform of a real H×W
	// buffer, returning a row-major H×(W/2+1) complex spectrum.
	Forward(img rimage.Image) (spectrum []complex128, err error)

	// Inverse computes the complex-to-real transform of a row-major
	// H×(W/2+1) complex spectrum shaped for an H×W output, producing
	// an unnormalized real H×W buffer (the caller divides by H*W).
	Inverse(size rimage.Size, spectrum []complex128) (rimage.Image, error)
}
