// Package shift exposes the Translator façade: a single-call object
// binding a decomposition policy, an FFT-backed translation kernel and
// a fixed (rowShift, colShift) pair, used by both the in-memory API and
// the block-streaming pipeline.
package shift

import (
	"github.com/itohio/rastershift/x/decomposition"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/translation"
)

// Translator applies a fixed sub-pixel shift to any number of images
// through a chosen decomposition policy. A Translator is immutable
// after construction and holds no per-call state, so the same value
// may be shared across worker goroutines; each Compute call only
// touches its own argument and return value.
type Translator struct {
	policy   decomposition.Policy
	kernel   *translation.FrequencyTranslation
	rowShift float64
	colShift float64
}

// New builds a Translator that will shift every image passed to
// Compute by (rowShift, colShift) pixels, decomposing it according to
// policy.
func New(policy decomposition.Policy, kernel *translation.FrequencyTranslation, rowShift, colShift float64) *Translator {
	return &Translator{
		policy:   policy,
		kernel:   kernel,
		rowShift: rowShift,
		colShift: colShift,
	}
}

// Compute shifts img by the Translator's fixed (rowShift, colShift)
// and returns the result.
func (t *Translator) Compute(img rimage.Image) (rimage.Image, error) {
	return t.policy.DecomposeAndProcess(img, t.kernel, t.rowShift, t.colShift)
}

// RowShift returns the row component of the fixed shift.
func (t *Translator) RowShift() float64 { return t.rowShift }

// ColShift returns the column component of the fixed shift.
func (t *Translator) ColShift() float64 { return t.colShift }
