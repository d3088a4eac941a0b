package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/rastershift/x/decomposition"
	"github.com/itohio/rastershift/x/fft/gonumfft"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/translation"
)

func TestTranslator_Compute(t *testing.T) {
	fft := gonumfft.New()
	kernel := translation.New(fft)
	tr := New(decomposition.Regular{}, kernel, 1, 0)

	im := rimage.New(rimage.Size{Row: 8, Col: 8})
	for i := range im.Data {
		im.Data[i] = float64(i)
	}

	want, err := kernel.Shift(im, 1, 0)
	require.NoError(t, err)

	got, err := tr.Compute(im)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestTranslator_Accessors(t *testing.T) {
	tr := New(decomposition.Regular{}, nil, 1.5, -2.5)
	assert.Equal(t, 1.5, tr.RowShift())
	assert.Equal(t, -2.5, tr.ColShift())
}
