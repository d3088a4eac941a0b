package gonumfft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/rastershift/x/rimage"
)

func TestTransformer_ForwardInverseRoundTrip(t *testing.T) {
	size := rimage.Size{Row: 4, Col: 4}
	data := []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	img, err := rimage.NewFromData(size, append([]float64(nil), data...))
	require.NoError(t, err)

	tr := New()
	spectrum, err := tr.Forward(img)
	require.NoError(t, err)
	require.Len(t, spectrum, size.Row*(size.Col/2+1))

	recovered, err := tr.Inverse(size, spectrum)
	require.NoError(t, err)

	cellCount := float64(size.CellCount())
	for i, want := range data {
		assert.InDelta(t, want, recovered.Data[i]/cellCount, 1e-9,
			"inverse(forward(x))/cellCount should recover x at index %d", i)
	}
}

func TestTransformer_Forward_InvalidSize(t *testing.T) {
	tr := New()
	_, err := tr.Forward(rimage.Image{Size: rimage.Size{Row: 0, Col: 0}})
	assert.Error(t, err)
}
