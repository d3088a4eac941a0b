package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/rastershift/x/rimage"
)

// memDataset is an in-memory raster.Dataset used only by tests, so
// BlockReader/BlockWriter behavior can be checked without touching
// disk.
type memDataset struct {
	size rimage.Size
	geo  rimage.GeoReference
	data []float64
}

func newMemDataset(size rimage.Size) *memDataset {
	return &memDataset{size: size, data: make([]float64, size.CellCount())}
}

func (d *memDataset) Size() rimage.Size                  { return d.size }
func (d *memDataset) GeoReference() rimage.GeoReference { return d.geo }

func (d *memDataset) ReadRegion(rowOff, colOff int, size rimage.Size) (rimage.Image, error) {
	out := rimage.New(size)
	for i := 0; i < size.Row; i++ {
		for j := 0; j < size.Col; j++ {
			out.Set(i, j, d.data[(rowOff+i)*d.size.Col+(colOff+j)])
		}
	}
	return out, nil
}

func (d *memDataset) WriteRegion(rowOff, colOff int, img rimage.Image) error {
	for i := 0; i < img.Size.Row; i++ {
		for j := 0; j < img.Size.Col; j++ {
			d.data[(rowOff+i)*d.size.Col+(colOff+j)] = img.Get(i, j)
		}
	}
	return nil
}

func (d *memDataset) Close() error { return nil }

func TestBlockReader_TilesEntireRasterNoShift(t *testing.T) {
	ds := newMemDataset(rimage.Size{Row: 10, Col: 10})
	for i := range ds.data {
		ds.data[i] = float64(i)
	}

	reader, err := NewBlockReader(ds, rimage.Size{Row: 5, Col: 5}, 0, 0)
	require.NoError(t, err)

	var blocks []Block
	for !reader.IsAtEnd() {
		b, err := reader.Read()
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	require.Len(t, blocks, 4, "a 10x10 raster tiled by 5x5 blocks with no shift yields 4 blocks")
}

func TestBlockReader_InvalidBlockSize(t *testing.T) {
	ds := newMemDataset(rimage.Size{Row: 10, Col: 10})
	_, err := NewBlockReader(ds, rimage.Size{Row: 0, Col: 5}, 0, 0)
	assert.Error(t, err)
}

func TestBlockReader_BlockExceedsRaster(t *testing.T) {
	ds := newMemDataset(rimage.Size{Row: 10, Col: 10})
	_, err := NewBlockReader(ds, rimage.Size{Row: 20, Col: 20}, 0, 0)
	assert.Error(t, err)
}

func TestBlockWriter_WritesAtAbsoluteCoordinates(t *testing.T) {
	out := newMemDataset(rimage.Size{Row: 4, Col: 4})
	writer := NewBlockWriterOverDataset(out)

	block := Block{Image: rimage.New(rimage.Size{Row: 2, Col: 2}), RowIdx: 1, ColIdx: 1}
	for i := range block.Image.Data {
		block.Image.Data[i] = float64(i + 1)
	}

	require.NoError(t, writer.Write(block))

	got, err := out.ReadRegion(1, 1, rimage.Size{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, block.Image.Data, got.Data)
}
