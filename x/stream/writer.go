package stream

import (
	"math"

	"github.com/itohio/rastershift/x/raster"
	"github.com/itohio/rastershift/x/raster/tiffdataset"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/sirius"
)

// BlockWriter sizes a new output dataset to the shifted raster's
// extent and places incoming blocks at their absolute coordinates in
// that output's coordinate system, mirroring the pack's
// ShiftedOutputStream.
type BlockWriter struct {
	dataset raster.Dataset
}

// NewBlockWriter creates outputPath sized to
// (H-ceil(|rowShift|), W-ceil(|colShift|)) relative to source, with
// its geo-reference shifted by the integer part of the requested
// shift in source pixel units, and returns a BlockWriter over it.
func NewBlockWriter(outputPath string, sourceSize rimage.Size, sourceGeo rimage.GeoReference, rowShift, colShift float64) (*BlockWriter, error) {
	outSize := rimage.Size{
		Row: sourceSize.Row - ceilAbs(rowShift),
		Col: sourceSize.Col - ceilAbs(colShift),
	}
	if outSize.Row <= 0 || outSize.Col <= 0 {
		return nil, sirius.New(sirius.InvalidArgument, "stream.NewBlockWriter", nil)
	}

	outGeo := sourceGeo.Shift(math.Trunc(rowShift), math.Trunc(colShift))

	ds, err := tiffdataset.Create(outputPath, outSize, outGeo)
	if err != nil {
		return nil, sirius.New(sirius.IOFailure, "stream.NewBlockWriter", err)
	}
	return &BlockWriter{dataset: ds}, nil
}

// NewBlockWriterOverDataset wraps an already-open output dataset,
// useful for tests that keep the dataset in memory instead of on
// disk.
func NewBlockWriterOverDataset(dataset raster.Dataset) *BlockWriter {
	return &BlockWriter{dataset: dataset}
}

// Write places block.Image at (block.RowIdx, block.ColIdx) in the
// output dataset's coordinate system.
func (w *BlockWriter) Write(block Block) error {
	if err := w.dataset.WriteRegion(block.RowIdx, block.ColIdx, block.Image); err != nil {
		return sirius.New(sirius.IOFailure, "stream.BlockWriter.Write", err)
	}
	return nil
}

// Close releases the underlying dataset.
func (w *BlockWriter) Close() error {
	return w.dataset.Close()
}
