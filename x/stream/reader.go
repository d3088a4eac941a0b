package stream

import (
	"math"

	"github.com/itohio/rastershift/x/raster"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/sirius"
)

// BlockReader tiles a raster.Dataset in row-major, shift-aware,
// overlapping blocks, mirroring the pack's ShiftedInputStream
// schedule: the stride between successive block origins is
// block_size minus the ceil of the absolute shift on that axis, so
// adjacent blocks overlap by exactly what the translation kernel will
// crop off their trailing edges.
type BlockReader struct {
	dataset   raster.Dataset
	blockSize rimage.Size
	rowShift  float64
	colShift  float64

	rowIdx int
	colIdx int
	ended  bool
}

// NewBlockReader builds a BlockReader over dataset, tiling it with
// blockSize blocks for a shift of (rowShift, colShift) pixels.
func NewBlockReader(dataset raster.Dataset, blockSize rimage.Size, rowShift, colShift float64) (*BlockReader, error) {
	if blockSize.Row <= 0 || blockSize.Col <= 0 {
		return nil, sirius.New(sirius.InvalidArgument, "stream.NewBlockReader", nil)
	}
	size := dataset.Size()
	if blockSize.Row > size.Row || blockSize.Col > size.Col {
		return nil, sirius.New(sirius.InvalidArgument, "stream.NewBlockReader",
			sirius.ErrInvalidArgument)
	}
	return &BlockReader{
		dataset:   dataset,
		blockSize: blockSize,
		rowShift:  rowShift,
		colShift:  colShift,
	}, nil
}

// IsAtEnd reports whether every block has already been read.
func (r *BlockReader) IsAtEnd() bool { return r.ended }

// Read returns the next block in row-major tiling order.
func (r *BlockReader) Read() (Block, error) {
	if r.ended {
		return Block{}, sirius.ErrEndOfStream
	}

	size := r.dataset.Size()
	rowsToRead := r.blockSize.Row
	colsToRead := r.blockSize.Col
	if r.rowIdx+rowsToRead > size.Row {
		rowsToRead = size.Row - r.rowIdx
	}
	if r.colIdx+colsToRead > size.Col {
		colsToRead = size.Col - r.colIdx
	}

	img, err := r.dataset.ReadRegion(r.rowIdx, r.colIdx, rimage.Size{Row: rowsToRead, Col: colsToRead})
	if err != nil {
		return Block{}, sirius.New(sirius.IOFailure, "stream.BlockReader.Read", err)
	}

	block := Block{Image: img, RowIdx: r.rowIdx, ColIdx: r.colIdx}

	atRowEnd := r.rowIdx+r.blockSize.Row >= size.Row
	atColEnd := r.colIdx+r.blockSize.Col >= size.Col
	if atRowEnd && atColEnd {
		r.ended = true
	}

	if r.colIdx >= size.Col-r.blockSize.Col {
		r.colIdx = 0
		r.rowIdx += r.blockSize.Row - ceilAbs(r.rowShift)
	} else {
		r.colIdx += r.blockSize.Col - ceilAbs(r.colShift)
	}

	return block, nil
}

func ceilAbs(x float64) int {
	return int(math.Ceil(math.Abs(x)))
}
