// Package stream implements the block-tiling schedule the streaming
// pipeline uses to read a large raster in overlapping, shift-aware
// blocks and write the shifted blocks back out, mirroring the
// pack's ShiftedInputStream/ShiftedOutputStream pair.
package stream

import "github.com/itohio/rastershift/x/rimage"

// Block is one tile read from, or about to be written to, a raster
// dataset: its pixel data, its absolute top-left coordinates within
// the raster, and a Padding that is always zero on the translation
// path (reserved for a future zoom path).
type Block struct {
	Image  rimage.Image
	RowIdx int
	ColIdx int
	Pad    rimage.Padding
}
