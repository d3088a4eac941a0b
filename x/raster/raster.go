// Package raster defines the C1 raster I/O port: a Dataset abstraction
// over single-band, floating-point geospatial rasters, concretized by
// the tiffdataset sub-package.
package raster

import "github.com/itohio/rastershift/x/rimage"

// Dataset is a seekable, single-band raster on persistent storage. A
// Dataset's region operations are independent across non-overlapping
// regions, so the block-streaming pipeline may call ReadRegion and
// WriteRegion from multiple goroutines as long as the regions they
// touch do not overlap.
type Dataset interface {
	// Size returns the full raster's row/column extent.
	Size() rimage.Size

	// GeoReference returns the raster's affine georeferencing.
	GeoReference() rimage.GeoReference

	// ReadRegion reads the size.Row x size.Col block whose top-left
	// corner is at (rowOff, colOff) in raster coordinates.
	ReadRegion(rowOff, colOff int, size rimage.Size) (rimage.Image, error)

	// WriteRegion writes img so that its top-left corner lands at
	// (rowOff, colOff) in raster coordinates.
	WriteRegion(rowOff, colOff int, img rimage.Image) error

	// Close releases the underlying file handle.
	Close() error
}
