package rimage

import "fmt"

// Image is an immutable-after-construction value object carrying a
// Size and a contiguous row-major buffer of Size.CellCount samples.
// The empty image (Size{0,0}) is a valid sentinel. Every pipeline
// operation returns a new Image rather than mutating one in place.
type Image struct {
	Size Size
	Data []float64
}

// New allocates a zero-filled image of the given size.
func New(size Size) Image {
	return Image{Size: size, Data: make([]float64, size.CellCount())}
}

// NewFromData wraps data as an image of the given size without
// copying. The caller must not retain other references to data.
func NewFromData(size Size, data []float64) (Image, error) {
	if len(data) != size.CellCount() {
		return Image{}, fmt.Errorf("rimage: data length %d does not match size %dx%d", len(data), size.Row, size.Col)
	}
	return Image{Size: size, Data: data}, nil
}

// Get returns the sample at (row, col).
func (im Image) Get(row, col int) float64 {
	return im.Data[row*im.Size.Col+col]
}

// Set writes the sample at (row, col).
func (im Image) Set(row, col int, v float64) {
	im.Data[row*im.Size.Col+col] = v
}

// Clone returns a deep copy of im.
func (im Image) Clone() Image {
	out := New(im.Size)
	copy(out.Data, im.Data)
	return out
}

// Equal reports whether im and other have the same size and bit-for-bit
// identical samples.
func (im Image) Equal(other Image) bool {
	if im.Size != other.Size {
		return false
	}
	for i, v := range im.Data {
		if other.Data[i] != v {
			return false
		}
	}
	return true
}

// Row returns a slice view over the given row. Mutating it mutates im.
func (im Image) Row(row int) []float64 {
	return im.Data[row*im.Size.Col : (row+1)*im.Size.Col]
}
