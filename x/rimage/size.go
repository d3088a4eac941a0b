// Package rimage holds the value types shared by every stage of the
// translation pipeline: Size, Padding, Image and GeoReference.
package rimage

import "math"

// Size is an ordered (row, col) pair of non-negative integers. Row is
// the vertical extent, col the horizontal one.
type Size struct {
	Row, Col int
}

// CellCount returns Row*Col.
func (s Size) CellCount() int { return s.Row * s.Col }

// ScaleInt multiplies both fields by n.
func (s Size) ScaleInt(n int) Size {
	return Size{Row: s.Row * n, Col: s.Col * n}
}

// ScaleReal multiplies both fields by f, rounding each field up.
func (s Size) ScaleReal(f float64) Size {
	return Size{
		Row: int(math.Ceil(float64(s.Row) * f)),
		Col: int(math.Ceil(float64(s.Col) * f)),
	}
}

// Padding is a (top, bottom, left, right) quadruple of non-negative
// integers. The zero value is the identity padding.
type Padding struct {
	Top, Bottom, Left, Right int
}

// IsZero reports whether p is the identity padding.
func (p Padding) IsZero() bool {
	return p.Top == 0 && p.Bottom == 0 && p.Left == 0 && p.Right == 0
}
