// Package tensor provides the volume types shared by every stage of the pool pipeline.
package tensor

import "fmt"

// Shape describes the extents of a 3-D volume: channels (depth), rows (height)
// and columns (width).
//
// Shape is a value type. Two shapes are equal when all three extents match.
type Shape struct {
	Depth  int
	Height int
	Width  int
}

// NewShape returns the shape (depth, height, width).
func NewShape(depth, height, width int) Shape {
	return Shape{Depth: depth, Height: height, Width: width}
}

// NumElements returns the total number of elements in a volume of this shape.
func (s Shape) NumElements() int {
	return s.Depth * s.Height * s.Width
}

// Validate checks that no extent is negative.
//
// Zero extents are legal and describe an empty volume.
func (s Shape) Validate() error {
	for i, dim := range [3]int{s.Depth, s.Height, s.Width} {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

// Offset returns the flat row-major index of (z, y, x).
//
// No bounds check is performed; see InBounds.
func (s Shape) Offset(z, y, x int) int {
	return (z*s.Height+y)*s.Width + x
}

// InBounds reports whether (z, y, x) addresses an element of the shape.
func (s Shape) InBounds(z, y, x int) bool {
	return z >= 0 && z < s.Depth &&
		y >= 0 && y < s.Height &&
		x >= 0 && x < s.Width
}

// String returns the shape as "(D, H, W)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.Depth, s.Height, s.Width)
}
