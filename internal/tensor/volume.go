package tensor

import (
	"fmt"
	"slices"
)

// Volume is a dense D×H×W array of float32 samples.
//
// Storage is row-major: channel planes are contiguous, and inside a plane
// rows are contiguous. A Volume owns its storage. Once a volume has been
// handed to the next stage it is treated as a value and is never mutated
// again by the stage that produced it.
type Volume struct {
	shape Shape
	data  []float32
}

// NewVolume allocates a zero-initialized volume of the given shape.
//
// Panics if the shape is invalid.
func NewVolume(shape Shape) *Volume {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: invalid shape %v: %v", shape, err))
	}
	return &Volume{
		shape: shape,
		data:  make([]float32, shape.NumElements()),
	}
}

// FromSlice creates a volume holding a copy of data.
//
// data is interpreted in row-major order and must contain exactly
// shape.NumElements() values.
//
// Example:
//
//	v, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.NewShape(1, 2, 2))
func FromSlice(data []float32, shape Shape) (*Volume, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Volume{
		shape: shape,
		data:  slices.Clone(data),
	}, nil
}

// Shape returns the volume's shape.
func (v *Volume) Shape() Shape {
	return v.shape
}

// NumElements returns the total number of elements.
func (v *Volume) NumElements() int {
	return len(v.data)
}

// At returns the element at (z, y, x).
//
// Panics if the index is out of range.
func (v *Volume) At(z, y, x int) float32 {
	v.checkIndex(z, y, x)
	return v.data[v.shape.Offset(z, y, x)]
}

// Set writes the element at (z, y, x).
//
// Panics if the index is out of range.
func (v *Volume) Set(z, y, x int, val float32) {
	v.checkIndex(z, y, x)
	v.data[v.shape.Offset(z, y, x)] = val
}

func (v *Volume) checkIndex(z, y, x int) {
	if !v.shape.InBounds(z, y, x) {
		panic(fmt.Sprintf("tensor: index (%d, %d, %d) out of range for shape %v", z, y, x, v.shape))
	}
}

// Data returns a copy of the flat row-major storage.
func (v *Volume) Data() []float32 {
	return slices.Clone(v.data)
}

// Float32 returns the underlying storage without copying.
//
// WARNING: Direct access to the volume's memory. Kernels use it to avoid
// per-element bounds checks; callers must not write to volumes they did not
// allocate.
func (v *Volume) Float32() []float32 {
	return v.data
}

// Channel returns a copy of channel plane z as a flat H*W slice.
//
// Panics if z is out of range.
func (v *Volume) Channel(z int) []float32 {
	if z < 0 || z >= v.shape.Depth {
		panic(fmt.Sprintf("tensor: channel %d out of range for shape %v", z, v.shape))
	}
	plane := v.shape.Height * v.shape.Width
	return slices.Clone(v.data[z*plane : (z+1)*plane])
}

// Clone returns a deep copy of the volume.
func (v *Volume) Clone() *Volume {
	return &Volume{
		shape: v.shape,
		data:  slices.Clone(v.data),
	}
}

// Equal reports whether both volumes have the same shape and equal values.
func (v *Volume) Equal(other *Volume) bool {
	if other == nil {
		return false
	}
	return v.shape.Equal(other.shape) && slices.Equal(v.data, other.data)
}
