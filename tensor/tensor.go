// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/pool/internal/tensor"
)

// Type aliases for public API

// Shape is the (depth, height, width) extent of a volume.
// Example: NewShape(3, 32, 32) is a 3-channel 32×32 activation map.
type Shape = tensor.Shape

// Volume is a dense D×H×W float32 array addressed by (channel, row, column).
type Volume = tensor.Volume

// NewShape returns the shape (depth, height, width).
func NewShape(depth, height, width int) Shape {
	return tensor.NewShape(depth, height, width)
}

// NewVolume allocates a zero-initialized volume.
//
// Panics if any extent is negative.
func NewVolume(shape Shape) *Volume {
	return tensor.NewVolume(shape)
}

// FromSlice creates a volume holding a copy of data (row-major).
//
// Example:
//
//	v, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.NewShape(1, 2, 2))
func FromSlice(data []float32, shape Shape) (*Volume, error) {
	return tensor.FromSlice(data, shape)
}
