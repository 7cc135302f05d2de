package nn

import (
	"github.com/born-ml/pool/internal/tensor"
)

// AvgPool is a non-overlapping average pooling layer.
//
// Each output element is the arithmetic mean of its scale×scale input
// window. The window sum is accumulated in float32 in row-major window order
// and divided by scale*scale once per window.
//
// Input shape:  (channels, height, width)
// Output shape: (channels, height/scale, width/scale)
type AvgPool struct {
	pool[avgReducer]
}

// NewAvgPool creates an average pooling layer for volumes of the given shape.
func NewAvgPool(input tensor.Shape, scale int, opts ...Option) (*AvgPool, error) {
	p, err := newPool("avgpool", input, scale, avgReducer{area: float32(scale * scale)}, opts)
	if err != nil {
		return nil, err
	}
	return &AvgPool{pool: p}, nil
}

// MustNewAvgPool is like NewAvgPool but panics on error.
func MustNewAvgPool(input tensor.Shape, scale int, opts ...Option) *AvgPool {
	a, err := NewAvgPool(input, scale, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns a string representation of the layer.
func (a *AvgPool) String() string {
	return a.describe("AvgPool")
}

type avgReducer struct {
	area float32
}

func (avgReducer) Init() float32                          { return 0 }
func (avgReducer) Accumulate(acc, sample float32) float32 { return acc + sample }
func (r avgReducer) Finalize(acc float32) float32         { return acc / r.area }
