package nn

import (
	"math"

	"github.com/born-ml/pool/internal/tensor"
)

// MaxPool is a non-overlapping max pooling layer.
//
// Each output element is the maximum of its scale×scale input window.
// MaxPool has no learnable parameters.
//
// Input shape:  (channels, height, width)
// Output shape: (channels, height/scale, width/scale)
//
// height and width must be multiples of scale.
//
// Example (scale=2):
//
//	Input: [[1,3,2,4],    Output: [[6,8],
//	        [5,6,8,7],             [9,6]]
//	        [9,2,1,0],
//	        [3,4,6,5]]
type MaxPool struct {
	pool[maxReducer]
}

// NewMaxPool creates a max pooling layer for volumes of the given shape.
//
// Returns an error wrapping ErrInvalidScale if scale < 1, or ErrShapeMismatch
// if the spatial extents of input are not multiples of scale.
func NewMaxPool(input tensor.Shape, scale int, opts ...Option) (*MaxPool, error) {
	p, err := newPool("maxpool", input, scale, maxReducer{}, opts)
	if err != nil {
		return nil, err
	}
	return &MaxPool{pool: p}, nil
}

// MustNewMaxPool is like NewMaxPool but panics on error.
func MustNewMaxPool(input tensor.Shape, scale int, opts ...Option) *MaxPool {
	m, err := NewMaxPool(input, scale, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns a string representation of the layer.
func (m *MaxPool) String() string {
	return m.describe("MaxPool")
}

// maxReducer keeps the running maximum. NaN samples propagate.
type maxReducer struct{}

func (maxReducer) Init() float32                          { return float32(math.Inf(-1)) }
func (maxReducer) Accumulate(acc, sample float32) float32 { return max(acc, sample) }
func (maxReducer) Finalize(acc float32) float32           { return acc }
