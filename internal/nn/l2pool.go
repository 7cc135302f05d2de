package nn

import (
	"math"

	"github.com/born-ml/pool/internal/tensor"
)

// L2Pool is a non-overlapping L2-norm pooling layer.
//
// Each output element is sqrt(sum(x²)) over its scale×scale input window.
type L2Pool struct {
	pool[l2Reducer]
}

// NewL2Pool creates an L2-norm pooling layer for volumes of the given shape.
func NewL2Pool(input tensor.Shape, scale int, opts ...Option) (*L2Pool, error) {
	p, err := newPool("l2pool", input, scale, l2Reducer{}, opts)
	if err != nil {
		return nil, err
	}
	return &L2Pool{pool: p}, nil
}

// MustNewL2Pool is like NewL2Pool but panics on error.
func MustNewL2Pool(input tensor.Shape, scale int, opts ...Option) *L2Pool {
	l, err := NewL2Pool(input, scale, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns a string representation of the layer.
func (l *L2Pool) String() string {
	return l.describe("L2Pool")
}

type l2Reducer struct{}

func (l2Reducer) Init() float32                          { return 0 }
func (l2Reducer) Accumulate(acc, sample float32) float32 { return acc + sample*sample }
func (l2Reducer) Finalize(acc float32) float32           { return float32(math.Sqrt(float64(acc))) }
