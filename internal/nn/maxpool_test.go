package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/pool/internal/parallel"
	"github.com/born-ml/pool/internal/tensor"
)

func toFloat64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// TestMaxPool_Creation tests MaxPool layer creation.
func TestMaxPool_Creation(t *testing.T) {
	pool := MustNewMaxPool(tensor.NewShape(3, 28, 28), 2)

	if pool.Scale() != 2 {
		t.Errorf("Expected scale=2, got %d", pool.Scale())
	}
	if !pool.InputSize().Equal(tensor.NewShape(3, 28, 28)) {
		t.Errorf("Expected input (3, 28, 28), got %v", pool.InputSize())
	}
	if pool.String() != "MaxPool(scale=2, input=(3, 28, 28))" {
		t.Errorf("Unexpected String(): %s", pool.String())
	}
}

// TestMaxPool_InvalidConfig tests construction-time precondition checks.
func TestMaxPool_InvalidConfig(t *testing.T) {
	_, err := NewMaxPool(tensor.NewShape(1, 4, 4), 0)
	assert.ErrorIs(t, err, ErrInvalidScale)

	_, err = NewMaxPool(tensor.NewShape(1, 5, 4), 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewMaxPool(tensor.NewShape(1, 4, 6), 4)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewMaxPool(tensor.NewShape(-1, 4, 4), 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Panics(t, func() { MustNewMaxPool(tensor.NewShape(1, 3, 3), 2) })
}

// TestMaxPool_OutputSize checks the shape law (D, H/s, W/s).
func TestMaxPool_OutputSize(t *testing.T) {
	tests := []struct {
		d, h, w, scale int
		want           tensor.Shape
	}{
		{1, 4, 4, 2, tensor.NewShape(1, 2, 2)},
		{3, 28, 28, 2, tensor.NewShape(3, 14, 14)},
		{64, 32, 32, 4, tensor.NewShape(64, 8, 8)},
		{2, 6, 9, 3, tensor.NewShape(2, 2, 3)},
		{5, 7, 11, 1, tensor.NewShape(5, 7, 11)},
		{8, 16, 16, 16, tensor.NewShape(8, 1, 1)},
	}

	for _, tt := range tests {
		pool := MustNewMaxPool(tensor.NewShape(tt.d, tt.h, tt.w), tt.scale)
		assert.Equal(t, tt.want, pool.OutputSize())

		out, err := pool.Forward(tensor.NewVolume(pool.InputSize()))
		require.NoError(t, err)
		assert.Equal(t, pool.OutputSize(), out.Shape())
	}
}

// TestMaxPool_ForwardValues tests forward pass with known values.
func TestMaxPool_ForwardValues(t *testing.T) {
	pool := MustNewMaxPool(tensor.NewShape(1, 4, 4), 2)

	output, err := pool.Forward(mustVolume(t, scenario, 1, 4, 4))
	require.NoError(t, err)

	// Expected output (max in each 2x2 window):
	// [[1,3,2,4],      -> [[6,8],
	//  [5,6,8,7],         [9,6]]
	//  [9,2,1,0],
	//  [3,4,6,5]]
	expected := []float32{6, 8, 9, 6}
	outputData := output.Data()

	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

// TestMaxPool_WindowCorrectness compares every output element with gonum's max of its window.
func TestMaxPool_WindowCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, scale := range []int{1, 2, 3, 4} {
		shape := tensor.NewShape(4, 12, 24)
		input := randomVolume(rng, shape)
		pool := MustNewMaxPool(shape, scale)

		output, err := pool.Forward(input)
		require.NoError(t, err)

		out := output.Shape()
		for z := 0; z < out.Depth; z++ {
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					want := floats.Max(toFloat64(window(input, scale, z, y, x)))
					assert.Equal(t, float32(want), output.At(z, y, x),
						"scale=%d element (%d,%d,%d)", scale, z, y, x)
				}
			}
		}
	}
}

// TestMaxPool_ShapeMismatch tests that Forward rejects inputs of a different shape.
func TestMaxPool_ShapeMismatch(t *testing.T) {
	pool := MustNewMaxPool(tensor.NewShape(2, 4, 4), 2)

	output, err := pool.Forward(tensor.NewVolume(tensor.NewShape(1, 4, 4)))
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "maxpool.forward", shapeErr.Op)
	assert.Equal(t, tensor.NewShape(2, 4, 4), shapeErr.Want)
	assert.Equal(t, tensor.NewShape(1, 4, 4), shapeErr.Got)

	_, err = pool.Forward(nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

// TestMaxPool_Params checks that the layer is parameter-free.
func TestMaxPool_Params(t *testing.T) {
	pool := MustNewMaxPool(tensor.NewShape(1, 4, 4), 2)

	assert.Equal(t, 0, pool.ParamCount())
	assert.NotNil(t, pool.ExportParams())
	assert.Empty(t, pool.ExportParams())
	assert.NoError(t, pool.ImportParams(nil))
	assert.NoError(t, pool.ImportParams([]float32{}))

	err := pool.ImportParams([]float32{1})
	assert.ErrorIs(t, err, ErrParamArity)
	assert.Contains(t, err.Error(), "expected 0 values, got 1")
}

// TestMaxPool_NaNPropagates documents that a NaN sample poisons its window.
func TestMaxPool_NaNPropagates(t *testing.T) {
	nan := float32(math.NaN())
	pool := MustNewMaxPool(tensor.NewShape(1, 2, 4), 2)

	output, err := pool.Forward(mustVolume(t, []float32{1, nan, 1, 2, 3, 4, 3, 4}, 1, 2, 4))
	require.NoError(t, err)

	assert.True(t, math.IsNaN(float64(output.At(0, 0, 0))))
	assert.Equal(t, float32(4), output.At(0, 0, 1))
}

// TestMaxPool_WithParallel checks that the worker configuration does not change results.
func TestMaxPool_WithParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	shape := tensor.NewShape(32, 16, 16)
	input := randomVolume(rng, shape)

	seq := MustNewMaxPool(shape, 2, WithParallel(parallel.Sequential()))
	par := MustNewMaxPool(shape, 2, WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))

	a, err := seq.Forward(input)
	require.NoError(t, err)
	b, err := par.Forward(input)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

// TestMaxPool_ImplementsLayer is a compile-time check.
func TestMaxPool_ImplementsLayer(_ *testing.T) {
	var _ Layer = (*MaxPool)(nil)
	var _ Layer = (*AvgPool)(nil)
	var _ Layer = (*L2Pool)(nil)
	var _ Layer = (*Sequential)(nil)
}
