package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/pool/internal/tensor"
)

func TestL2Pool_ForwardValues(t *testing.T) {
	pool := MustNewL2Pool(tensor.NewShape(1, 2, 4), 2)

	output, err := pool.Forward(mustVolume(t, []float32{3, 0, 1, 1, 0, 4, 1, 1}, 1, 2, 4))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float32{5, 2}, output.Data(), 1e-6)
	assert.Equal(t, "L2Pool(scale=2, input=(1, 2, 4))", pool.String())
}

func TestL2Pool_WindowCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	shape := tensor.NewShape(2, 9, 6)
	input := randomVolume(rng, shape)
	pool := MustNewL2Pool(shape, 3)

	output, err := pool.Forward(input)
	require.NoError(t, err)

	out := output.Shape()
	for z := 0; z < out.Depth; z++ {
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				want := floats.Norm(toFloat64(window(input, 3, z, y, x)), 2)
				assert.InDelta(t, want, float64(output.At(z, y, x)), 1e-5)
			}
		}
	}
}

func TestL2Pool_Params(t *testing.T) {
	pool := MustNewL2Pool(tensor.NewShape(4, 2, 2), 2)

	assert.Equal(t, tensor.NewShape(4, 1, 1), pool.OutputSize())
	assert.Equal(t, 0, pool.ParamCount())
	assert.NoError(t, pool.ImportParams(nil))
	assert.ErrorIs(t, pool.ImportParams([]float32{1, 2, 3}), ErrParamArity)
}
