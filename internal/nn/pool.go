package nn

import (
	"fmt"

	"github.com/born-ml/pool/internal/logutil"
	"github.com/born-ml/pool/internal/parallel"
	"github.com/born-ml/pool/internal/tensor"
)

// Reducer folds the samples of one pooling window into a single value.
//
// For every window Reduce calls Init once, Accumulate once per sample in
// row-major window order, and Finalize once on the folded accumulator.
// Implementations must be safe for concurrent use; the reducers in this
// package are stateless values.
type Reducer interface {
	Init() float32
	Accumulate(acc, sample float32) float32
	Finalize(acc float32) float32
}

// Reduce applies a non-overlapping scale×scale windowed reduction to every
// channel of input.
//
// Output shape is (D, H/scale, W/scale). For output element (z, y, x) the
// window starts at (y*scale, x*scale) and its samples are folded row by row,
// left to right:
//
//	acc := r.Init()
//	for dy := 0; dy < scale; dy++ {
//	    for dx := 0; dx < scale; dx++ {
//	        acc = r.Accumulate(acc, input[z, y*scale+dy, x*scale+dx])
//	    }
//	}
//	output[z, y, x] = r.Finalize(acc)
//
// The fold order is fixed, so results are bit-reproducible regardless of
// cfg. Rows of the output are distributed across workers according to cfg.
//
// Preconditions (checked once, before any allocation):
//   - scale >= 1, otherwise the error wraps ErrInvalidScale
//   - H%scale == 0 and W%scale == 0, otherwise the error wraps ErrShapeMismatch
//
// The returned volume is freshly allocated; input is only read.
//
// R is a type parameter so that value-typed reducers get their own
// instantiation of the loop nest.
func Reduce[R Reducer](input *tensor.Volume, scale int, r R, cfg parallel.Config) (*tensor.Volume, error) {
	shape := input.Shape()
	if err := checkWindow("pool.reduce", shape, scale); err != nil {
		return nil, err
	}

	outShape := pooledShape(shape, scale)
	output := tensor.NewVolume(outShape)

	H, W := shape.Height, shape.Width
	outH, outW := outShape.Height, outShape.Width
	inData := input.Float32()
	outData := output.Float32()

	parallel.ForBatch(shape.Depth, outH, func(z, y int) {
		// Pre-slice channel plane and output row: eliminates per-sample offset math
		plane := inData[z*H*W : (z+1)*H*W]
		outRow := outData[(z*outH+y)*outW : (z*outH+y+1)*outW]
		y0 := y * scale

		for x := range outRow {
			x0 := x * scale
			acc := r.Init()
			for dy := 0; dy < scale; dy++ {
				rowStart := (y0+dy)*W + x0
				for _, sample := range plane[rowStart : rowStart+scale] {
					acc = r.Accumulate(acc, sample)
				}
			}
			outRow[x] = r.Finalize(acc)
		}
	}, cfg)

	return output, nil
}

// ReduceFunc is Reduce with the strategy given as plain functions.
//
// Example (sum pooling):
//
//	out, err := nn.ReduceFunc(input, 2, 0,
//	    func(acc, s float32) float32 { return acc + s },
//	    func(acc float32) float32 { return acc },
//	    parallel.DefaultConfig())
func ReduceFunc(
	input *tensor.Volume,
	scale int,
	init float32,
	accumulate func(acc, sample float32) float32,
	finalize func(acc float32) float32,
	cfg parallel.Config,
) (*tensor.Volume, error) {
	return Reduce(input, scale, funcReducer{init: init, acc: accumulate, fin: finalize}, cfg)
}

type funcReducer struct {
	init float32
	acc  func(acc, sample float32) float32
	fin  func(acc float32) float32
}

func (f funcReducer) Init() float32                          { return f.init }
func (f funcReducer) Accumulate(acc, sample float32) float32 { return f.acc(acc, sample) }
func (f funcReducer) Finalize(acc float32) float32           { return f.fin(acc) }

// checkWindow validates the pooling preconditions for a volume of the given shape.
func checkWindow(op string, shape tensor.Shape, scale int) error {
	if scale < 1 {
		return fmt.Errorf("%s: %w: %d (must be >= 1)", op, ErrInvalidScale, scale)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrShapeMismatch, err)
	}
	if shape.Height%scale != 0 || shape.Width%scale != 0 {
		return fmt.Errorf("%s: %w: height %d and width %d must be divisible by scale %d",
			op, ErrShapeMismatch, shape.Height, shape.Width, scale)
	}
	return nil
}

// pooledShape returns (D, H/scale, W/scale).
func pooledShape(s tensor.Shape, scale int) tensor.Shape {
	return tensor.NewShape(s.Depth, s.Height/scale, s.Width/scale)
}

// Option configures a pooling layer.
type Option func(*options)

type options struct {
	parallel parallel.Config
}

func defaultOptions() options {
	return options{parallel: parallel.DefaultConfig()}
}

// WithParallel sets how Forward distributes work across goroutines.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}

// pool is the engine shared by all pooling layers: it owns the input shape
// and scale, implements the parameter-free part of Layer, and delegates the
// window fold to its reducer.
type pool[R Reducer] struct {
	name    string
	input   tensor.Shape
	scale   int
	reducer R
	cfg     parallel.Config
}

func newPool[R Reducer](name string, input tensor.Shape, scale int, r R, opts []Option) (pool[R], error) {
	if err := checkWindow(name+".new", input, scale); err != nil {
		return pool[R]{}, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return pool[R]{
		name:    name,
		input:   input,
		scale:   scale,
		reducer: r,
		cfg:     o.parallel,
	}, nil
}

// Forward pools input. The input shape must equal InputSize().
func (p *pool[R]) Forward(input *tensor.Volume) (*tensor.Volume, error) {
	if input == nil {
		return nil, fmt.Errorf("%s.forward: nil input: %w", p.name, ErrShapeMismatch)
	}
	if got := input.Shape(); !got.Equal(p.input) {
		return nil, &ShapeError{Op: p.name + ".forward", Want: p.input, Got: got}
	}
	logutil.Trace("pool forward", logutil.Layer(p.name, p.input, p.OutputSize()),
		"scale", p.scale, "workers", p.cfg.NumWorkers)
	return Reduce(input, p.scale, p.reducer, p.cfg)
}

// ParamCount returns 0: pooling layers have no learnable parameters.
func (p *pool[R]) ParamCount() int {
	return 0
}

// ExportParams returns an empty slice.
func (p *pool[R]) ExportParams() []float32 {
	return []float32{}
}

// ImportParams accepts only an empty slice.
func (p *pool[R]) ImportParams(values []float32) error {
	if len(values) != 0 {
		return fmt.Errorf("%s.import_params: %w: expected 0 values, got %d", p.name, ErrParamArity, len(values))
	}
	return nil
}

// InputSize returns the declared input shape.
func (p *pool[R]) InputSize() tensor.Shape {
	return p.input
}

// OutputSize returns (D, H/scale, W/scale).
func (p *pool[R]) OutputSize() tensor.Shape {
	return pooledShape(p.input, p.scale)
}

// Scale returns the window edge length (and stride).
func (p *pool[R]) Scale() int {
	return p.scale
}

func (p *pool[R]) describe(kind string) string {
	return fmt.Sprintf("%s(scale=%d, input=%v)", kind, p.scale, p.input)
}
