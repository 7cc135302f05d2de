package nn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/born-ml/pool/internal/logutil"
	"github.com/born-ml/pool/internal/tensor"
)

// Sequential is a layer that chains multiple layers together.
//
// Each layer's output becomes the next layer's input. Shape compatibility
// between neighbours is checked once, when the pipeline is assembled, so
// Forward never discovers a mis-assembled pipeline halfway through.
//
// Example:
//
//	model, err := nn.NewSequential(
//	    nn.MustNewMaxPool(tensor.NewShape(3, 32, 32), 2), // (3, 16, 16)
//	    nn.MustNewAvgPool(tensor.NewShape(3, 16, 16), 4), // (3, 4, 4)
//	)
//	if err != nil {
//	    return err
//	}
//	output, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := maxPool.Forward(input)
//	output, _ := avgPool.Forward(h1)
type Sequential struct {
	layers []Layer
	logger *slog.Logger
}

// NewSequential creates a pipeline from layers.
//
// Returns an error wrapping ErrShapeMismatch if the output shape of a layer
// differs from the input shape of the layer that follows it.
func NewSequential(layers ...Layer) (*Sequential, error) {
	s := &Sequential{logger: slog.Default()}
	for _, l := range layers {
		if err := s.Add(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a layer to the pipeline.
//
// Returns an error wrapping ErrNilLayer if l is nil, or ErrShapeMismatch if
// l does not accept the current output shape.
func (s *Sequential) Add(l Layer) error {
	if l == nil {
		return fmt.Errorf("sequential.add: layer %d: %w", len(s.layers), ErrNilLayer)
	}
	if n := len(s.layers); n > 0 {
		prev := s.layers[n-1].OutputSize()
		if in := l.InputSize(); !in.Equal(prev) {
			return fmt.Errorf("sequential.add: layer %d: %w", n,
				&ShapeError{Op: "sequential.add", Want: prev, Got: in})
		}
	}
	s.layers = append(s.layers, l)
	return nil
}

// SetLogger replaces the logger used for per-layer debug records.
// The default is slog.Default() at construction time.
func (s *Sequential) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Forward applies all layers in sequence.
//
// Evaluation stops at the first failing layer; its error is returned wrapped
// with the layer index and no output is produced.
//
// An empty pipeline is the identity: it returns a copy of any non-nil input,
// whatever its shape, even though InputSize reports the zero shape.
func (s *Sequential) Forward(input *tensor.Volume) (*tensor.Volume, error) {
	if len(s.layers) == 0 {
		if input == nil {
			return nil, fmt.Errorf("sequential.forward: nil input: %w", ErrShapeMismatch)
		}
		return input.Clone(), nil
	}

	ctx := context.Background()
	output := input

	for i, l := range s.layers {
		next, err := l.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("sequential.forward: layer %d: %w", i, err)
		}
		if s.logger.Enabled(ctx, slog.LevelDebug) {
			s.logger.DebugContext(ctx, "layer forward",
				"index", i, logutil.Layer(describeLayer(l), output.Shape(), next.Shape()))
		}
		output = next
	}

	return output, nil
}

// ParamCount returns the total number of parameters of all layers.
func (s *Sequential) ParamCount() int {
	n := 0
	for _, l := range s.layers {
		n += l.ParamCount()
	}
	return n
}

// ExportParams concatenates the parameters of all layers in layer order.
func (s *Sequential) ExportParams() []float32 {
	params := make([]float32, 0, s.ParamCount())
	for _, l := range s.layers {
		params = append(params, l.ExportParams()...)
	}
	return params
}

// ImportParams splits values across the layers in layer order.
//
// The total length is checked before any layer is modified.
func (s *Sequential) ImportParams(values []float32) error {
	if total := s.ParamCount(); len(values) != total {
		return fmt.Errorf("sequential.import_params: %w: expected %d values, got %d",
			ErrParamArity, total, len(values))
	}

	offset := 0
	for i, l := range s.layers {
		n := l.ParamCount()
		if err := l.ImportParams(values[offset : offset+n]); err != nil {
			return fmt.Errorf("sequential.import_params: layer %d: %w", i, err)
		}
		offset += n
	}
	return nil
}

// InputSize returns the input shape of the first layer, or the zero shape
// for an empty pipeline.
func (s *Sequential) InputSize() tensor.Shape {
	if len(s.layers) == 0 {
		return tensor.Shape{}
	}
	return s.layers[0].InputSize()
}

// OutputSize returns the output shape of the last layer, or the zero shape
// for an empty pipeline.
func (s *Sequential) OutputSize() tensor.Shape {
	if len(s.layers) == 0 {
		return tensor.Shape{}
	}
	return s.layers[len(s.layers)-1].OutputSize()
}

// Len returns the number of layers in the pipeline.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}

// String lists the layers of the pipeline.
func (s *Sequential) String() string {
	out := "Sequential("
	for i, l := range s.layers {
		if i > 0 {
			out += ", "
		}
		out += describeLayer(l)
	}
	return out + ")"
}

func describeLayer(l Layer) string {
	if str, ok := l.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", l)
}
