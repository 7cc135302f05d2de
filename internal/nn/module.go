// Package nn implements the layers of the forward-only pool pipeline.
//
// This package provides:
//   - Layer interface: the contract every pipeline stage satisfies
//   - Reduce: the generic non-overlapping windowed reduction
//   - MaxPool, AvgPool, L2Pool: pooling layers built on Reduce
//   - Sequential: executor chaining layers with shape checks at assembly time
//   - Build/Decode: construction of layers from generic descriptors
//
// Layers are configured once and are safe for concurrent Forward calls.
package nn

import (
	"github.com/born-ml/pool/internal/tensor"
)

// Layer is the interface implemented by every stage of the pipeline.
//
// An executor can chain heterogeneous layers through it without inspecting
// their internals:
//
//	model, err := nn.NewSequential(
//	    nn.MustNewMaxPool(tensor.NewShape(8, 32, 32), 2),
//	    nn.MustNewAvgPool(tensor.NewShape(8, 16, 16), 4),
//	)
type Layer interface {
	// Forward computes the output volume for input.
	//
	// Forward never mutates input. The input shape must equal InputSize();
	// otherwise an error wrapping ErrShapeMismatch is returned and no output
	// is produced.
	Forward(input *tensor.Volume) (*tensor.Volume, error)

	// ParamCount returns the number of learnable scalar parameters.
	ParamCount() int

	// ExportParams returns the current parameter values in a fixed order.
	// The result always has length ParamCount().
	ExportParams() []float32

	// ImportParams replaces the parameters.
	//
	// Returns an error wrapping ErrParamArity if len(values) != ParamCount().
	ImportParams(values []float32) error

	// InputSize returns the shape Forward accepts.
	InputSize() tensor.Shape

	// OutputSize returns the shape Forward produces.
	OutputSize() tensor.Shape
}
