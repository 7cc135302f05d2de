// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/pool/internal/nn"
	"github.com/born-ml/pool/internal/parallel"
	"github.com/born-ml/pool/tensor"
)

// Layer is the contract every pipeline stage implements.
type Layer = nn.Layer

// Reducer folds the samples of one pooling window into a single value.
type Reducer = nn.Reducer

// Option configures a pooling layer.
type Option = nn.Option

// ParallelConfig controls how pooling work is spread across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns a configuration with one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a configuration that never spawns goroutines.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// WithParallel sets how Forward distributes work across goroutines.
func WithParallel(cfg ParallelConfig) Option {
	return nn.WithParallel(cfg)
}

// Errors

var (
	// ErrShapeMismatch reports an input volume of the wrong shape.
	ErrShapeMismatch = nn.ErrShapeMismatch
	// ErrParamArity reports ImportParams with the wrong number of values.
	ErrParamArity = nn.ErrParamArity
	// ErrInvalidScale reports a pooling scale below 1.
	ErrInvalidScale = nn.ErrInvalidScale
	// ErrUnknownKind reports an unsupported layer kind in a descriptor.
	ErrUnknownKind = nn.ErrUnknownKind
	// ErrNilLayer reports a nil layer added to a Sequential.
	ErrNilLayer = nn.ErrNilLayer
)

// ShapeError carries the expected and offending shapes of a rejected volume.
type ShapeError = nn.ShapeError

// Pooling

// Reduce applies a non-overlapping scale×scale windowed reduction.
func Reduce[R Reducer](input *tensor.Volume, scale int, r R, cfg ParallelConfig) (*tensor.Volume, error) {
	return nn.Reduce(input, scale, r, cfg)
}

// ReduceFunc is Reduce with the strategy given as plain functions.
func ReduceFunc(
	input *tensor.Volume,
	scale int,
	init float32,
	accumulate func(acc, sample float32) float32,
	finalize func(acc float32) float32,
	cfg ParallelConfig,
) (*tensor.Volume, error) {
	return nn.ReduceFunc(input, scale, init, accumulate, finalize, cfg)
}

// MaxPool represents a non-overlapping max pooling layer.
type MaxPool = nn.MaxPool

// NewMaxPool creates a max pooling layer.
//
// Example:
//
//	pool, err := nn.NewMaxPool(tensor.NewShape(64, 28, 28), 2) // -> (64, 14, 14)
func NewMaxPool(input tensor.Shape, scale int, opts ...Option) (*MaxPool, error) {
	return nn.NewMaxPool(input, scale, opts...)
}

// MustNewMaxPool is like NewMaxPool but panics on error.
func MustNewMaxPool(input tensor.Shape, scale int, opts ...Option) *MaxPool {
	return nn.MustNewMaxPool(input, scale, opts...)
}

// AvgPool represents a non-overlapping average pooling layer.
type AvgPool = nn.AvgPool

// NewAvgPool creates an average pooling layer.
func NewAvgPool(input tensor.Shape, scale int, opts ...Option) (*AvgPool, error) {
	return nn.NewAvgPool(input, scale, opts...)
}

// MustNewAvgPool is like NewAvgPool but panics on error.
func MustNewAvgPool(input tensor.Shape, scale int, opts ...Option) *AvgPool {
	return nn.MustNewAvgPool(input, scale, opts...)
}

// L2Pool represents a non-overlapping L2-norm pooling layer.
type L2Pool = nn.L2Pool

// NewL2Pool creates an L2-norm pooling layer.
func NewL2Pool(input tensor.Shape, scale int, opts ...Option) (*L2Pool, error) {
	return nn.NewL2Pool(input, scale, opts...)
}

// MustNewL2Pool is like NewL2Pool but panics on error.
func MustNewL2Pool(input tensor.Shape, scale int, opts ...Option) *L2Pool {
	return nn.MustNewL2Pool(input, scale, opts...)
}

// Containers

// Sequential chains layers, checking shapes when the pipeline is assembled.
type Sequential = nn.Sequential

// NewSequential creates a pipeline from layers.
func NewSequential(layers ...Layer) (*Sequential, error) {
	return nn.NewSequential(layers...)
}

// Model descriptions

// LayerConfig describes a pooling layer in a model description.
type LayerConfig = nn.LayerConfig

// Decode converts a generic descriptor into a LayerConfig.
func Decode(raw map[string]any) (LayerConfig, error) {
	return nn.Decode(raw)
}

// Build creates the layer described by cfg.
func Build(cfg LayerConfig, opts ...Option) (Layer, error) {
	return nn.Build(cfg, opts...)
}

// BuildAll decodes and builds every descriptor and chains them.
func BuildAll(raws []map[string]any, opts ...Option) (*Sequential, error) {
	return nn.BuildAll(raws, opts...)
}
