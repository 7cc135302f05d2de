// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the pooling layers of a forward-only network evaluator.
//
// # Overview
//
// This package contains:
//   - Layer: the contract shared by every pipeline stage
//   - Pooling: MaxPool, AvgPool, L2Pool
//   - Reduce/ReduceFunc: the generic windowed reduction behind them
//   - Sequential: executor that chains layers
//   - LayerConfig, Build, BuildAll: layers from model descriptors
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/pool/nn"
//	    "github.com/born-ml/pool/tensor"
//	)
//
//	func main() {
//	    model, err := nn.NewSequential(
//	        nn.MustNewMaxPool(tensor.NewShape(8, 32, 32), 2),
//	        nn.MustNewAvgPool(tensor.NewShape(8, 16, 16), 4),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, err := model.Forward(input) // (8, 4, 4)
//	}
//
// # Pooling
//
// Windows are scale×scale and never overlap: the stride equals the window
// size. Height and width of the input must be multiples of scale, which is
// checked when the layer is constructed and again on every Forward call.
//
// A pooling kind is three functions: an initial accumulator, a per-sample
// fold and a finalizer.
//
//	max: -Inf, max(acc, x), acc
//	avg: 0,    acc + x,     acc / (scale*scale)
//	l2:  0,    acc + x*x,   sqrt(acc)
//
// Samples of a window are always folded row by row, left to right, so
// results are reproducible bit for bit whatever the parallel configuration.
//
// # Errors
//
// Shape and parameter-count violations are reported as errors wrapping
// ErrShapeMismatch, ErrInvalidScale or ErrParamArity. They indicate a
// mis-assembled pipeline; no partial output is ever returned.
package nn
