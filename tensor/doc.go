// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the volume types consumed and produced by pool layers.
//
// # Overview
//
// A Volume is a dense 3-D array of float32 samples with shape
// (depth, height, width). Storage is row-major: each channel plane is
// contiguous.
//
// # Basic Usage
//
//	import "github.com/born-ml/pool/tensor"
//
//	func main() {
//	    v := tensor.NewVolume(tensor.NewShape(1, 2, 2))
//	    v.Set(0, 1, 1, 3.5)
//	    x := v.At(0, 1, 1) // 3.5
//	}
//
// # Ownership
//
// A volume owns its storage. Layers never mutate their input and always
// return freshly allocated output, so a volume can be passed along a
// pipeline as a value.
//
// # Bounds
//
// At and Set panic on out-of-range indices. Accessing outside a volume is
// a programming error, not a recoverable condition.
package tensor
