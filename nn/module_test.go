// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"errors"
	"testing"

	"github.com/born-ml/pool/nn"
	"github.com/born-ml/pool/tensor"
)

// TestLayerInterface verifies that public layer types implement nn.Layer.
func TestLayerInterface(_ *testing.T) {
	var _ nn.Layer = (*nn.MaxPool)(nil)
	var _ nn.Layer = (*nn.AvgPool)(nil)
	var _ nn.Layer = (*nn.L2Pool)(nil)
	var _ nn.Layer = (*nn.Sequential)(nil)
}

func TestPublicPipeline(t *testing.T) {
	input, err := tensor.FromSlice([]float32{
		1, 3, 2, 4,
		5, 6, 8, 7,
		9, 2, 1, 0,
		3, 4, 6, 5,
	}, tensor.NewShape(1, 4, 4))
	if err != nil {
		t.Fatal(err)
	}

	maxPool := nn.MustNewMaxPool(tensor.NewShape(1, 4, 4), 2, nn.WithParallel(nn.SequentialConfig()))
	out, err := maxPool.Forward(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{6, 8, 9, 6}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("max[%d] = %v, want %v", i, v, want[i])
		}
	}

	avgPool := nn.MustNewAvgPool(tensor.NewShape(1, 4, 4), 2)
	out, err = avgPool.Forward(input)
	if err != nil {
		t.Fatal(err)
	}
	want = []float32{3.75, 5.25, 4.5, 3.0}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("avg[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestPublicErrors(t *testing.T) {
	if _, err := nn.NewAvgPool(tensor.NewShape(1, 3, 3), 2); !errors.Is(err, nn.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if err := nn.MustNewL2Pool(tensor.NewShape(1, 2, 2), 2).ImportParams([]float32{1}); !errors.Is(err, nn.ErrParamArity) {
		t.Errorf("expected ErrParamArity, got %v", err)
	}
	if _, err := nn.Build(nn.LayerConfig{Kind: "conv"}); !errors.Is(err, nn.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestPublicReduceFunc(t *testing.T) {
	input := tensor.NewVolume(tensor.NewShape(2, 2, 2))
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				input.Set(z, y, x, 1)
			}
		}
	}

	out, err := nn.ReduceFunc(input, 2, 0,
		func(acc, s float32) float32 { return acc + s },
		func(acc float32) float32 { return acc },
		nn.DefaultParallelConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Data(); len(got) != 2 || got[0] != 4 || got[1] != 4 {
		t.Errorf("sum pooling = %v, want [4 4]", got)
	}
}
