package nn

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/born-ml/pool/internal/tensor"
)

// Layer kinds understood by Build.
const (
	KindMax = "max"
	KindAvg = "avg"
	KindL2  = "l2"
)

// LayerConfig describes a pooling layer as it appears in a model description.
//
// In JSON form:
//
//	{"kind": "max", "input": [8, 32, 32], "scale": 2}
type LayerConfig struct {
	Kind  string `mapstructure:"kind" json:"kind"`
	Input [3]int `mapstructure:"input" json:"input"`
	Scale int    `mapstructure:"scale" json:"scale"`
}

// Shape returns the input shape of the described layer.
func (c LayerConfig) Shape() tensor.Shape {
	return tensor.NewShape(c.Input[0], c.Input[1], c.Input[2])
}

// Decode converts a generic descriptor (for example the result of
// json.Unmarshal into map[string]any) into a LayerConfig.
//
// Numbers may be given as strings; unknown keys are rejected. The "input"
// key must list exactly three extents; a missing, short or scalar input
// returns an error wrapping ErrShapeMismatch.
func Decode(raw map[string]any) (LayerConfig, error) {
	var desc layerDescriptor
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &desc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return LayerConfig{}, fmt.Errorf("layer config: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return LayerConfig{}, fmt.Errorf("layer config: %w", err)
	}
	if len(desc.Input) != 3 {
		return LayerConfig{}, fmt.Errorf("layer config: %w: input must list 3 extents (depth, height, width), got %v",
			ErrShapeMismatch, desc.Input)
	}
	return LayerConfig{
		Kind:  desc.Kind,
		Input: [3]int{desc.Input[0], desc.Input[1], desc.Input[2]},
		Scale: desc.Scale,
	}, nil
}

// layerDescriptor is the decoding target of Decode. Input is a slice so that
// the number of extents given can be checked; a [3]int target is
// zero-filled by mapstructure.
type layerDescriptor struct {
	Kind  string `mapstructure:"kind"`
	Input []int  `mapstructure:"input"`
	Scale int    `mapstructure:"scale"`
}

// Build creates the layer described by cfg.
//
// Kind names are case-insensitive; "average" and "mean" are accepted as
// aliases of "avg". Unknown kinds return an error wrapping ErrUnknownKind.
func Build(cfg LayerConfig, opts ...Option) (Layer, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindMax:
		return NewMaxPool(cfg.Shape(), cfg.Scale, opts...)
	case KindAvg, "average", "mean":
		return NewAvgPool(cfg.Shape(), cfg.Scale, opts...)
	case KindL2:
		return NewL2Pool(cfg.Shape(), cfg.Scale, opts...)
	default:
		return nil, fmt.Errorf("build: %w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// BuildAll decodes and builds every descriptor and chains the layers into a
// Sequential. The first failing descriptor aborts construction.
func BuildAll(raws []map[string]any, opts ...Option) (*Sequential, error) {
	layers := make([]Layer, 0, len(raws))
	for i, raw := range raws {
		cfg, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		l, err := Build(cfg, opts...)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
	}
	return NewSequential(layers...)
}
