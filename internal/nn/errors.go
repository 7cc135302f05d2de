package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/pool/internal/tensor"
)

// Sentinel errors reported by layers. Match them with errors.Is.
//
// All of them describe an integration mistake (a mis-assembled pipeline or a
// mis-described model), never a transient condition: callers should abort
// the current evaluation instead of retrying.
var (
	// ErrShapeMismatch reports a volume whose shape differs from the layer's
	// declared input, or spatial extents not divisible by the pooling scale.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrParamArity reports an ImportParams call with the wrong number of values.
	ErrParamArity = errors.New("parameter count mismatch")

	// ErrInvalidScale reports a pooling scale below 1.
	ErrInvalidScale = errors.New("invalid pooling scale")

	// ErrUnknownKind reports a layer descriptor naming an unsupported layer kind.
	ErrUnknownKind = errors.New("unknown layer kind")

	// ErrNilLayer reports a nil layer passed to a Sequential.
	ErrNilLayer = errors.New("nil layer")
)

// ShapeError describes a shape precondition failure.
type ShapeError struct {
	Op   string       // Operation that rejected the volume, e.g. "maxpool.forward".
	Want tensor.Shape // Declared shape.
	Got  tensor.Shape // Offending shape.
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: expected %v, got %v", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
