package layers

import (
	"fmt"

	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/pkg/errors"
)

// Shape of an image-like tensor in channels-last layout, without the batch dimension.
type Shape struct {
	Height, Width, Channels int
}

// Validate returns an error wrapping convdims.ErrInvalidArgument if any dimension is <= 0.
func (s Shape) Validate() error {
	if s.Height <= 0 || s.Width <= 0 || s.Channels <= 0 {
		return errors.Wrapf(convdims.ErrInvalidArgument, "shape %s must have all dimensions > 0", s)
	}
	return nil
}

// String renders the shape with an undefined batch dimension, e.g.: "(None, 64, 64, 32)".
func (s Shape) String() string {
	return fmt.Sprintf("(None, %d, %d, %d)", s.Height, s.Width, s.Channels)
}
