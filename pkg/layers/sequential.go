// Package layers describes a stack of convolution layers and derives the shape of each layer's output,
// the way a model summary of a deep-learning framework does.
//
// Shapes are derived by padding explicitly (see convdims.Params.Paddings) and then applying the general
// convolution formula, so they can be checked against the closed form convdims.OutputSize.
package layers

import (
	"fmt"

	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Sequential is a linear stack of layers, applied one after the other to an input of a fixed shape.
//
// It is not safe for concurrent use.
type Sequential struct {
	inputShape Shape
	layers     []*Conv2D
	outputs    []Shape
	names      map[string]bool
	typeCount  map[string]int
}

// NewSequential creates an empty Sequential for inputs of the given shape.
func NewSequential(inputShape Shape) (*Sequential, error) {
	if err := inputShape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "NewSequential")
	}
	return &Sequential{
		inputShape: inputShape,
		names:      make(map[string]bool),
		typeCount:  make(map[string]int),
	}, nil
}

// InputShape of the model.
func (s *Sequential) InputShape() Shape { return s.inputShape }

// OutputShape of the last layer, or the input shape if there are no layers.
func (s *Sequential) OutputShape() Shape {
	if len(s.outputs) == 0 {
		return s.inputShape
	}
	return s.outputs[len(s.outputs)-1]
}

// Layers returns the layers added so far, in order.
func (s *Sequential) Layers() []*Conv2D {
	return s.layers
}

// Add appends the convolution to the stack, deriving its output shape from the current output shape.
//
// If the layer has no name, one is assigned ("conv2d", "conv2d_1", ...). It fails if the name is already
// in use, or if the layer doesn't fit its input (e.g. a kernel larger than the input with PaddingValid).
// On failure the Sequential is left unchanged.
func (s *Sequential) Add(conv *Conv2D) error {
	if conv == nil {
		return errors.Wrap(convdims.ErrInvalidArgument, "Sequential.Add: nil layer")
	}
	layer := *conv
	if layer.name == "" {
		layer.name = s.uniqueName("conv2d")
	} else if s.names[layer.name] {
		return errors.Wrapf(convdims.ErrInvalidArgument, "Sequential.Add: layer name %q already used", layer.name)
	}

	input := s.OutputShape()
	height, err := explicitOutputSize(&layer, input.Height)
	if err != nil {
		return errors.WithMessagef(err, "Sequential.Add(%q): height", layer.name)
	}
	width, err := explicitOutputSize(&layer, input.Width)
	if err != nil {
		return errors.WithMessagef(err, "Sequential.Add(%q): width", layer.name)
	}
	output := Shape{Height: height, Width: width, Channels: layer.Filters()}

	s.names[layer.name] = true
	s.typeCount["conv2d"]++
	s.layers = append(s.layers, &layer)
	s.outputs = append(s.outputs, output)
	klog.V(1).Infof("Sequential: added %q (kernel=%d, stride=%d, padding=%s): %s -> %s",
		layer.Name(), layer.KernelSize(), layer.Stride(), layer.Padding(), input, output)
	return nil
}

// uniqueName returns base for the first layer of its type, and base_<n> for the following ones.
func (s *Sequential) uniqueName(base string) string {
	for count := s.typeCount[base]; ; count++ {
		name := base
		if count > 0 {
			name = fmt.Sprintf("%s_%d", base, count)
		}
		if !s.names[name] {
			return name
		}
	}
}

// explicitOutputSize pads the input explicitly and applies the general convolution formula.
func explicitOutputSize(conv *Conv2D, inputSize int) (int, error) {
	params := conv.Params(inputSize)
	paddings, err := params.Paddings()
	if err != nil {
		return 0, err
	}
	return convdims.ExplicitOutputSize(inputSize, params.KernelSize, params.Stride, paddings)
}
