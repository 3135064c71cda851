package layers

import (
	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/gomlx/exceptions"
)

// Conv2D describes a 2D convolution layer: it holds only its hyperparameters, there are no weights.
//
// Create it with NewConv2D.
type Conv2D struct {
	name       string
	filters    int
	kernelSize int
	stride     int
	padding    convdims.Padding
	activation Activation
}

// Conv2DBuilder is created by NewConv2D. Call Done when finished configuring it.
type Conv2DBuilder struct {
	conv Conv2D
}

// NewConv2D starts the configuration of a 2D convolution with the given number of filters (output channels).
//
// The defaults are kernel size 3, stride 1, no padding (PaddingValid) and no activation.
// Invalid values (like filters <= 0) panic, with a description of the issue.
func NewConv2D(filters int) *Conv2DBuilder {
	if filters <= 0 {
		exceptions.Panicf("NewConv2D: filters must be > 0, got %d", filters)
	}
	return &Conv2DBuilder{conv: Conv2D{
		filters:    filters,
		kernelSize: 3,
		stride:     1,
		padding:    convdims.PaddingValid,
		activation: ActivationNone,
	}}
}

// Name sets the layer name. If left empty, Sequential.Add picks one.
func (b *Conv2DBuilder) Name(name string) *Conv2DBuilder {
	b.conv.name = name
	return b
}

// KernelSize sets the kernel size, used for both spatial axes.
func (b *Conv2DBuilder) KernelSize(kernelSize int) *Conv2DBuilder {
	if kernelSize <= 0 {
		exceptions.Panicf("Conv2D.KernelSize: kernel size must be > 0, got %d", kernelSize)
	}
	b.conv.kernelSize = kernelSize
	return b
}

// Strides sets the stride, used for both spatial axes.
func (b *Conv2DBuilder) Strides(stride int) *Conv2DBuilder {
	if stride <= 0 {
		exceptions.Panicf("Conv2D.Strides: stride must be > 0, got %d", stride)
	}
	b.conv.stride = stride
	return b
}

// PadSame pads the input such that the output spatial size is ceil(input/stride).
func (b *Conv2DBuilder) PadSame() *Conv2DBuilder {
	b.conv.padding = convdims.PaddingSame
	return b
}

// NoPadding is the default: the output shrinks with the kernel size.
func (b *Conv2DBuilder) NoPadding() *Conv2DBuilder {
	b.conv.padding = convdims.PaddingValid
	return b
}

// Padding sets the padding policy.
func (b *Conv2DBuilder) Padding(padding convdims.Padding) *Conv2DBuilder {
	if !padding.IsAPadding() {
		exceptions.Panicf("Conv2D.Padding: invalid padding %s, options are %v", padding, convdims.PaddingValues())
	}
	b.conv.padding = padding
	return b
}

// Activation sets the activation following the convolution.
func (b *Conv2DBuilder) Activation(activation Activation) *Conv2DBuilder {
	if activation < 0 || int(activation) >= len(activationNames) {
		exceptions.Panicf("Conv2D.Activation: invalid activation %s, options are %v", activation, ActivationValues())
	}
	b.conv.activation = activation
	return b
}

// Done returns the configured layer.
func (b *Conv2DBuilder) Done() *Conv2D {
	conv := b.conv
	return &conv
}

// Name of the layer. It is empty until Sequential.Add assigns one, if none was configured.
func (c *Conv2D) Name() string { return c.name }

// Filters is the number of output channels.
func (c *Conv2D) Filters() int { return c.filters }

// KernelSize used for both spatial axes.
func (c *Conv2D) KernelSize() int { return c.kernelSize }

// Stride used for both spatial axes.
func (c *Conv2D) Stride() int { return c.stride }

// Padding policy of the convolution.
func (c *Conv2D) Padding() convdims.Padding { return c.padding }

// Activation following the convolution.
func (c *Conv2D) Activation() Activation { return c.activation }

// Params returns the convolution parameters along a spatial axis of the given size.
func (c *Conv2D) Params(inputSize int) convdims.Params {
	return convdims.Params{
		InputSize:  inputSize,
		KernelSize: c.kernelSize,
		Stride:     c.stride,
		Padding:    c.padding,
	}
}

// NumParams returns the number of trainable parameters (kernel weights and one bias per filter) when
// the layer is applied to an input with the given number of channels.
func (c *Conv2D) NumParams(inputChannels int) int {
	return (c.kernelSize*c.kernelSize*inputChannels + 1) * c.filters
}
