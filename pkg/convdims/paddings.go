package convdims

import (
	"math"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// SamePaddings returns the padding added before and after the input, along one spatial axis, so that
// a convolution with the given kernelSize and stride outputs ceil(inputSize/stride) elements.
//
// When the total padding is odd, the extra element goes at the end.
// Notice this differs from padding (kernelSize-1)/2 on the start and kernelSize/2 on the end, which is only
// correct for stride 1.
func SamePaddings(inputSize, kernelSize, stride int) ([2]int, error) {
	params := Params{InputSize: inputSize, KernelSize: kernelSize, Stride: stride, Padding: PaddingSame}
	if err := params.Validate(); err != nil {
		return [2]int{}, err
	}
	outputSize := CeilDiv(inputSize, stride)
	// covered is in [-stride, -1]: adding kernelSize > 0 to it never overflows.
	covered := (outputSize-1)*stride - inputSize
	total := max(kernelSize+covered, 0)
	paddings := [2]int{total / 2, total - total/2}
	klog.V(2).Infof("SamePaddings(%s): total=%d, paddings=%v", params, total, paddings)
	return paddings, nil
}

// Paddings returns the explicit padding added before and after the input for these parameters.
func (p Params) Paddings() ([2]int, error) {
	if err := p.Validate(); err != nil {
		return [2]int{}, err
	}
	if p.Padding == PaddingValid {
		return [2]int{}, nil
	}
	return SamePaddings(p.InputSize, p.KernelSize, p.Stride)
}

// ExplicitOutputSize returns the output size of a convolution when the input is padded with
// padding[0] elements at the start and padding[1] elements at the end.
//
// It is floor((inputSize+padding[0]+padding[1]-kernelSize)/stride)+1, and it fails if the kernel is
// larger than the padded input.
func ExplicitOutputSize(inputSize, kernelSize, stride int, padding [2]int) (int, error) {
	// Convenient error returns.
	errorf := func(format string, args ...any) (int, error) {
		return 0, errors.Wrapf(ErrInvalidArgument, "ExplicitOutputSize: "+format, args...)
	}
	if inputSize <= 0 {
		return errorf("input size must be > 0, got %d", inputSize)
	}
	if kernelSize <= 0 {
		return errorf("kernel size must be > 0, got %d", kernelSize)
	}
	if stride <= 0 {
		return errorf("stride must be > 0, got %d", stride)
	}
	if padding[0] < 0 || padding[1] < 0 {
		return errorf("paddings must be >= 0, got %v", padding)
	}
	// Accumulate inputSize+padding[0]+padding[1]-kernelSize without overflowing.
	excess := inputSize - kernelSize
	for _, pad := range padding {
		if excess > 0 && pad > math.MaxInt-excess {
			return errorf("padded input size overflows (input size %d, padding %v)", inputSize, padding)
		}
		excess += pad
	}
	if excess < 0 {
		return errorf("kernel size %d is larger than padded input size (input size %d, padding %v)",
			kernelSize, inputSize, padding)
	}
	if excess/stride == math.MaxInt {
		return errorf("output size overflows (input size %d, kernel size %d, padding %v)", inputSize, kernelSize, padding)
	}
	return excess/stride + 1, nil
}
