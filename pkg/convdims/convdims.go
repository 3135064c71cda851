// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package convdims calculates the output spatial size of a strided 2D convolution.
//
// Two paddings are supported: PaddingSame, where the output size is ceil(input/stride) regardless
// of the kernel size, and PaddingValid, where no padding is added and the output size is
// floor((input-kernel)/stride)+1.
//
// Besides the closed-form OutputSize, the package offers SamePaddings and ExplicitOutputSize, which
// derive the same result from the explicit amount of padding added on each side of the input.
// Both paths are expected to always agree.
package convdims

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrInvalidArgument is returned (wrapped with details) whenever a size, stride or padding is not
// acceptable. Use errors.Is to check for it.
var ErrInvalidArgument = errors.New("invalid argument")

// Params of one convolution along one spatial axis. Height and width are assumed to share
// the same kernel size and stride.
type Params struct {
	InputSize, KernelSize, Stride int
	Padding                       Padding
}

// Validate returns an error wrapping ErrInvalidArgument if any of the parameters is not acceptable.
func (p Params) Validate() error {
	// Convenient error returns.
	errorf := func(format string, args ...any) error {
		return errors.Wrapf(ErrInvalidArgument, "convolution params %s: "+format, append([]any{p}, args...)...)
	}
	if p.InputSize <= 0 {
		return errorf("input size must be > 0, got %d", p.InputSize)
	}
	if p.KernelSize <= 0 {
		return errorf("kernel size must be > 0, got %d", p.KernelSize)
	}
	if p.Stride <= 0 {
		return errorf("stride must be > 0, got %d", p.Stride)
	}
	if !p.Padding.IsAPadding() {
		return errorf("invalid padding %s, options are %v", p.Padding, PaddingValues())
	}
	if p.Padding == PaddingValid && p.KernelSize > p.InputSize {
		return errorf("kernel size %d is larger than input size %d with %s padding",
			p.KernelSize, p.InputSize, p.Padding)
	}
	return nil
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("{input=%d, kernel=%d, stride=%d, padding=%s}",
		p.InputSize, p.KernelSize, p.Stride, p.Padding)
}

// OutputSize returns the output size for the parameters, see the package level OutputSize.
func (p Params) OutputSize() (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Padding == PaddingSame {
		return CeilDiv(p.InputSize, p.Stride), nil
	}
	return (p.InputSize-p.KernelSize)/p.Stride + 1, nil
}

// OutputSize returns the spatial size of the output of a convolution over an input of size
// inputSize.
//
// With PaddingSame it is ceil(inputSize/stride), and kernelSize is only checked to be positive.
// With PaddingValid it is floor((inputSize-kernelSize)/stride)+1, and it fails if the kernel is larger
// than the input.
//
// All errors wrap ErrInvalidArgument.
func OutputSize(inputSize, kernelSize, stride int, padding Padding) (int, error) {
	return Params{InputSize: inputSize, KernelSize: kernelSize, Stride: stride, Padding: padding}.OutputSize()
}

// ComputeOutputSize is like OutputSize, but takes the padding mode by name ("same" or "valid").
func ComputeOutputSize(inputSize, kernelSize, stride int, paddingMode string) (int, error) {
	padding, err := ParsePadding(paddingMode)
	if err != nil {
		return 0, err
	}
	return OutputSize(inputSize, kernelSize, stride, padding)
}

// CeilDiv returns ceil(a/b) for a >= 0 and b > 0. It doesn't overflow, even for a close to the maximum of T.
func CeilDiv[T constraints.Integer](a, b T) T {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
