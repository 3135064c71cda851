// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package convdims

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Padding is an enum for the padding policies of a convolution.
type Padding int

const (
	// PaddingValid adds no padding: the output shrinks with the kernel size.
	PaddingValid Padding = iota

	// PaddingSame pads the input so that the output size is ceil(input/stride).
	PaddingSame
)

var paddingNames = []string{"valid", "same"}

// PaddingValues returns all valid values of Padding.
func PaddingValues() []Padding {
	return []Padding{PaddingValid, PaddingSame}
}

// IsAPadding returns whether p is one of the defined paddings.
func (p Padding) IsAPadding() bool {
	return p >= 0 && int(p) < len(paddingNames)
}

// String implements fmt.Stringer.
func (p Padding) String() string {
	if !p.IsAPadding() {
		return fmt.Sprintf("Padding(%d)", int(p))
	}
	return paddingNames[p]
}

// ParsePadding converts a padding name ("valid" or "same", case-insensitive) to its Padding.
func ParsePadding(name string) (Padding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for ii, paddingName := range paddingNames {
		if normalized == paddingName {
			return Padding(ii), nil
		}
	}
	return PaddingValid, errors.Wrapf(ErrInvalidArgument, "unknown padding mode %q, options are %v", name, PaddingValues())
}

// MarshalText implements encoding.TextMarshaler.
func (p Padding) MarshalText() ([]byte, error) {
	if !p.IsAPadding() {
		return nil, errors.Wrapf(ErrInvalidArgument, "cannot marshal %s", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Padding) UnmarshalText(text []byte) error {
	var err error
	*p, err = ParsePadding(string(text))
	return err
}
