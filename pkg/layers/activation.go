package layers

import (
	"fmt"
	"strings"

	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/pkg/errors"
)

// Activation is an enum for the activation function following a layer.
//
// Activations are only recorded (and shown in summaries): no values are ever computed here.
type Activation int

const (
	ActivationNone Activation = iota
	ActivationRelu
	ActivationSigmoid
	ActivationTanh
	ActivationLeakyRelu
	ActivationSelu
	ActivationSwish
)

var activationNames = []string{"none", "relu", "sigmoid", "tanh", "leaky_relu", "selu", "swish"}

// ActivationValues returns all valid values of Activation.
func ActivationValues() []Activation {
	values := make([]Activation, len(activationNames))
	for ii := range values {
		values[ii] = Activation(ii)
	}
	return values
}

// String implements fmt.Stringer.
func (a Activation) String() string {
	if a < 0 || int(a) >= len(activationNames) {
		return fmt.Sprintf("Activation(%d)", int(a))
	}
	return activationNames[a]
}

// ParseActivation converts an activation name to its type.
// An empty string is converted to ActivationNone, and "silu" is an alias to ActivationSwish.
func ParseActivation(name string) (Activation, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return ActivationNone, nil
	case "silu":
		return ActivationSwish, nil
	}
	for ii, activationName := range activationNames {
		if normalized == activationName {
			return Activation(ii), nil
		}
	}
	return ActivationNone, errors.Wrapf(convdims.ErrInvalidArgument,
		"unknown activation %q, options are %v", name, ActivationValues())
}
