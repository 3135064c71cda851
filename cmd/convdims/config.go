package main

import (
	"bytes"
	"os"

	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/gomlx/convdims/pkg/layers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ModelConfig describes a Sequential model, as read from a YAML file.
type ModelConfig struct {
	Input  InputConfig   `yaml:"input"`
	Layers []LayerConfig `yaml:"layers"`
}

// InputConfig is the shape of the model input, without the batch dimension.
type InputConfig struct {
	Height   int `yaml:"height"`
	Width    int `yaml:"width"`
	Channels int `yaml:"channels"`
}

// LayerConfig describes one Conv2D layer. Omitted (nil or empty) values take the layer defaults, except
// Filters which is required. An explicit kernel or stride must be > 0.
type LayerConfig struct {
	Name       string `yaml:"name"`
	Filters    int    `yaml:"filters"`
	Kernel     *int   `yaml:"kernel"`
	Stride     *int   `yaml:"stride"`
	Padding    string `yaml:"padding"`
	Activation string `yaml:"activation"`
}

// LoadConfig reads a ModelConfig from a YAML file. Unknown fields are an error.
func LoadConfig(filePath string) (*ModelConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model config from %q", filePath)
	}
	return ParseConfig(data)
}

// ParseConfig parses the YAML contents of a model config.
func ParseConfig(data []byte) (*ModelConfig, error) {
	config := &ModelConfig{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "failed to parse model config")
	}
	if len(config.Layers) == 0 {
		return nil, errors.Wrap(convdims.ErrInvalidArgument, "model config has no layers")
	}
	return config, nil
}

// Build the Sequential model described by the config.
func (config *ModelConfig) Build() (*layers.Sequential, error) {
	model, err := layers.NewSequential(layers.Shape{
		Height:   config.Input.Height,
		Width:    config.Input.Width,
		Channels: config.Input.Channels,
	})
	if err != nil {
		return nil, err
	}
	for ii, layerConfig := range config.Layers {
		conv, err := layerConfig.conv2D()
		if err != nil {
			return nil, errors.WithMessagef(err, "layer #%d", ii)
		}
		if err = model.Add(conv); err != nil {
			return nil, errors.WithMessagef(err, "layer #%d", ii)
		}
	}
	return model, nil
}

// conv2D validates the values before handing them to the builder, which panics on invalid values.
func (layerConfig LayerConfig) conv2D() (*layers.Conv2D, error) {
	// Convenient error returns.
	errorf := func(format string, args ...any) (*layers.Conv2D, error) {
		return nil, errors.Wrapf(convdims.ErrInvalidArgument, format, args...)
	}
	if layerConfig.Filters <= 0 {
		return errorf("filters must be > 0, got %d", layerConfig.Filters)
	}
	if layerConfig.Kernel != nil && *layerConfig.Kernel <= 0 {
		return errorf("kernel must be > 0, got %d", *layerConfig.Kernel)
	}
	if layerConfig.Stride != nil && *layerConfig.Stride <= 0 {
		return errorf("stride must be > 0, got %d", *layerConfig.Stride)
	}
	padding := convdims.PaddingValid
	if layerConfig.Padding != "" {
		var err error
		padding, err = convdims.ParsePadding(layerConfig.Padding)
		if err != nil {
			return nil, err
		}
	}
	activation, err := layers.ParseActivation(layerConfig.Activation)
	if err != nil {
		return nil, err
	}

	builder := layers.NewConv2D(layerConfig.Filters).
		Name(layerConfig.Name).
		Padding(padding).
		Activation(activation)
	if layerConfig.Kernel != nil {
		builder.KernelSize(*layerConfig.Kernel)
	}
	if layerConfig.Stride != nil {
		builder.Strides(*layerConfig.Stride)
	}
	return builder.Done(), nil
}
