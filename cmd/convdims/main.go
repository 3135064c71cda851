// convdims prints the summary of a stack of 2D convolutions and checks the output size of each layer
// against the closed-form formula: ceil(input/stride) for "same" padding, and
// floor((input-kernel)/stride)+1 for "valid" padding.
//
// By default it describes a single Conv2D(filters=32, kernel=3, strides=2, padding="same") over a
// 128x128x3 input. Use -config to describe a stack of layers in YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/convdims/pkg/layers"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"
)

var (
	flagInput    = flag.Int("input", 128, "Height and width of the (square) input.")
	flagChannels = flag.Int("channels", 3, "Number of channels of the input.")
	flagFilters  = flag.Int("filters", 32, "Number of filters (output channels) of the convolution.")
	flagKernel   = flag.Int("kernel", 3, "Kernel size, used for both spatial axes.")
	flagStride   = flag.Int("stride", 2, "Stride, used for both spatial axes.")
	flagPadding  = flag.String("padding", "same", "Padding mode: \"same\" or \"valid\".")

	flagActivation = flag.String("activation", "relu", "Activation following the convolution. "+
		"It is only displayed in the summary.")
	flagConfig = flag.String("config", "", "YAML file describing the input shape and the layers. "+
		"If set, the single layer flags (-input, -channels, -filters, -kernel, -stride, -padding, -activation) are ignored.")
	flagPlain = flag.Bool("plain", false, "Disable colors and text styles.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %q. See 'convdims -help'.", flag.Args())
		os.Exit(1)
	}
	if *flagPlain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	var config *ModelConfig
	if *flagConfig != "" {
		var err error
		config, err = LoadConfig(*flagConfig)
		if err != nil {
			klog.Exitf("Invalid config: %v", err)
		}
	} else {
		config = configFromFlags()
	}
	model, err := config.Build()
	if err != nil {
		klog.Exitf("Invalid model: %v", err)
	}

	summary := model.Summary()
	printSummary(os.Stdout, summary)
	if failures := printCheck(os.Stdout, checkSummary(summary)); failures > 0 {
		klog.Exitf("%d size(s) derived from the layers don't match the formula", failures)
	}
}

// configFromFlags describes the single layer model given by the flags. Kernel and stride are always
// explicit, so non-positive values are rejected by ModelConfig.Build.
func configFromFlags() *ModelConfig {
	kernel, stride := *flagKernel, *flagStride
	layer := LayerConfig{
		Filters:    *flagFilters,
		Kernel:     &kernel,
		Stride:     &stride,
		Padding:    *flagPadding,
		Activation: *flagActivation,
	}
	return &ModelConfig{
		Input:  InputConfig{Height: *flagInput, Width: *flagInput, Channels: *flagChannels},
		Layers: []LayerConfig{layer},
	}
}

func printSummary(w io.Writer, summary layers.Summary) {
	_, _ = fmt.Fprintln(w, titleStyle.Render("Model"))
	table := newPlainTable(lipgloss.Left, lipgloss.Left, lipgloss.Right, lipgloss.Left)
	table.Table.Headers("Layer (type)", "Output Shape", "Param #", "Activation")
	table.Row(false, "input (InputLayer)", summary.InputShape.String(), "0", "")
	for _, row := range summary.Rows {
		table.Row(false, fmt.Sprintf("%s (%s)", row.Name, row.Type), row.OutputShape.String(),
			humanize.Comma(int64(row.NumParams)), row.Activation.String())
	}
	_, _ = fmt.Fprintln(w, table.Table.Render())
	_, _ = fmt.Fprintf(w, "Total params: %s\n", humanize.Comma(int64(summary.TotalParams)))
}

// printCheck prints the comparison table and returns the number of failed checks.
func printCheck(w io.Writer, rows []CheckRow) (failures int) {
	_, _ = fmt.Fprintln(w, titleStyle.Render("Check"))
	table := newPlainTable(lipgloss.Left, lipgloss.Left, lipgloss.Right)
	table.Table.Headers("Layer", "Axis", "Input", "Kernel", "Stride", "Padding", "Pads", "Layers", "Formula", "Status")
	for _, row := range rows {
		status, closed := "ok", strconv.Itoa(row.Closed)
		if row.Err != nil {
			status, closed = row.Err.Error(), "-"
		} else if !row.Ok() {
			status = "MISMATCH"
		}
		if !row.Ok() {
			failures++
		}
		table.Row(!row.Ok(), row.Layer, row.Axis,
			strconv.Itoa(row.Params.InputSize), strconv.Itoa(row.Params.KernelSize), strconv.Itoa(row.Params.Stride),
			row.Params.Padding.String(), fmt.Sprintf("%d+%d", row.Paddings[0], row.Paddings[1]),
			strconv.Itoa(row.Derived), closed, status)
	}
	_, _ = fmt.Fprintln(w, table.Table.Render())
	return failures
}
