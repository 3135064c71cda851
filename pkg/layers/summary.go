package layers

import "github.com/gomlx/convdims/pkg/convdims"

// SummaryRow describes one layer of a Sequential.
type SummaryRow struct {
	Name, Type  string
	Activation  Activation
	InputShape  Shape
	OutputShape Shape
	NumParams   int

	// Params used along each spatial axis, and the padding added at the start and end of each.
	HeightParams, WidthParams     convdims.Params
	HeightPaddings, WidthPaddings [2]int
}

// Summary of a Sequential model.
type Summary struct {
	InputShape  Shape
	Rows        []SummaryRow
	TotalParams int
}

// Summary returns a description of each layer, with its output shape and number of parameters.
func (s *Sequential) Summary() Summary {
	summary := Summary{InputShape: s.inputShape}
	input := s.inputShape
	for ii, layer := range s.layers {
		row := SummaryRow{
			Name:         layer.Name(),
			Type:         "Conv2D",
			Activation:   layer.Activation(),
			InputShape:   input,
			OutputShape:  s.outputs[ii],
			NumParams:    layer.NumParams(input.Channels),
			HeightParams: layer.Params(input.Height),
			WidthParams:  layer.Params(input.Width),
		}
		// Paddings were already validated by Add.
		row.HeightPaddings, _ = row.HeightParams.Paddings()
		row.WidthPaddings, _ = row.WidthParams.Paddings()
		summary.Rows = append(summary.Rows, row)
		summary.TotalParams += row.NumParams
		input = s.outputs[ii]
	}
	return summary
}
