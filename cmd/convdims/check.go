package main

import (
	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/gomlx/convdims/pkg/layers"
)

// CheckRow compares, for one spatial axis of one layer, the size derived by the layer stack with the
// closed-form formula.
type CheckRow struct {
	Layer, Axis     string
	Params          convdims.Params
	Paddings        [2]int
	Derived, Closed int
	Err             error
}

// Ok returns whether the formula succeeded and agrees with the derived size.
func (r CheckRow) Ok() bool {
	return r.Err == nil && r.Derived == r.Closed
}

// checkSummary returns one CheckRow per layer and spatial axis.
func checkSummary(summary layers.Summary) []CheckRow {
	var rows []CheckRow
	for _, layer := range summary.Rows {
		axes := []struct {
			name     string
			params   convdims.Params
			paddings [2]int
			derived  int
		}{
			{"height", layer.HeightParams, layer.HeightPaddings, layer.OutputShape.Height},
			{"width", layer.WidthParams, layer.WidthPaddings, layer.OutputShape.Width},
		}
		for _, axis := range axes {
			row := CheckRow{
				Layer:    layer.Name,
				Axis:     axis.name,
				Params:   axis.params,
				Paddings: axis.paddings,
				Derived:  axis.derived,
			}
			row.Closed, row.Err = convdims.OutputSize(axis.params.InputSize, axis.params.KernelSize,
				axis.params.Stride, axis.params.Padding)
			rows = append(rows, row)
		}
	}
	return rows
}
