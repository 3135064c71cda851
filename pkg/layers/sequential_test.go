package layers

import (
	"testing"

	"github.com/gomlx/convdims/pkg/convdims"
	"github.com/gomlx/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	t.Run("2D-PadSame", func(t *testing.T) {
		model, err := NewSequential(Shape{Height: 128, Width: 128, Channels: 3})
		require.NoError(t, err)
		conv := NewConv2D(32).KernelSize(3).Strides(2).PadSame().Activation(ActivationRelu).Done()
		require.NoError(t, model.Add(conv))
		assert.Equal(t, Shape{Height: 64, Width: 64, Channels: 32}, model.OutputShape())
		assert.Equal(t, 32, conv.Filters())
		assert.Equal(t, ActivationRelu, conv.Activation())
		assert.Empty(t, conv.Name(), "Add names a copy of the layer")
		assert.Equal(t, "conv2d", model.Layers()[0].Name())
		assert.Equal(t, "(None, 64, 64, 32)", model.OutputShape().String())

		summary := model.Summary()
		require.Len(t, summary.Rows, 1)
		assert.Equal(t, "conv2d", summary.Rows[0].Name)
		assert.Equal(t, "Conv2D", summary.Rows[0].Type)
		assert.Equal(t, ActivationRelu, summary.Rows[0].Activation)
		assert.Equal(t, 896, summary.Rows[0].NumParams)
		assert.Equal(t, 896, summary.TotalParams)
		assert.Equal(t, [2]int{0, 1}, summary.Rows[0].HeightPaddings)
		assert.Equal(t, [2]int{0, 1}, summary.Rows[0].WidthPaddings)

		// The layer-derived width must match the closed-form formula.
		want, err := convdims.ComputeOutputSize(128, 3, 2, "same")
		require.NoError(t, err)
		assert.Equal(t, want, model.OutputShape().Width)
	})

	t.Run("2D-NoPadding", func(t *testing.T) {
		model, err := NewSequential(Shape{Height: 200, Width: 200, Channels: 1})
		require.NoError(t, err)
		require.NoError(t, model.Add(NewConv2D(16).KernelSize(2).Strides(2).NoPadding().Done()))
		assert.Equal(t, Shape{Height: 100, Width: 100, Channels: 16}, model.OutputShape())
		assert.Equal(t, 80, model.Summary().TotalParams)

		want, err := convdims.ComputeOutputSize(200, 2, 2, "valid")
		require.NoError(t, err)
		assert.Equal(t, want, model.OutputShape().Height)
	})

	t.Run("Stack", func(t *testing.T) {
		model, err := NewSequential(Shape{Height: 32, Width: 24, Channels: 3})
		require.NoError(t, err)
		require.NoError(t, model.Add(NewConv2D(8).KernelSize(5).Done()))
		require.NoError(t, model.Add(NewConv2D(16).Strides(2).PadSame().Done()))
		require.NoError(t, model.Add(NewConv2D(4).KernelSize(1).Name("head").Done()))
		require.Len(t, model.Layers(), 3)

		summary := model.Summary()
		assert.Equal(t, []string{"conv2d", "conv2d_1", "head"},
			[]string{summary.Rows[0].Name, summary.Rows[1].Name, summary.Rows[2].Name})
		assert.Equal(t, Shape{Height: 28, Width: 20, Channels: 8}, summary.Rows[0].OutputShape)
		assert.Equal(t, Shape{Height: 14, Width: 10, Channels: 16}, summary.Rows[1].OutputShape)
		assert.Equal(t, summary.Rows[0].OutputShape, summary.Rows[1].InputShape)
		assert.Equal(t, Shape{Height: 14, Width: 10, Channels: 4}, model.OutputShape())
		assert.Equal(t, (5*5*3+1)*8+(3*3*8+1)*16+(1*1*16+1)*4, summary.TotalParams)
	})

	t.Run("KernelLargerThanInput", func(t *testing.T) {
		model, err := NewSequential(Shape{Height: 4, Width: 8, Channels: 1})
		require.NoError(t, err)
		err = model.Add(NewConv2D(2).KernelSize(5).Done())
		require.ErrorIs(t, err, convdims.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "height")
		assert.Empty(t, model.Layers())
		assert.Equal(t, model.InputShape(), model.OutputShape())

		// With "same" padding the same kernel fits.
		require.NoError(t, model.Add(NewConv2D(2).KernelSize(5).PadSame().Done()))
		assert.Equal(t, Shape{Height: 4, Width: 8, Channels: 2}, model.OutputShape())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		model, err := NewSequential(Shape{Height: 8, Width: 8, Channels: 1})
		require.NoError(t, err)
		require.NoError(t, model.Add(NewConv2D(2).Name("a").PadSame().Done()))
		err = model.Add(NewConv2D(2).Name("a").PadSame().Done())
		require.ErrorIs(t, err, convdims.ErrInvalidArgument)
		require.ErrorIs(t, model.Add(nil), convdims.ErrInvalidArgument)
		assert.Len(t, model.Layers(), 1)
	})

	t.Run("InvalidInputShape", func(t *testing.T) {
		_, err := NewSequential(Shape{Height: 0, Width: 8, Channels: 1})
		require.ErrorIs(t, err, convdims.ErrInvalidArgument)
	})
}

// TestSequentialMatchesFormula checks the shapes derived through explicit paddings against the
// closed-form formula for a sweep of single-layer models.
func TestSequentialMatchesFormula(t *testing.T) {
	for _, padding := range convdims.PaddingValues() {
		for input := 1; input <= 20; input++ {
			for kernel := 1; kernel <= 6; kernel++ {
				for stride := 1; stride <= 4; stride++ {
					want, wantErr := convdims.OutputSize(input, kernel, stride, padding)
					model, err := NewSequential(Shape{Height: input, Width: input, Channels: 3})
					require.NoError(t, err)
					err = model.Add(NewConv2D(1).KernelSize(kernel).Strides(stride).Padding(padding).Done())
					if wantErr != nil {
						require.ErrorIs(t, err, convdims.ErrInvalidArgument)
						continue
					}
					require.NoError(t, err)
					require.Equalf(t, want, model.OutputShape().Height,
						"input=%d, kernel=%d, stride=%d, padding=%s", input, kernel, stride, padding)
				}
			}
		}
	}
}

func TestConv2DBuilderPanics(t *testing.T) {
	require.Panics(t, func() { NewConv2D(0) })
	require.Panics(t, func() { NewConv2D(1).KernelSize(0) })
	require.Panics(t, func() { NewConv2D(1).Strides(-1) })
	require.Panics(t, func() { NewConv2D(1).Padding(convdims.Padding(5)) })
	err := exceptions.TryCatch[error](func() { NewConv2D(1).Activation(Activation(99)) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Activation(99)")
}

func TestParseActivation(t *testing.T) {
	a, err := ParseActivation("relu")
	require.NoError(t, err)
	assert.Equal(t, ActivationRelu, a)
	a, err = ParseActivation("")
	require.NoError(t, err)
	assert.Equal(t, ActivationNone, a)
	a, err = ParseActivation("SiLU")
	require.NoError(t, err)
	assert.Equal(t, ActivationSwish, a)
	assert.Equal(t, "leaky_relu", ActivationLeakyRelu.String())
	_, err = ParseActivation("softmax2")
	require.ErrorIs(t, err, convdims.ErrInvalidArgument)
}
