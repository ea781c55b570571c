package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(rect image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(rect)
	draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestComposite_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())
	assert.Error(op.Set("not_supported"))
	assert.Equal(SrcOver, op.Get())
	assert.NoError(op.Set(Xor))
	assert.Equal(Xor, op.Get())
}

func TestComposite_Operators(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)
	cyan := color.NRGBA{G: 0xff, B: 0xff, A: 0xff}
	magenta := color.NRGBA{R: 0xff, B: 0xff, A: 0xff}

	// Source covers the left half only, backdrop covers the top half only.
	source := image.NewNRGBA(rect)
	draw.Draw(source, image.Rect(0, 0, 2, 4), &image.Uniform{cyan}, image.Point{}, draw.Src)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(backdrop, image.Rect(0, 0, 4, 2), &image.Uniform{magenta}, image.Point{}, draw.Src)

	transparent := color.NRGBA{}
	cases := []struct {
		op                            string
		both, srcOnly, dstOnly, empty color.NRGBA
	}{
		{SrcOver, cyan, cyan, magenta, transparent},
		{DstOver, magenta, cyan, magenta, transparent},
		{SrcIn, cyan, transparent, transparent, transparent},
		{DstIn, magenta, transparent, transparent, transparent},
		{SrcOut, transparent, cyan, transparent, transparent},
		{DstOut, transparent, transparent, magenta, transparent},
		{SrcAtop, cyan, transparent, magenta, transparent},
		{DstAtop, magenta, cyan, transparent, transparent},
		{Xor, transparent, cyan, magenta, transparent},
		{Copy, cyan, cyan, transparent, transparent},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			op := InitOp()
			assert.NoError(t, op.Set(tc.op))
			out := op.Draw(backdrop, source, nil)

			assert.Equal(t, tc.both, out.NRGBAAt(0, 0))
			assert.Equal(t, tc.srcOnly, out.NRGBAAt(0, 3))
			assert.Equal(t, tc.dstOnly, out.NRGBAAt(3, 0))
			assert.Equal(t, tc.empty, out.NRGBAAt(3, 3))
		})
	}
}

func TestComposite_HalfTransparentSource(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	backdrop := fill(rect, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	source := fill(rect, color.NRGBA{A: 0x80})

	out := InitOp().Draw(backdrop, source, nil)
	c := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0xff), c.A)
	assert.InDelta(t, 127, int(c.R), 1)
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	blend := NewBlend()
	assert.Empty(blend.Get())
	assert.Error(blend.Set("blend_mode_not_supported"))
	assert.Empty(blend.Get())

	rect := image.Rect(0, 0, 1, 1)
	backdrop := fill(rect, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff})
	source := fill(rect, color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff})

	cases := map[string]color.NRGBA{
		Darken:   {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
		Lighten:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Multiply: {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
		Screen:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	for mode, want := range cases {
		assert.NoError(blend.Set(mode))
		out := InitOp().Draw(backdrop, source, blend)
		assert.Equal(want, out.NRGBAAt(0, 0), mode)
	}
}
