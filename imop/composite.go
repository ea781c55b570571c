// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used to lay the path layer over the grid board.
// The image/draw core package implements only source-over-destination and
// source; this package covers the rest.
package imop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/gridpath/utils"
)

// Porter-Duff composition operators.
const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

var compositeOps = []string{Copy, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
}

// InitOp returns a Composite using the source-over operator.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates one of the supported composition operators.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(compositeOps, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// Draw composites src over the backdrop dst and returns the result as a new image
// with the bounds of dst. Pixels of src outside dst are ignored. When blend is not nil
// and has an active mode, the source color is mixed with the backdrop first.
func (op *Composite) Draw(dst, src *image.NRGBA, blend *Blend) *image.NRGBA {
	bounds := dst.Bounds()
	out := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			b := normalize(dst.NRGBAAt(x, y))
			var s rgba
			if (image.Point{X: x, Y: y}).In(src.Bounds()) {
				s = normalize(src.NRGBAAt(x, y))
			}
			if blend != nil && blend.Get() != "" && s.a > 0 {
				mixed := blend.apply(s, b)
				// The blended color only applies where the backdrop is present.
				s.r = (1-b.a)*s.r + b.a*mixed.r
				s.g = (1-b.a)*s.g + b.a*mixed.g
				s.b = (1-b.a)*s.b + b.a*mixed.b
			}
			out.SetNRGBA(x, y, op.compose(s, b).denormalize())
		}
	}
	return out
}

// rgba is a straight alpha color with channels in the [0, 1] range.
type rgba struct {
	r, g, b, a float64
}

func normalize(c color.NRGBA) rgba {
	return rgba{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
		a: float64(c.A) / 255,
	}
}

func (c rgba) denormalize() color.NRGBA {
	return color.NRGBA{
		R: uint8(utils.Clamp(c.r, 0, 1)*255 + 0.5),
		G: uint8(utils.Clamp(c.g, 0, 1)*255 + 0.5),
		B: uint8(utils.Clamp(c.b, 0, 1)*255 + 0.5),
		A: uint8(utils.Clamp(c.a, 0, 1)*255 + 0.5),
	}
}

// compose applies the Porter-Duff formula: co = Fa*as*Cs + Fb*ab*Cb, ao = Fa*as + Fb*ab.
func (op *Composite) compose(s, b rgba) rgba {
	var fa, fb float64
	switch op.Get() {
	case Copy:
		fa, fb = 1, 0
	case SrcOver:
		fa, fb = 1, 1-s.a
	case DstOver:
		fa, fb = 1-b.a, 1
	case SrcIn:
		fa, fb = b.a, 0
	case DstIn:
		fa, fb = 0, s.a
	case SrcOut:
		fa, fb = 1-b.a, 0
	case DstOut:
		fa, fb = 0, 1-s.a
	case SrcAtop:
		fa, fb = b.a, 1-s.a
	case DstAtop:
		fa, fb = 1-b.a, s.a
	case Xor:
		fa, fb = 1-b.a, 1-s.a
	}

	ao := fa*s.a + fb*b.a
	if ao == 0 {
		return rgba{}
	}
	// Channels are premultiplied by the formula, divide back to straight alpha.
	return rgba{
		r: (fa*s.a*s.r + fb*b.a*b.r) / ao,
		g: (fa*s.a*s.g + fb*b.a*b.g) / ao,
		b: (fa*s.a*s.b + fb*b.a*b.b) / ao,
		a: ao,
	}
}
