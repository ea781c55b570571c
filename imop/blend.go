package imop

import (
	"fmt"

	"github.com/esimov/gridpath/utils"
)

// Separable blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

var blendModes = []string{Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend with no active mode.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(blendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes the source color s with the backdrop b channel by channel.
func (o *Blend) apply(s, b rgba) rgba {
	fn := func(cs, cb float64) float64 {
		switch o.OpType {
		case Darken:
			return utils.Min(cs, cb)
		case Lighten:
			return utils.Max(cs, cb)
		case Multiply:
			return cs * cb
		case Screen:
			return 1 - (1-cs)*(1-cb)
		case Overlay:
			if cb <= 0.5 {
				return 2 * cs * cb
			}
			return 1 - 2*(1-cs)*(1-cb)
		}
		return cs
	}
	return rgba{r: fn(s.r, b.r), g: fn(s.g, b.g), b: fn(s.b, b.b), a: s.a}
}
