// Package preview shows the path animation in a desktop window.
package preview

import (
	"image"
	"image/color"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/esimov/gridpath/utils"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// Gui is the preview window cycling through the animation frames.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
		background color.NRGBA
	}
	frames []image.Image
	delay  time.Duration
	index  int
	shown  time.Time
}

// NewGUI initializes the preview window for the given frames.
func NewGUI(frames []image.Image, delay time.Duration, background color.NRGBA) *Gui {
	g := &Gui{
		frames: frames,
		delay:  utils.Max(delay, 10*time.Millisecond),
	}
	g.cfg.background = background
	g.cfg.window.title = "Grid paths"

	if len(frames) > 0 {
		b := frames[0].Bounds()
		g.cfg.window.w, g.cfg.window.h = float64(b.Dx()), float64(b.Dy())
	}
	g.cfg.window.w, g.cfg.window.h = g.getWindowSize()

	return g
}

// getWindowSize returns the window dimension, keeping the aspect ratio of the frames.
func (g *Gui) getWindowSize() (float64, float64) {
	w, h := g.cfg.window.w, g.cfg.window.h
	r := getRatio(w, h)

	return w * r, h * r
}

// getRatio returns the scale factor fitting w×h into the maximum window size.
func getRatio(w, h float64) float64 {
	if w <= maxScreenX && h <= maxScreenY {
		return 1
	}
	return utils.Min(maxScreenX/w, maxScreenY/h)
}

// advance moves to the next frame once the current one has been shown long enough.
// It returns the time the next frame is due.
func (g *Gui) advance(now time.Time) time.Time {
	if g.shown.IsZero() {
		g.shown = now
	}
	if len(g.frames) > 1 && now.Sub(g.shown) >= g.delay {
		g.index = (g.index + 1) % len(g.frames)
		g.shown = now
	}
	return g.shown.Add(g.delay)
}

// Run opens the window and loops over the frames until the window
// is closed or the ESC key is pressed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.window.title),
		app.Size(unit.Dp(float32(g.cfg.window.w)), unit.Dp(float32(g.cfg.window.h))),
	)

	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			g.draw(gtx, e.Now)
			e.Frame(gtx.Ops)
		case key.Event:
			if e.Name == key.NameEscape {
				w.Perform(system.ActionClose)
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// draw paints the current frame scaled to fit the window and schedules the next redraw.
func (g *Gui) draw(gtx layout.Context, now time.Time) {
	paint.Fill(gtx.Ops, g.cfg.background)
	if len(g.frames) == 0 {
		return
	}
	next := g.advance(now)

	img := g.frames[g.index]
	size := gtx.Constraints.Max
	b := img.Bounds()
	scale := float32(utils.Min(float64(size.X)/float64(b.Dx()), float64(size.Y)/float64(b.Dy())))

	defer op.Offset(image.Pt(
		(size.X-int(float32(b.Dx())*scale))/2,
		(size.Y-int(float32(b.Dy())*scale))/2,
	)).Push(gtx.Ops).Pop()
	defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(scale, scale))).Push(gtx.Ops).Pop()

	defer clip.Rect{Max: b.Size()}.Push(gtx.Ops).Pop()

	paint.NewImageOp(img).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	op.InvalidateOp{At: next}.Add(gtx.Ops)
}
