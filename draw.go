package gridpath

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/gridpath/imop"
	"github.com/esimov/gridpath/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	// captionHeight is the height of the text band below the board.
	captionHeight = 20
	// markerRatio and dotRatio are the marker and path dot radii relative to the cell size.
	markerRatio = 0.36
	dotRatio    = 0.26
	// kappa approximates a quarter circle with a cubic Bézier curve.
	kappa = 0.5522847498
)

// Palette holds the colors used to render a frame.
type Palette struct {
	Background color.NRGBA
	Grid       color.NRGBA
	Start      color.NRGBA
	End        color.NRGBA
	Path       color.NRGBA
	Text       color.NRGBA
}

// Colors returns the palette entries in a fixed order.
func (p Palette) Colors() []color.Color {
	return []color.Color{p.Background, p.Grid, p.Start, p.End, p.Path, p.Text}
}

// Renderer draws the grid board and the path frames.
type Renderer struct {
	grid       Grid
	start, end Cell
	cellSize   int
	caption    bool
	colors     Palette
	composite  *imop.Composite
	blend      *imop.Blend
	board      *image.NRGBA
}

// NewRenderer creates a renderer for the processor's grid and endpoints.
// The board is drawn once and reused as the backdrop of every frame.
func NewRenderer(p *Processor) (*Renderer, error) {
	colors, err := p.Palette()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		grid:      p.Grid(),
		start:     p.Start,
		end:       p.End,
		cellSize:  utils.Max(p.CellSize, minCellSize),
		caption:   p.Caption,
		colors:    colors,
		composite: imop.InitOp(),
		blend:     imop.NewBlend(),
	}
	if len(p.Composite) > 0 {
		if err := r.composite.Set(p.Composite); err != nil {
			return nil, err
		}
	}
	if len(p.Blend) > 0 {
		if err := r.blend.Set(p.Blend); err != nil {
			return nil, err
		}
	}
	r.board = r.drawBoard()

	return r, nil
}

// Size returns the frame dimensions in pixels.
func (r *Renderer) Size() (int, int) {
	w, h := r.grid.Cols*r.cellSize, r.grid.Rows*r.cellSize
	if r.caption {
		h += captionHeight
	}
	return w, h
}

// Board returns a copy of the empty board with the start and end markers.
func (r *Renderer) Board(label string) *image.NRGBA {
	img := imaging.Clone(r.board)
	if r.caption {
		r.drawCaption(img, label)
	}
	return img
}

// Frame renders the path over the board. The index is 0-based and is shown
// in the caption as "path index+1/total".
func (r *Renderer) Frame(p Path, index, total int) *image.NRGBA {
	w, h := r.Size()
	layer := image.NewNRGBA(image.Rect(0, 0, w, h))
	radius := float32(r.cellSize) * dotRatio
	for _, c := range p {
		cx, cy := r.center(c)
		drawCircle(layer, cx, cy, radius, r.colors.Path)
	}

	img := r.composite.Draw(r.board, layer, r.blend)
	if r.caption {
		r.drawCaption(img, fmt.Sprintf("path %d/%d", index+1, total))
	}
	return img
}

// drawBoard draws the cell background, the grid lines and the endpoint markers.
func (r *Renderer) drawBoard() *image.NRGBA {
	w, h := r.Size()
	img := imaging.New(w, h, r.colors.Background)
	line := image.NewUniform(r.colors.Grid)

	bw, bh := r.grid.Cols*r.cellSize, r.grid.Rows*r.cellSize
	for x := 0; x <= r.grid.Cols; x++ {
		px := utils.Min(x*r.cellSize, bw-1)
		draw.Draw(img, image.Rect(px, 0, px+1, bh), line, image.Point{}, draw.Src)
	}
	for y := 0; y <= r.grid.Rows; y++ {
		py := utils.Min(y*r.cellSize, bh-1)
		draw.Draw(img, image.Rect(0, py, bw, py+1), line, image.Point{}, draw.Src)
	}

	radius := float32(r.cellSize) * markerRatio
	cx, cy := r.center(r.start)
	drawCircle(img, cx, cy, radius, r.colors.Start)
	cx, cy = r.center(r.end)
	drawCircle(img, cx, cy, radius, r.colors.End)

	return img
}

// center returns the pixel coordinates of the cell center.
func (r *Renderer) center(c Cell) (float32, float32) {
	half := float32(r.cellSize) / 2
	return float32(c.Col*r.cellSize) + half, float32(c.Row*r.cellSize) + half
}

// drawCaption writes the label centered in the caption band.
func (r *Renderer) drawCaption(img *image.NRGBA, label string) {
	face := basicfont.Face7x13
	w, h := r.Size()
	width := font.MeasureString(face, label).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.colors.Text),
		Face: face,
		Dot:  fixed.P(utils.Max((w-width)/2, 2), h-captionHeight+(captionHeight-face.Height)/2+face.Ascent),
	}
	d.DrawString(label)
}

// drawCircle draws an anti-aliased filled circle. Only the circle's bounding box is rasterized.
func drawCircle(dst *image.NRGBA, cx, cy, radius float32, col color.NRGBA) {
	bbox := image.Rect(
		int(math.Floor(float64(cx-radius))),
		int(math.Floor(float64(cy-radius))),
		int(math.Ceil(float64(cx+radius))),
		int(math.Ceil(float64(cy+radius))),
	).Intersect(dst.Bounds())
	if bbox.Empty() {
		return
	}

	// Rasterizer coordinates are relative to the bounding box.
	x, y := cx-float32(bbox.Min.X), cy-float32(bbox.Min.Y)
	k := radius * kappa

	z := vector.NewRasterizer(bbox.Dx(), bbox.Dy())
	z.MoveTo(x+radius, y)
	z.CubeTo(x+radius, y+k, x+k, y+radius, x, y+radius)
	z.CubeTo(x-k, y+radius, x-radius, y+k, x-radius, y)
	z.CubeTo(x-radius, y-k, x-k, y-radius, x, y-radius)
	z.CubeTo(x+k, y-radius, x+radius, y-k, x+radius, y)
	z.ClosePath()
	z.Draw(dst, bbox, image.NewUniform(col), image.Point{})
}
