package gridpath

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math/big"
	"runtime"
	"time"

	"github.com/esimov/gridpath/imop"
	"github.com/esimov/gridpath/utils"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLimit is the number of paths enumerated when no limit is given.
	DefaultLimit = 50
	// DefaultDelay is the time each frame is shown, two frames per second.
	DefaultDelay = 500 * time.Millisecond

	defaultCellSize = 48
	minCellSize     = 8
	// maxWorkers sets the maximum number of concurrently running workers.
	maxWorkers = 20
)

// Processor options
type Processor struct {
	Rows     int
	Cols     int
	Start    Cell
	End      Cell
	Limit    int
	CellSize int
	Scale    float64
	Delay    time.Duration
	Caption  bool
	Blend    string
	// Composite is the Porter-Duff operator placing the path layer on the board.
	Composite string
	Workers   int
	Preview   bool

	BackgroundColor string
	GridColor       string
	StartColor      string
	EndColor        string
	PathColor       string
	TextColor       string

	Spinner *utils.Spinner
}

// Result holds the outcome of a Process call.
type Result struct {
	// Paths are the enumerated paths in discovery order.
	Paths []Path
	// Total is the number of monotone paths between the endpoints, ignoring the limit.
	Total *big.Int
	// Animation is the encoded animation, one frame per path.
	Animation *gif.GIF
}

// Truncated reports whether the limit cut off some of the paths.
func (r *Result) Truncated() bool {
	return r.Total.Cmp(big.NewInt(int64(len(r.Paths)))) > 0
}

// NewProcessor returns a processor for a rows×cols grid with the end cell in the
// bottom-right corner and the remaining options set to their defaults.
func NewProcessor(rows, cols int) *Processor {
	return &Processor{
		Rows:            rows,
		Cols:            cols,
		End:             Cell{Row: rows - 1, Col: cols - 1},
		Limit:           DefaultLimit,
		CellSize:        defaultCellSize,
		Scale:           1,
		Delay:           DefaultDelay,
		Caption:         true,
		Composite:       imop.SrcOver,
		Workers:         runtime.NumCPU(),
		BackgroundColor: "#ffffff",
		GridColor:       "#c8c8c8",
		StartColor:      "#008000",
		EndColor:        "#ff0000",
		PathColor:       "#0000ff",
		TextColor:       "#333333",
	}
}

// Grid returns the processor's grid dimensions.
func (p *Processor) Grid() Grid {
	return Grid{Rows: p.Rows, Cols: p.Cols}
}

// Paths validates the options and enumerates the paths between the endpoints.
func (p *Processor) Paths() ([]Path, error) {
	if err := p.Grid().Validate(p.Start, p.End); err != nil {
		return nil, err
	}
	if err := ValidateLimit(p.Limit); err != nil {
		return nil, err
	}
	return Enumerate(p.Start, p.End, p.Rows, p.Cols, p.Limit), nil
}

// Validate checks the grid, the endpoints, the limit and the rendering options
// without rendering anything.
func (p *Processor) Validate() error {
	if err := p.Grid().Validate(p.Start, p.End); err != nil {
		return err
	}
	if err := ValidateLimit(p.Limit); err != nil {
		return err
	}
	_, err := NewRenderer(p)
	return err
}

// Process enumerates the paths, renders one frame per path and encodes
// the looping animation into w.
func (p *Processor) Process(ctx context.Context, w io.Writer) (*Result, error) {
	paths, err := p.Paths()
	if err != nil {
		return nil, err
	}
	anim, err := p.Animate(ctx, paths)
	if err != nil {
		return nil, err
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return nil, fmt.Errorf("could not encode the animation: %w", err)
	}
	// Encoding does not observe ctx; a cancellation arriving meanwhile still fails the run.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Paths:     paths,
		Total:     CountPaths(p.Start, p.End),
		Animation: anim,
	}, nil
}

// Animate renders the paths as frames of an animation which loops indefinitely.
// Frames are rendered concurrently but keep the order of paths.
// An empty path set results in a single frame showing the board only.
func (p *Processor) Animate(ctx context.Context, paths []Path) (*gif.GIF, error) {
	r, err := NewRenderer(p)
	if err != nil {
		return nil, err
	}
	pal := p.gifPalette(r.colors)
	delay := utils.Max(int(p.Delay/(10*time.Millisecond)), 1)

	if len(paths) == 0 {
		return &gif.GIF{
			Image: []*image.Paletted{toPaletted(r.Board("no paths"), pal)},
			Delay: []int{delay},
		}, nil
	}

	frames := make([]*image.Paletted, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frames[i] = toPaletted(r.Frame(path, i, len(paths)), pal)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	delays := make([]int, len(frames))
	for i := range delays {
		delays[i] = delay
	}
	return &gif.GIF{
		Image:     frames,
		Delay:     delays,
		LoopCount: 0,
	}, nil
}

// workers returns the number of concurrently running workers, limited to maxWorkers.
func (p *Processor) workers() int {
	if p.Workers <= 0 || p.Workers > maxWorkers {
		return utils.Min(runtime.NumCPU(), maxWorkers)
	}
	return p.Workers
}

// Palette parses the configured hex colors.
func (p *Processor) Palette() (Palette, error) {
	var (
		pal Palette
		err error
	)
	entries := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"background", p.BackgroundColor, &pal.Background},
		{"grid", p.GridColor, &pal.Grid},
		{"start", p.StartColor, &pal.Start},
		{"end", p.EndColor, &pal.End},
		{"path", p.PathColor, &pal.Path},
		{"text", p.TextColor, &pal.Text},
	}
	for _, e := range entries {
		if *e.dst, err = utils.HexToRGBA(e.hex); err != nil {
			return Palette{}, fmt.Errorf("%s color: %w", e.name, err)
		}
	}
	return pal, nil
}

// gifPalette puts the frame colors in front of the web safe palette,
// so the flat areas of a frame are reproduced exactly.
func (p *Processor) gifPalette(colors Palette) color.Palette {
	pal := make(color.Palette, 0, 256)
	pal = append(pal, colors.Colors()...)
	for _, c := range palette.WebSafe {
		if len(pal) == cap(pal) {
			break
		}
		pal = append(pal, c)
	}
	return pal
}

// toPaletted converts a frame to a paletted image using the nearest palette colors.
func toPaletted(img *image.NRGBA, pal color.Palette) *image.Paletted {
	dst := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(dst, img.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
