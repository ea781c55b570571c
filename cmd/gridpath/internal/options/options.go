// Package options merges the command line flags and the YAML configuration
// into a processor.
package options

import (
	"flag"
	"runtime"
	"time"

	"github.com/esimov/gridpath"
	"github.com/esimov/gridpath/imop"
)

// Flags holds the values of the command line flags.
type Flags struct {
	Rows        int
	Cols        int
	StartRow    int
	StartCol    int
	EndRow      int
	EndCol      int
	Limit       int
	Destination string
	FramesDir   string
	FrameExt    string
	CellSize    int
	Scale       float64
	Delay       time.Duration
	Caption     bool
	Blend       string
	Composite   string
	PathColor   string
	Preview     bool
	ASCII       bool
	Interactive bool
	ConfigFile  string
	Workers     int
}

// Register defines the flags on fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.IntVar(&f.Rows, "rows", 5, "Grid rows")
	fs.IntVar(&f.Cols, "cols", 5, "Grid columns")
	fs.IntVar(&f.StartRow, "start-row", 0, "Start cell row")
	fs.IntVar(&f.StartCol, "start-col", 0, "Start cell column")
	fs.IntVar(&f.EndRow, "end-row", -1, "End cell row (defaults to the last row)")
	fs.IntVar(&f.EndCol, "end-col", -1, "End cell column (defaults to the last column)")
	fs.IntVar(&f.Limit, "limit", gridpath.DefaultLimit, "Maximum number of paths")
	fs.StringVar(&f.Destination, "out", "path_animation.gif", "Destination GIF, - for stdout")
	fs.StringVar(&f.FramesDir, "frames", "", "Directory to export the individual frames into")
	fs.StringVar(&f.FrameExt, "ext", ".png", "Frame file format: png, jpg, bmp, gif")
	fs.IntVar(&f.CellSize, "cell", 48, "Cell size in pixels")
	fs.Float64Var(&f.Scale, "scale", 1, "Scale factor of the exported frames")
	fs.DurationVar(&f.Delay, "delay", gridpath.DefaultDelay, "Time each frame is shown")
	fs.BoolVar(&f.Caption, "caption", true, "Show the path number below the grid")
	fs.StringVar(&f.Blend, "blend", "", "Blend mode of the path layer: darken, lighten, multiply, screen, overlay")
	fs.StringVar(&f.Composite, "composite", imop.SrcOver, "Porter-Duff operator of the path layer: copy, src_over, dst_over, src_in, dst_in, src_out, dst_out, src_atop, dst_atop, xor")
	fs.StringVar(&f.PathColor, "color", "#0000ff", "Path color")
	fs.BoolVar(&f.Preview, "preview", false, "Show the animation in a window")
	fs.BoolVar(&f.ASCII, "ascii", false, "Print the paths as text")
	fs.BoolVar(&f.Interactive, "interactive", false, "Prompt for the grid parameters")
	fs.StringVar(&f.ConfigFile, "config", "", "YAML configuration file")
	fs.IntVar(&f.Workers, "conc", runtime.NumCPU(), "Number of frames rendered concurrently")

	return f
}

// Processor builds the processor from the defaults, the configuration file
// and the flags set on fs, in increasing order of precedence. An end cell
// given nowhere follows the final grid size. The destination taken from the
// configuration file is stored back into f.Destination unless -out was set.
func (f *Flags) Processor(fs *flag.FlagSet) (*gridpath.Processor, error) {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	proc := gridpath.NewProcessor(f.Rows, f.Cols)
	endSet := false

	if f.ConfigFile != "" {
		cfg, err := gridpath.LoadConfig(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Apply(proc)
		endSet = cfg.End != nil
		if cfg.Output != nil && !set["out"] {
			f.Destination = *cfg.Output
		}
	}

	for name := range set {
		switch name {
		case "rows":
			proc.Rows = f.Rows
		case "cols":
			proc.Cols = f.Cols
		case "start-row":
			proc.Start.Row = f.StartRow
		case "start-col":
			proc.Start.Col = f.StartCol
		case "end-row":
			proc.End.Row = f.EndRow
			endSet = true
		case "end-col":
			proc.End.Col = f.EndCol
			endSet = true
		case "limit":
			proc.Limit = f.Limit
		case "cell":
			proc.CellSize = f.CellSize
		case "scale":
			proc.Scale = f.Scale
		case "delay":
			proc.Delay = f.Delay
		case "caption":
			proc.Caption = f.Caption
		case "blend":
			proc.Blend = f.Blend
		case "composite":
			proc.Composite = f.Composite
		case "color":
			proc.PathColor = f.PathColor
		case "conc":
			proc.Workers = f.Workers
		}
	}

	if !endSet {
		proc.End = gridpath.Cell{Row: proc.Rows - 1, Col: proc.Cols - 1}
	}
	// A negative end coordinate on the command line selects the last row or column.
	if set["end-row"] && f.EndRow < 0 {
		proc.End.Row = proc.Rows - 1
	}
	if set["end-col"] && f.EndCol < 0 {
		proc.End.Col = proc.Cols - 1
	}
	proc.Preview = f.Preview
	if proc.Delay <= 0 {
		proc.Delay = 10 * time.Millisecond
	}

	return proc, nil
}
