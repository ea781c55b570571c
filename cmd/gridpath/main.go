package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"gioui.org/app"
	"github.com/esimov/gridpath"
	"github.com/esimov/gridpath/cmd/gridpath/internal/options"
	"github.com/esimov/gridpath/cmd/gridpath/internal/prompt"
	"github.com/esimov/gridpath/preview"
	"github.com/esimov/gridpath/utils"
)

const helpBanner = `
┌─┐┬─┐┬┌┬┐┌─┐┌─┐┌┬┐┬ ┬
│ ┬├┬┘│ ││├─┘├─┤ │ ├─┤
└─┘┴└─┴─┴┘┴  ┴ ┴ ┴ ┴ ┴

Monotone grid path visualizer.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var flags = options.Register(flag.CommandLine)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	proc, err := flags.Processor(flag.CommandLine)
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage), err)
	}

	if flags.Interactive {
		if err := prompt.Run(proc); err != nil {
			log.Fatalf(utils.DecorateText("Could not read the grid parameters: %v", utils.ErrorMessage), err)
		}
	}

	op := &gridpath.Ops{
		Dst:       flags.Destination,
		FramesDir: flags.FramesDir,
		FrameExt:  flags.FrameExt,
		PipeName:  pipeName,
		ASCII:     flags.ASCII,
	}

	if !proc.Preview {
		execute(proc, op)
		return
	}

	// The Gio event loop has to run on the main goroutine.
	go func() {
		res := execute(proc, op)
		if err := showPreview(proc, res); err != nil {
			log.Fatalf(utils.DecorateText("Preview error: %v", utils.ErrorMessage), err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// execute runs the processor and exits on error.
func execute(proc *gridpath.Processor, op *gridpath.Ops) *gridpath.Result {
	res, err := proc.Execute(context.Background(), op)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError rendering the paths: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
	}
	return res
}

// showPreview opens the preview window and blocks until it is closed.
func showPreview(proc *gridpath.Processor, res *gridpath.Result) error {
	pal, err := proc.Palette()
	if err != nil {
		return err
	}
	frames := make([]image.Image, len(res.Animation.Image))
	for i, img := range res.Animation.Image {
		frames[i] = img
	}
	return preview.NewGUI(frames, proc.Delay, pal.Background).Run()
}
