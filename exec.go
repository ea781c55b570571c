package gridpath

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/gridpath/utils"
	"golang.org/x/term"
)

// Ops holds the output related options of the command line tool.
type Ops struct {
	Dst       string
	FramesDir string
	FrameExt  string
	PipeName  string
	ASCII     bool
	// Stdout receives the text rendering of the paths; it defaults to os.Stdout.
	Stdout io.Writer
}

// Execute renders the path animation into op.Dst, optionally exports the frames
// and prints the paths as text. A progress indicator runs on stderr meanwhile.
func (p *Processor) Execute(ctx context.Context, op *Ops) (*Result, error) {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ GRIDPATH", utils.StatusMessage),
		utils.DecorateText("⇢ rendering paths...", utils.DefaultMessage),
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80)
	}

	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ GRIDPATH", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the animation has been rendered successfully ✔\n", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ GRIDPATH", utils.StatusMessage),
		utils.DecorateText("rendering failed...", utils.DefaultMessage),
		utils.DecorateText("✘\n", utils.ErrorMessage),
	)

	if ext := filepath.Ext(op.Dst); op.Dst != op.PipeName && ext != ".gif" {
		return nil, fmt.Errorf("%w: %q, the animation is saved as .gif", ErrUnsupportedFormat, ext)
	}

	// Reject bad options before the destination is opened, an existing file must survive them.
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dst, err := op.pathToFile(op.Dst)
	if err != nil {
		return nil, err
	}
	defer func() {
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	// CTRL-C cancels the rendering; the error path below restores the cursor and removes the partial output.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	p.Spinner.Start()

	res, err := p.Process(ctx, dst)
	if err == nil && op.FramesDir != "" {
		err = p.SaveFrames(ctx, op.FramesDir, op.FrameExt, res.Animation)
	}
	if err != nil {
		op.removeDst()
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return nil, err
	}
	p.Spinner.StopMsg = successMsg
	p.Spinner.Stop()

	if op.ASCII {
		op.printPaths(p, res)
	}
	op.printOpStatus(res, time.Since(now))

	return res, nil
}

// pathToFile converts the destination path to a writable file.
func (op *Ops) pathToFile(out string) (io.Writer, error) {
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return dst, nil
}

// removeDst removes the generated file in case of an error.
func (op *Ops) removeDst() {
	if op.Dst != op.PipeName {
		os.Remove(op.Dst)
	}
}

// printPaths writes every path as a text grid.
func (op *Ops) printPaths(p *Processor, res *Result) {
	w := op.Stdout
	if w == nil {
		w = os.Stdout
	}
	for i, path := range res.Paths {
		fmt.Fprintf(w, "#%d %s\n%s\n\n", i+1, path.Moves(), RenderText(p.Grid(), p.Start, p.End, path))
	}
}

// printOpStatus displays the relevant information about the rendering process.
func (op *Ops) printOpStatus(res *Result, elapsed time.Duration) {
	count := fmt.Sprintf("%d", len(res.Paths))
	if res.Truncated() {
		count = fmt.Sprintf("%d of %s", len(res.Paths), res.Total.String())
	}
	fmt.Fprintf(os.Stderr, "\nTotal number of paths visualized: %s\n",
		utils.DecorateText(count, utils.SuccessMessage),
	)
	if op.Dst != op.PipeName {
		fmt.Fprintf(os.Stderr, "The animation has been saved as: %s\n",
			utils.DecorateText(filepath.Base(op.Dst), utils.SuccessMessage),
		)
	}
	if op.FramesDir != "" {
		fmt.Fprintf(os.Stderr, "The frames have been saved into: %s\n",
			utils.DecorateText(op.FramesDir, utils.SuccessMessage),
		)
	}
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(elapsed), utils.SuccessMessage))
}
