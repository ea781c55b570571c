package gridpath

import (
	"bytes"
	"context"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/esimov/gridpath/utils"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuietProcessor(rows, cols int) *Processor {
	p := NewProcessor(rows, cols)
	p.CellSize = 10
	p.Spinner = utils.NewSpinner("", 10*time.Millisecond)
	p.Spinner.SetWriter(io.Discard)
	return p
}

func TestExec_Execute(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	dir := t.TempDir()
	var out bytes.Buffer
	op := &Ops{
		Dst:       filepath.Join(dir, "paths.gif"),
		FramesDir: filepath.Join(dir, "frames"),
		FrameExt:  ".png",
		PipeName:  "-",
		ASCII:     true,
		Stdout:    &out,
	}

	p := newQuietProcessor(2, 2)
	res, err := p.Execute(context.Background(), op)
	require.NoError(t, err)
	assert.Len(t, res.Paths, 2)

	f, err := os.Open(op.Dst)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)

	frames, err := os.ReadDir(op.FramesDir)
	require.NoError(t, err)
	assert.Len(t, frames, 2)

	assert.Contains(t, out.String(), "#1 RD\nS •\n· E")
	assert.Contains(t, out.String(), "#2 DR\nS ·\n• E")
}

func TestExec_ExecuteRejectsNonGif(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "paths.png")
	_, err := newQuietProcessor(2, 2).Execute(context.Background(), &Ops{Dst: dst, PipeName: "-"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExec_ExecuteRemovesOutputOnError(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "paths.gif")
	op := &Ops{
		Dst:       dst,
		FramesDir: filepath.Join(filepath.Dir(dst), "frames"),
		FrameExt:  ".tiff",
		PipeName:  "-",
	}
	_, err := newQuietProcessor(2, 2).Execute(context.Background(), op)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "the partial output is removed")
}

func TestExec_ExecuteKeepsExistingOutputOnInvalidOptions(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "keep.gif")
	require.NoError(t, os.WriteFile(dst, []byte("previous"), 0644))

	p := newQuietProcessor(3, 3)
	p.End = c(7, 7)
	_, err := p.Execute(context.Background(), &Ops{Dst: dst, PipeName: "-"})
	assert.ErrorIs(t, err, ErrCellOutOfBounds)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	p = newQuietProcessor(3, 3)
	p.Composite = "plus"
	_, err = p.Execute(context.Background(), &Ops{Dst: dst, PipeName: "-"})
	assert.Error(t, err)
	assert.FileExists(t, dst)
}
