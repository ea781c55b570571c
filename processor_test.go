package gridpath

import (
	"bytes"
	"context"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Defaults(t *testing.T) {
	p := NewProcessor(4, 6)

	assert.Equal(t, Cell{}, p.Start)
	assert.Equal(t, c(3, 5), p.End)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, DefaultDelay, p.Delay)
	assert.True(t, p.Caption)
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor(3, 3)
	p.CellSize = 16
	p.Delay = 300 * time.Millisecond

	var buf bytes.Buffer
	res, err := p.Process(context.Background(), &buf)
	require.NoError(t, err)

	assert.Len(t, res.Paths, 6)
	assert.Equal(t, int64(6), res.Total.Int64())
	assert.False(t, res.Truncated())

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 6)
	assert.Equal(t, 0, anim.LoopCount, "the animation loops forever")
	for _, d := range anim.Delay {
		assert.Equal(t, 30, d)
	}

	w, h := 3*16, 3*16+captionHeight
	assert.Equal(t, w, anim.Config.Width)
	assert.Equal(t, h, anim.Config.Height)
}

func TestProcessor_ProcessTruncated(t *testing.T) {
	p := NewProcessor(5, 5)
	p.CellSize = 10
	p.Limit = 5

	var buf bytes.Buffer
	res, err := p.Process(context.Background(), &buf)
	require.NoError(t, err)

	assert.Len(t, res.Paths, 5)
	assert.Equal(t, "70", res.Total.String())
	assert.True(t, res.Truncated())
	assert.Len(t, res.Animation.Image, 5)
}

func TestProcessor_NoPaths(t *testing.T) {
	p := NewProcessor(3, 3)
	p.CellSize = 10
	p.Start = c(2, 2)
	p.End = c(0, 0)

	var buf bytes.Buffer
	res, err := p.Process(context.Background(), &buf)
	require.NoError(t, err)

	assert.Empty(t, res.Paths)
	assert.Equal(t, int64(0), res.Total.Int64())
	assert.Len(t, res.Animation.Image, 1, "an empty path set shows the board only")
}

func TestProcessor_ZeroLimit(t *testing.T) {
	p := NewProcessor(3, 3)
	p.CellSize = 10
	p.Limit = 0

	res, err := p.Process(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, res.Paths)
	assert.True(t, res.Truncated())
}

func TestProcessor_InvalidOptions(t *testing.T) {
	cases := []struct {
		name   string
		modify func(p *Processor)
		err    error
	}{
		{"EmptyGrid", func(p *Processor) { p.Rows = 0 }, ErrInvalidGrid},
		{"StartOutside", func(p *Processor) { p.Start = c(-1, 0) }, ErrCellOutOfBounds},
		{"EndOutside", func(p *Processor) { p.End = c(3, 3) }, ErrCellOutOfBounds},
		{"NegativeLimit", func(p *Processor) { p.Limit = -2 }, ErrNegativeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProcessor(3, 3)
			tc.modify(p)

			var buf bytes.Buffer
			_, err := p.Process(context.Background(), &buf)
			assert.ErrorIs(t, err, tc.err)
			assert.Zero(t, buf.Len(), "nothing is written on error")
		})
	}
}

func TestProcessor_AnimateCanceled(t *testing.T) {
	p := NewProcessor(4, 4)
	p.CellSize = 10
	paths, err := p.Paths()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Animate(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessor_AnimateKeepsOrder(t *testing.T) {
	p := NewProcessor(3, 3)
	p.CellSize = 12
	p.Workers = 4
	paths, err := p.Paths()
	require.NoError(t, err)

	anim, err := p.Animate(context.Background(), paths)
	require.NoError(t, err)

	r, err := NewRenderer(p)
	require.NoError(t, err)
	pal := p.gifPalette(r.colors)
	for i, path := range paths {
		want := toPaletted(r.Frame(path, i, len(paths)), pal)
		assert.Equal(t, want.Pix, anim.Image[i].Pix, "frame %d", i)
	}
}

func TestProcessor_Workers(t *testing.T) {
	p := NewProcessor(2, 2)

	p.Workers = 3
	assert.Equal(t, 3, p.workers())

	p.Workers = 0
	assert.LessOrEqual(t, p.workers(), maxWorkers)
	assert.Greater(t, p.workers(), 0)

	p.Workers = maxWorkers + 10
	assert.LessOrEqual(t, p.workers(), maxWorkers)
}

func TestProcessor_GifPalette(t *testing.T) {
	p := NewProcessor(2, 2)
	colors, err := p.Palette()
	require.NoError(t, err)

	pal := p.gifPalette(colors)
	assert.Len(t, pal, 6+216)
	for i, col := range colors.Colors() {
		assert.Equal(t, col, pal[i])
	}
}

// cancelWriter cancels the run on the first write.
type cancelWriter struct {
	cancel context.CancelFunc
}

func (w cancelWriter) Write(p []byte) (int, error) {
	w.cancel()
	return len(p), nil
}

func TestProcessor_ProcessCanceledWhileEncoding(t *testing.T) {
	p := NewProcessor(2, 2)
	p.CellSize = 10

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := p.Process(ctx, cancelWriter{cancel: cancel})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessor_Validate(t *testing.T) {
	p := NewProcessor(3, 3)
	assert.NoError(t, p.Validate())

	p.Limit = -1
	assert.ErrorIs(t, p.Validate(), ErrNegativeLimit)

	p = NewProcessor(3, 3)
	p.Composite = "plus"
	assert.Error(t, p.Validate())

	p = NewProcessor(3, 3)
	p.TextColor = "nope"
	assert.Error(t, p.Validate())
}
