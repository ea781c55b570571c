package gridpath

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// FrameExtensions lists the supported frame file formats.
var FrameExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// encodeImg encodes an image to a destination of type io.Writer, choosing the encoder by extension.
func encodeImg(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// scaleImg resizes the image by the scale factor, keeping the aspect ratio.
func scaleImg(img image.Image, scale float64) image.Image {
	if scale <= 0 || scale == 1 {
		return img
	}
	w := int(float64(img.Bounds().Dx()) * scale)
	return imaging.Resize(img, w, 0, imaging.Lanczos)
}

// frame is a single animation frame waiting to be written.
type frame struct {
	index int
	img   image.Image
}

// SaveFrames writes every frame of the animation into dir as frame_NNN<ext>,
// scaled by the processor's Scale option. The directory is created if missing.
// Frames are written concurrently by the processor's workers.
func (p *Processor) SaveFrames(ctx context.Context, dir, ext string, anim *gif.GIF) error {
	if len(ext) > 0 && ext[0] != '.' {
		ext = "." + ext
	}
	if ext == "" {
		ext = ".png"
	}
	if !isValidExtension(strings.ToLower(ext), FrameExtensions) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create the frames directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan frame)
	errs := make(chan error, len(anim.Image))

	go func() {
		defer close(frames)
		for i, img := range anim.Image {
			select {
			case <-ctx.Done():
				return
			case frames <- frame{index: i, img: img}:
			}
		}
	}()

	var wg sync.WaitGroup
	workers := p.workers()
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for f := range frames {
				name := filepath.Join(dir, fmt.Sprintf("frame_%03d%s", f.index, ext))
				if err := writeFrame(name, scaleImg(f.img, p.Scale), ext); err != nil {
					errs <- err
					cancel()
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return err
	}
	return ctx.Err()
}

// writeFrame encodes a single frame into a newly created file.
func writeFrame(name string, img image.Image, ext string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create the frame file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = encodeImg(f, img, ext); err != nil {
		return fmt.Errorf("could not encode %s: %w", filepath.Base(name), err)
	}
	return nil
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
