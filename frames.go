package pixelart

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"runtime"
	"sync"

	"golang.org/x/image/draw"
)

// ProcessFrames runs Process on every frame and returns the results in
// input order with their delays carried over. Frames are independent, so
// they are processed on up to GOMAXPROCS goroutines. If any frame fails,
// the error of the lowest failing index is returned.
func ProcessFrames(frames []Frame, opts Options) ([]Frame, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyFrameSet
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	out := make([]Frame, len(frames))
	errs := make([]error, len(frames))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := range frames {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			res, err := Process(frames[i].Buffer, opts)
			if err != nil {
				errs[i] = fmt.Errorf("frame %d: %w", i, err)
				return
			}
			out[i] = Frame{Buffer: res.Buffer, DelayMs: frames[i].DelayMs}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodeGIF decodes an animated GIF into fully composed frames. Frame
// disposal methods are applied so each returned buffer is what a viewer
// shows at that step. Delays are converted to milliseconds.
func DecodeGIF(raw []byte) ([]Frame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("pixelart: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyFrameSet
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	frames := make([]Frame, len(g.Image))
	for i, pm := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous []uint8
		if disposal == gif.DisposalPrevious {
			previous = append([]uint8(nil), canvas.Pix...)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)
		pix := append([]uint8(nil), canvas.Pix...)
		clearTransparent(pix)
		frames[i] = Frame{
			Buffer:  &Buffer{Width: w, Height: h, Pix: pix},
			DelayMs: g.Delay[i] * 10,
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}
	return frames, nil
}
