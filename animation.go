package pixelart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
)

// MinFrameDelay is the shortest frame duration emitted, in milliseconds.
const MinFrameDelay = 50

// DefaultChromaKey stands in for transparency in GIF frames unless an
// opaque pixel already uses it.
var DefaultChromaKey = RGB(255, 0, 255)

// Frame is one bitmap of an animation and how long it is shown.
type Frame struct {
	Buffer  *Buffer
	DelayMs int
}

// AnimationOptions controls Assemble.
type AnimationOptions struct {
	// Loop forever when true, play once when false.
	Loop bool
	// Canvas size. Frames of another size are resized nearest-neighbor.
	// Zero takes the size of the first frame.
	Width  int
	Height int
}

// FrameDelay floors ms at MinFrameDelay.
func FrameDelay(ms int) int {
	return max(ms, MinFrameDelay)
}

// FrameDelays returns the delay each frame gets in the encoded output, in
// milliseconds.
func FrameDelays(frames []Frame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = FrameDelay(f.DelayMs)
	}
	return out
}

// AssembleAnimation encodes frames as an animated GIF.
func AssembleAnimation(frames []Frame, opts AnimationOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, frames, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeAnimation writes frames to w as an animated GIF.
func EncodeAnimation(w io.Writer, frames []Frame, opts AnimationOptions) error {
	g, err := Assemble(frames, opts)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("pixelart: encode gif: %w", err)
	}
	return nil
}

// Assemble builds the GIF structure for frames, in the order given.
//
// GIF has no per-pixel alpha, so alpha-0 pixels are mapped to a chroma key
// entry appended to each frame's local palette. That entry has zero alpha,
// which makes image/gif write it as the transparent index. Pixels with any
// other alpha are treated as opaque.
func Assemble(frames []Frame, opts AnimationOptions) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyFrameSet
	}
	for i, f := range frames {
		if err := f.Buffer.Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 {
		width, height = frames[0].Buffer.Width, frames[0].Buffer.Height
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, width, height)
	}

	normalized := make([]*Buffer, len(frames))
	for i, f := range frames {
		b, err := Downsample(f.Buffer, width, height)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		normalized[i] = b
	}

	key := chooseChromaKey(normalized)
	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: -1,
	}
	if opts.Loop {
		g.LoopCount = 0
	}

	for i, b := range normalized {
		pm, transparent, err := toPaletted(b, key)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		g.Image[i] = pm
		// GIF delays are in hundredths of a second.
		g.Delay[i] = (FrameDelay(frames[i].DelayMs) + 5) / 10
		if transparent {
			g.Disposal[i] = gif.DisposalBackground
		} else {
			g.Disposal[i] = gif.DisposalNone
		}
	}

	Logger().Debug("pixelart: assembled animation",
		"frames", len(frames), "size", fmt.Sprintf("%dx%d", width, height),
		"loop", opts.Loop, "key", key.Hex())
	return g, nil
}

// chooseChromaKey returns DefaultChromaKey unless some opaque pixel uses
// it, in which case it walks down the packed RGB space for an unused color.
func chooseChromaKey(frames []*Buffer) Color {
	used := make(map[uint32]struct{})
	for _, b := range frames {
		for i := 0; i < len(b.Pix); i += 4 {
			if b.Pix[i+3] == 0 {
				continue
			}
			used[uint32(b.Pix[i])<<16|uint32(b.Pix[i+1])<<8|uint32(b.Pix[i+2])] = struct{}{}
		}
	}
	k := uint32(DefaultChromaKey.R)<<16 | uint32(DefaultChromaKey.G)<<8 | uint32(DefaultChromaKey.B)
	for n := 0; n < 1<<24; n++ {
		if _, ok := used[k]; !ok {
			break
		}
		k = (k - 1) & 0xffffff
	}
	return RGB(uint8(k>>16), uint8(k>>8), uint8(k))
}

// toPaletted converts b to a frame with a local palette of at most 255
// opaque colors plus the chroma key. Frames with more colors are reduced
// with median-cut first.
func toPaletted(b *Buffer, key Color) (*image.Paletted, bool, error) {
	src := b
	if len(buildPopulation(b.Pix)) > MaxColors-1 {
		q, _, err := Quantize(b, MaxColors-1)
		if err != nil {
			return nil, false, err
		}
		src = q
	}

	var pal color.Palette
	index := make(map[uint32]uint8)
	transparent := false
	pm := image.NewPaletted(image.Rect(0, 0, src.Width, src.Height), nil)
	for p, i := 0, 0; i < len(src.Pix); p, i = p+1, i+4 {
		if src.Pix[i+3] == 0 {
			transparent = true
			continue
		}
		k := uint32(src.Pix[i])<<16 | uint32(src.Pix[i+1])<<8 | uint32(src.Pix[i+2])
		idx, ok := index[k]
		if !ok {
			idx = uint8(len(pal))
			index[k] = idx
			pal = append(pal, color.RGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 255})
		}
		pm.Pix[p] = idx
	}

	if transparent {
		keyIndex := uint8(len(pal))
		// image/gif writes the RGB of this entry to the color table and uses
		// its zero alpha to pick the transparent index.
		pal = append(pal, color.RGBA{R: key.R, G: key.G, B: key.B, A: 0})
		for p, i := 0, 0; i < len(src.Pix); p, i = p+1, i+4 {
			if src.Pix[i+3] == 0 {
				pm.Pix[p] = keyIndex
			}
		}
	}
	pm.Palette = pal
	return pm, transparent, nil
}
