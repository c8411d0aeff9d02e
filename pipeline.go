package pixelart

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/pixelart/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type Options struct {
	// Output size in pixels.
	Width  int
	Height int
	// Maximum palette size, MinColors..MaxColors.
	ColorLimit int
	// Floyd–Steinberg dithering against the extracted palette.
	Dithering bool
	// When false, every pixel is composited over Background and made opaque
	// before processing.
	PreserveTransparency bool
	// Palette method. Median-cut by default.
	Method Method
	// Flattening color, used only when PreserveTransparency is false.
	Background Color
	// Order the returned palette dark to bright. Pixels are not affected.
	SortPalette bool
	// Fill Result.Quality. Costs one extra pass over the intermediate image.
	MeasureQuality bool
}

func DefaultOptions() Options {
	return Options{
		Width:                32,
		Height:               32,
		ColorLimit:           16,
		PreserveTransparency: true,
		Method:               MethodMedianCut,
		Background:           RGB(255, 255, 255),
	}
}

// OptionsFromSize returns DefaultOptions with an output size that keeps the
// aspect ratio of size and has maxEdge pixels on its longer side.
func OptionsFromSize(size image.Point, maxEdge int) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 || maxEdge <= 0 {
		return opt
	}
	if size.X >= size.Y {
		opt.Width = maxEdge
		opt.Height = max(1, (size.Y*maxEdge+size.X/2)/size.X)
	} else {
		opt.Height = maxEdge
		opt.Width = max(1, (size.X*maxEdge+size.Y/2)/size.Y)
	}
	return opt
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, o.Width, o.Height)
	}
	return checkColorLimit(o.ColorLimit)
}

// Result is the output of one pipeline run.
type Result struct {
	Buffer    *Buffer
	Palette   Palette
	Width     int
	Height    int
	SizeBytes int
	Elapsed   time.Duration
	// Set only when Options.MeasureQuality is true.
	Quality *Quality
}

// PaletteHex returns the palette as #rrggbb strings in quantizer order.
func (r *Result) PaletteHex() []string {
	return r.Palette.Hex()
}

// ProcessingTimeMs is Elapsed in whole milliseconds.
func (r *Result) ProcessingTimeMs() int64 {
	return r.Elapsed.Milliseconds()
}

// Decode decodes PNG, JPEG, GIF (first frame), BMP or WebP bytes.
func Decode(raw []byte) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("pixelart: decode: %w", err)
	}
	return FromImage(img), nil
}

// ProcessImage decodes raw and runs Process on it.
func ProcessImage(raw []byte, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	src, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Process(src, opts)
}

// Process converts src to pixel art:
// upsample (Catmull-Rom) -> quantize -> optional dither -> downsample
// (nearest-neighbor) to opts.Width x opts.Height.
// src is not modified.
func Process(src *Buffer, opts Options) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := Logger()

	in := src
	if !opts.PreserveTransparency {
		in = Flatten(src, opts.Background)
	}

	upW, upH := UpsampleSize(opts.Width, opts.Height)
	up, err := Upsample(in, upW, upH)
	if err != nil {
		return nil, err
	}

	quantized, palette, err := QuantizeWith(up, opts.ColorLimit, opts.Method)
	if err != nil {
		return nil, err
	}

	mapped := quantized
	if opts.Dithering {
		if mapped, err = Dither(up, palette); err != nil {
			return nil, err
		}
	}

	var quality *Quality
	if opts.MeasureQuality {
		q, err := MeasureQuality(up, mapped)
		if err != nil {
			return nil, err
		}
		quality = &q
	}

	out, err := Downsample(mapped, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	if opts.SortPalette {
		palette = sortPalette(palette)
	}

	res := &Result{
		Buffer:    out,
		Palette:   palette,
		Width:     out.Width,
		Height:    out.Height,
		SizeBytes: out.Size(),
		Elapsed:   time.Since(start),
		Quality:   quality,
	}
	log.Debug("pixelart: processed",
		"src", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"intermediate", fmt.Sprintf("%dx%d", upW, upH),
		"out", fmt.Sprintf("%dx%d", out.Width, out.Height),
		"method", opts.Method.String(),
		"dither", opts.Dithering,
		"palette", len(palette),
		"elapsed", res.Elapsed)
	return res, nil
}

// Flatten composites src over bg and returns an opaque copy.
func Flatten(src *Buffer, bg Color) *Buffer {
	out := &Buffer{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	bgc := [3]int{int(bg.R), int(bg.G), int(bg.B)}
	for i := 0; i < len(src.Pix); i += 4 {
		a := int(src.Pix[i+3])
		for c := range 3 {
			out.Pix[i+c] = uint8((int(src.Pix[i+c])*a + bgc[c]*(255-a) + 127) / 255)
		}
		out.Pix[i+3] = 255
	}
	return out
}

func sortPalette(p Palette) Palette {
	cs := make([]colorful.Color, len(p))
	for i, c := range p {
		cs[i] = c.Colorful()
	}
	utils.SortByLuminance(cs)
	out := make(Palette, len(cs))
	for i, c := range cs {
		out[i] = FromColorful(c)
	}
	return out
}
