package pixelart

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Buffer is a row-major, non-premultiplied RGBA pixel grid.
// len(Pix) must equal Width*Height*4.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed (fully transparent) buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// WrapBuffer validates pix against width and height and wraps it without
// copying.
func WrapBuffer(width, height int, pix []uint8) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Pix: pix}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b == nil {
		return ErrNilBuffer
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrInvalidBufferLength, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int {
	return len(b.Pix)
}

// At returns the pixel at (x, y). Coordinates must be in range.
func (b *Buffer) At(x, y int) Color {
	i := pixOffset(b.Width, x, y)
	return Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y). Coordinates must be in range.
func (b *Buffer) Set(x, y int, c Color) {
	i := pixOffset(b.Width, x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// NRGBA returns an *image.NRGBA sharing b's pixels.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// rawRGBA views b's non-premultiplied bytes as an *image.RGBA. Only valid
// for operations that copy bytes verbatim (nearest-neighbor with draw.Src).
func (b *Buffer) rawRGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage converts any image to a Buffer anchored at (0, 0).
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{Width: bounds.Dx(), Height: bounds.Dy(), Pix: dst.Pix}
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 4
}

// clearTransparent zeroes every pixel whose alpha is 0.
func clearTransparent(pix []uint8) {
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		}
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
