package pixelart

import (
	"bytes"
	"errors"
	"testing"
)

var blackWhite = Palette{RGB(0, 0, 0), RGB(255, 255, 255)}

func TestDitherDiffusesError(t *testing.T) {
	// 128 maps to white; -127*7/16 carried right drops the neighbor to ~72,
	// which maps to black.
	src := mustBuffer(t, 2, 1,
		128, 128, 128, 255,
		128, 128, 128, 255,
	)
	out, err := Dither(src, blackWhite)
	if err != nil {
		t.Fatalf("Dither: %v", err)
	}
	want := []uint8{
		255, 255, 255, 255,
		0, 0, 0, 255,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("Dither = %v, want %v", out.Pix, want)
	}
}

func TestDitherSkipsTransparent(t *testing.T) {
	// The transparent middle pixel absorbs nothing and passes nothing on,
	// so the last pixel sees no error.
	src := mustBuffer(t, 3, 1,
		128, 128, 128, 255,
		50, 60, 70, 0,
		128, 128, 128, 255,
	)
	out, err := Dither(src, blackWhite)
	if err != nil {
		t.Fatalf("Dither: %v", err)
	}
	want := []uint8{
		255, 255, 255, 255,
		0, 0, 0, 0,
		255, 255, 255, 255,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("Dither = %v, want %v", out.Pix, want)
	}
}

func TestDitherAveragesTone(t *testing.T) {
	// A flat mid-gray dithered to black/white should come out roughly half
	// white.
	src := solid(32, 32, RGB(128, 128, 128))
	out, err := Dither(src, blackWhite)
	if err != nil {
		t.Fatalf("Dither: %v", err)
	}
	white := 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 255 {
			white++
		}
	}
	if white < 400 || white > 624 {
		t.Errorf("white pixels = %d of 1024, want about half", white)
	}
}

func TestDitherPaletteMembership(t *testing.T) {
	src := gradient(24, 24)
	for x := range 24 {
		src.Set(x, 5, Color{R: 1, G: 2, B: 3, A: 0})
	}
	_, palette, err := Quantize(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Dither(src, palette)
	if err != nil {
		t.Fatalf("Dither: %v", err)
	}
	assertInPalette(t, out, palette)
	assertTransparentZero(t, src, out)
}

func TestDitherErrors(t *testing.T) {
	if _, err := Dither(solid(2, 2, RGB(0, 0, 0)), nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Dither(empty palette) error = %v, want %v", err, ErrEmptyPalette)
	}
	bad := &Buffer{Width: 3, Height: 3, Pix: make([]uint8, 10)}
	if _, err := Dither(bad, blackWhite); !errors.Is(err, ErrInvalidBufferLength) {
		t.Errorf("Dither(bad buffer) error = %v, want %v", err, ErrInvalidBufferLength)
	}
}

func BenchmarkDither(b *testing.B) {
	src := gradient(256, 256)
	_, palette, _ := Quantize(src, 16)
	b.ResetTimer()
	for range b.N {
		_, _ = Dither(src, palette)
	}
}
