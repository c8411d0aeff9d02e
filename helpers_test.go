package pixelart

import "testing"

func mustBuffer(t testing.TB, w, h int, pix ...uint8) *Buffer {
	t.Helper()
	b, err := WrapBuffer(w, h, pix)
	if err != nil {
		t.Fatalf("WrapBuffer(%d, %d): %v", w, h, err)
	}
	return b
}

func solid(w, h int, c Color) *Buffer {
	b, _ := NewBuffer(w, h)
	for y := range h {
		for x := range w {
			b.Set(x, y, c)
		}
	}
	return b
}

// gradient is an opaque image with many distinct colors.
func gradient(w, h int) *Buffer {
	b, _ := NewBuffer(w, h)
	for y := range h {
		for x := range w {
			b.Set(x, y, RGB(uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), uint8((x*7+y*13)%256)))
		}
	}
	return b
}

func assertInPalette(t *testing.T, b *Buffer, p Palette) {
	t.Helper()
	for i := 0; i < len(b.Pix); i += 4 {
		if b.Pix[i+3] == 0 {
			continue
		}
		c := RGB(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		if !p.Contains(c) {
			t.Fatalf("pixel %d = %s not in palette %v", i/4, c.Hex(), p.Hex())
		}
	}
}

func assertTransparentZero(t *testing.T, in, out *Buffer) {
	t.Helper()
	for i := 0; i < len(in.Pix); i += 4 {
		if in.Pix[i+3] != 0 {
			continue
		}
		if out.Pix[i] != 0 || out.Pix[i+1] != 0 || out.Pix[i+2] != 0 || out.Pix[i+3] != 0 {
			t.Fatalf("pixel %d = %v, want transparent zero", i/4, out.Pix[i:i+4])
		}
	}
}
