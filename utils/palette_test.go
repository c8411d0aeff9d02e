package utils

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestSortByLuminance(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	green := colorful.Color{G: 1}
	blue := colorful.Color{B: 1}
	p := []colorful.Color{white, blue, black, green}
	SortByLuminance(p)
	want := []colorful.Color{black, blue, green, white}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("p[%d] = %v, want %v", i, p[i].Hex(), want[i].Hex())
		}
	}
}

func TestSelectDiverse(t *testing.T) {
	red := colorful.Color{R: 1}
	nearRed := colorful.Color{R: 0.98, G: 0.02}
	blue := colorful.Color{B: 1}
	cands := []WeightedColor{
		{Color: nearRed, Weight: 5},
		{Color: red, Weight: 10},
		{Color: blue, Weight: 1},
	}

	got := SelectDiverse(cands, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != red {
		t.Errorf("first = %s, want heaviest %s", got[0].Hex(), red.Hex())
	}
	if got[1] != blue {
		t.Errorf("second = %s, want farthest %s", got[1].Hex(), blue.Hex())
	}

	if n := len(SelectDiverse(cands, 10)); n != 3 {
		t.Errorf("k above candidates: len = %d, want 3", n)
	}
	if SelectDiverse(nil, 3) != nil {
		t.Error("SelectDiverse(nil) != nil")
	}
}

func TestKMeansColorsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := KMeansColors(img, 3); !errors.Is(err, ErrNoColors) {
		t.Errorf("error = %v, want %v", err, ErrNoColors)
	}
}

func TestKMeansColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := range 10 {
		for x := range 10 {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 5 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	got, err := KMeansColors(img, 2)
	if err != nil {
		t.Fatalf("KMeansColors: %v", err)
	}
	total := 0.0
	for _, c := range got {
		total += c.Weight
	}
	if len(got) == 0 || len(got) > 2 || total != 100 {
		t.Errorf("got %d clusters with weight %v", len(got), total)
	}
}

func TestPaletteStrip(t *testing.T) {
	img, err := PaletteStrip([]colorful.Color{{R: 1}, {G: 1}, {B: 1}}, 4)
	if err != nil {
		t.Fatalf("PaletteStrip: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 4 {
		t.Errorf("size = %dx%d, want 12x4", b.Dx(), b.Dy())
	}
	if c := img.NRGBAAt(5, 2); c != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("swatch 1 = %v, want green", c)
	}
	if _, err := PaletteStrip(nil, 4); err == nil {
		t.Error("PaletteStrip(nil) error = nil")
	}
}
