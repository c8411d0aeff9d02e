package pixelart

import (
	"errors"
	"testing"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGB(0, 0, 0), "#000000"},
		{RGB(255, 255, 255), "#ffffff"},
		{RGB(255, 15, 1), "#ff0f01"},
		{Color{R: 0xab, G: 0xcd, B: 0xef, A: 0}, "#abcdef"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#FF0F01")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if got != RGB(255, 15, 1) {
		t.Errorf("ParseHex = %v, want %v", got, RGB(255, 15, 1))
	}
	if _, err := ParseHex("not-a-color"); err == nil {
		t.Error("ParseHex(invalid) error = nil")
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#000000", "#ffffff", "#000000"})
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	want := []string{"#000000", "#ffffff"}
	got := p.Hex()
	if len(got) != len(want) {
		t.Fatalf("ParsePalette = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestColorfulRoundTrip(t *testing.T) {
	for v := range 256 {
		c := RGB(uint8(v), uint8(255-v), uint8(v/2))
		if got := FromColorful(c.Colorful()); got != c {
			t.Fatalf("round trip %v = %v", c, got)
		}
	}
}

func TestClosest(t *testing.T) {
	palette := Palette{RGB(0, 0, 0), RGB(2, 0, 0), RGB(255, 255, 255)}
	tests := []struct {
		name   string
		target Color
		want   Color
	}{
		{"exact", RGB(255, 255, 255), RGB(255, 255, 255)},
		{"tie goes to first", RGB(1, 0, 0), RGB(0, 0, 0)},
		{"nearest", RGB(200, 180, 220), RGB(255, 255, 255)},
		{"alpha ignored", Color{R: 2, A: 0}, RGB(2, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Closest(tt.target, palette)
			if err != nil {
				t.Fatalf("Closest: %v", err)
			}
			if got != tt.want {
				t.Errorf("Closest(%v) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestClosestEmptyPalette(t *testing.T) {
	if _, err := Closest(RGB(1, 2, 3), nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Closest(empty) error = %v, want %v", err, ErrEmptyPalette)
	}
}

func TestClosestIndexNoAlloc(t *testing.T) {
	palette := Palette{RGB(0, 0, 0), RGB(128, 128, 128), RGB(255, 255, 255)}
	allocs := testing.AllocsPerRun(100, func() {
		_ = closestIndex(palette, 100, 120, 140)
	})
	if allocs != 0 {
		t.Errorf("closestIndex allocates %v times", allocs)
	}
}
