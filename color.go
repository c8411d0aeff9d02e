package pixelart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple with an alpha channel. Palette entries are
// always opaque; the closest-match metric ignores A.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Hex formats c as lowercase, zero-padded #rrggbb. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Colorful converts c to a go-colorful color, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// FromColorful converts a go-colorful color to an opaque Color, clamping
// out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// ParseHex parses "#rrggbb" (case-insensitive) into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return Color{}, fmt.Errorf("pixelart: parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// Palette is an ordered set of unique opaque colors.
type Palette []Color

// Hex returns the palette as #rrggbb strings in palette order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// Index returns the position of c in p, comparing RGB only, or -1.
func (p Palette) Index(c Color) int {
	for i, pc := range p {
		if pc.R == c.R && pc.G == c.G && pc.B == c.B {
			return i
		}
	}
	return -1
}

// Contains reports whether p has an entry with the RGB of c.
func (p Palette) Contains(c Color) bool {
	return p.Index(c) >= 0
}

// ParsePalette parses a list of #rrggbb strings. Duplicates are dropped,
// keeping the first occurrence.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		if !p.Contains(c) {
			p = append(p, c)
		}
	}
	return p, nil
}

// Closest returns the palette entry nearest to target by squared Euclidean
// distance in RGB. Ties resolve to the earliest entry.
func Closest(target Color, palette Palette) (Color, error) {
	if len(palette) == 0 {
		return Color{}, ErrEmptyPalette
	}
	return palette[closestIndex(palette, int(target.R), int(target.G), int(target.B))], nil
}

// closestIndex is the per-pixel inner loop; it must not allocate.
// palette must be non-empty.
func closestIndex(palette Palette, r, g, b int) int {
	best := 0
	bestDist := 1 << 30
	for i := range palette {
		dr := r - int(palette[i].R)
		dg := g - int(palette[i].G)
		db := b - int(palette[i].B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
			if d == 0 {
				break
			}
		}
	}
	return best
}
