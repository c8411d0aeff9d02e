package pixelart

import (
	"fmt"
	"slices"
)

// Bounds for targetColors.
const (
	MinColors = 2
	MaxColors = 256
)

// colorCount is one entry of the color population: an exact RGB value and
// the number of non-transparent pixels carrying it.
type colorCount struct {
	rgb   [3]uint8
	count int
}

func checkColorLimit(targetColors int) error {
	if targetColors < MinColors || targetColors > MaxColors {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrUnsupportedColorLimit, targetColors, MinColors, MaxColors)
	}
	return nil
}

// Quantize reduces src to at most targetColors colors with median-cut.
//
// Pixels with alpha 0 are excluded from the population and come out as
// (0,0,0,0). Other pixels keep their alpha and get the RGB of their closest
// palette entry. When src already has no more than targetColors distinct
// colors, the palette is exactly those colors in first-seen order and the
// pixels are returned unchanged.
//
// The result is fully determined by the input bytes and targetColors.
func Quantize(src *Buffer, targetColors int) (*Buffer, Palette, error) {
	if err := src.Validate(); err != nil {
		return nil, nil, err
	}
	if err := checkColorLimit(targetColors); err != nil {
		return nil, nil, err
	}

	pop := buildPopulation(src.Pix)
	if len(pop) == 0 {
		out, _ := NewBuffer(src.Width, src.Height)
		return out, Palette{RGB(0, 0, 0)}, nil
	}

	if len(pop) <= targetColors {
		palette := make(Palette, len(pop))
		for i, e := range pop {
			palette[i] = RGB(e.rgb[0], e.rgb[1], e.rgb[2])
		}
		out := src.Clone()
		clearTransparent(out.Pix)
		return out, palette, nil
	}

	palette := uniqueColors(medianCut(pop, targetColors, make(Palette, 0, targetColors)))
	Logger().Debug("pixelart: median-cut",
		"distinct", len(pop), "target", targetColors, "palette", len(palette))
	return remap(src, palette), palette, nil
}

// buildPopulation counts non-transparent pixels per exact RGB value, in
// first-seen scan order.
func buildPopulation(pix []uint8) []colorCount {
	index := make(map[uint32]int)
	var pop []colorCount
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		key := uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
		if j, ok := index[key]; ok {
			pop[j].count++
			continue
		}
		index[key] = len(pop)
		pop = append(pop, colorCount{rgb: [3]uint8{pix[i], pix[i+1], pix[i+2]}, count: 1})
	}
	return pop
}

// medianCut splits bucket recursively and appends one color per leaf to dst.
// bucket is owned by the call and reordered in place.
func medianCut(bucket []colorCount, n int, dst Palette) Palette {
	if len(bucket) == 0 {
		return dst
	}
	if n <= 1 || len(bucket) == 1 {
		return append(dst, averageColor(bucket))
	}

	ch := widestChannel(bucket)
	slices.SortStableFunc(bucket, func(a, b colorCount) int {
		return int(a.rgb[ch]) - int(b.rgb[ch])
	})

	split := weightedMedian(bucket)
	left := n / 2
	dst = medianCut(bucket[:split+1], left, dst)
	return medianCut(bucket[split+1:], n-left, dst)
}

// widestChannel returns the channel (0=R, 1=G, 2=B) with the largest value
// range. Ties go to the lower channel index.
func widestChannel(bucket []colorCount) int {
	lo := bucket[0].rgb
	hi := bucket[0].rgb
	for _, e := range bucket[1:] {
		for c := range 3 {
			lo[c] = min(lo[c], e.rgb[c])
			hi[c] = max(hi[c], e.rgb[c])
		}
	}
	best := 0
	for c := 1; c < 3; c++ {
		if hi[c]-lo[c] > hi[best]-lo[best] {
			best = c
		}
	}
	return best
}

// weightedMedian returns the index of the first entry at which the
// cumulative pixel count reaches half the bucket total, clamped so that
// neither side of the split is empty. len(bucket) must be at least 2.
func weightedMedian(bucket []colorCount) int {
	total := 0
	for _, e := range bucket {
		total += e.count
	}
	cum := 0
	split := len(bucket) - 1
	for i, e := range bucket {
		cum += e.count
		if cum*2 >= total {
			split = i
			break
		}
	}
	return min(split, len(bucket)-2)
}

// averageColor is the pixel-count weighted mean, rounded half up.
func averageColor(bucket []colorCount) Color {
	var sum [3]int
	total := 0
	for _, e := range bucket {
		for c := range 3 {
			sum[c] += int(e.rgb[c]) * e.count
		}
		total += e.count
	}
	var avg [3]uint8
	for c := range 3 {
		avg[c] = uint8((sum[c] + total/2) / total)
	}
	return RGB(avg[0], avg[1], avg[2])
}

func uniqueColors(p Palette) Palette {
	out := p[:0]
	for _, c := range p {
		if !out.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// remap returns a copy of src with every non-transparent pixel replaced by
// its closest palette color. Alpha is kept; alpha-0 pixels are zeroed.
// palette must be non-empty.
func remap(src *Buffer, palette Palette) *Buffer {
	out := &Buffer{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	cache := make(map[uint32]int)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		if a == 0 {
			continue
		}
		r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		idx, ok := cache[key]
		if !ok {
			idx = closestIndex(palette, int(r), int(g), int(b))
			cache[key] = idx
		}
		c := palette[idx]
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, a
	}
	return out
}
