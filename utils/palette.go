// Package utils holds palette helpers that work on image.Image and
// go-colorful colors: alternative palette extractors, diverse-color
// selection, luminance ordering and file I/O.
package utils

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// MaxKMeansSamples caps the number of pixels fed to k-means.
const MaxKMeansSamples = 12000

// ErrNoColors is returned when an image has no usable pixels.
var ErrNoColors = errors.New("utils: no opaque pixels")

// WeightedColor is a candidate palette color and its share of the image.
type WeightedColor struct {
	Color  colorful.Color
	Weight float64
}

// Luminance is the relative luminance of c on linear RGB.
func Luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SortByLuminance orders colors from darkest to brightest. Equal
// luminances keep their relative order.
func SortByLuminance(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, lb := Luminance(a), Luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

// DominantColors returns up to n weighted candidates found by
// dominantcolor.
func DominantColors(img image.Image, n int) []WeightedColor {
	if n <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, n)
	out := make([]WeightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, WeightedColor{Color: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return out
}

// KMeansColors clusters the non-transparent pixels of img into n groups and
// returns the cluster centers weighted by population, most populous first.
// Large images are subsampled on a regular grid to at most
// MaxKMeansSamples pixels.
func KMeansColors(img image.Image, n int) ([]WeightedColor, error) {
	b := img.Bounds()
	area := b.Dx() * b.Dy()
	if n <= 0 || area == 0 {
		return nil, ErrNoColors
	}
	step := 1
	if area > MaxKMeansSamples {
		step = int(math.Sqrt(float64(area)/MaxKMeansSamples)) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, ErrNoColors
	}

	cc, err := kmeans.New().Partition(dataset, min(n, len(dataset)))
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]WeightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, WeightedColor{
			Color:  colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped(),
			Weight: float64(len(c.Observations)),
		})
	}
	return out, nil
}

// SelectDiverse picks k colors from cands. It starts with the heaviest
// candidate, then repeatedly adds the one farthest (CIE Lab) from those
// already chosen, scaled by its relative weight.
func SelectDiverse(cands []WeightedColor, k int) []colorful.Color {
	k = min(k, len(cands))
	if k <= 0 {
		return nil
	}
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.Weight > maxW {
			maxW = c.Weight
			seed = i
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	picked := make([]bool, len(cands))
	picked[seed] = true
	out := make([]colorful.Color, 1, k)
	out[0] = cands[seed].Color

	for len(out) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if picked[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, o := range out {
				nearest = min(nearest, c.Color.DistanceLab(o))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(max(c.Weight, 0)/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		picked[best] = true
		out = append(out, cands[best].Color)
	}
	return out
}
