package pixelart

import (
	"fmt"
	"strings"

	"github.com/setanarut/pixelart/utils"
)

// Method selects how the palette is built.
type Method int

const (
	// MethodMedianCut is the deterministic median-cut quantizer.
	MethodMedianCut Method = iota
	// MethodWu is accepted for compatibility and runs median-cut.
	MethodWu
	// MethodKMeans clusters pixels with k-means. Seeding is random, so
	// output is not reproducible between runs.
	MethodKMeans
	// MethodDominantColor picks diverse colors from dominantcolor candidates.
	MethodDominantColor
)

func (m Method) String() string {
	switch m {
	case MethodWu:
		return "wu"
	case MethodKMeans:
		return "kmeans"
	case MethodDominantColor:
		return "dominantcolor"
	default:
		return "mediancut"
	}
}

// ParseMethod maps a method name to a Method. The empty string is median-cut.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mediancut", "median-cut", "median_cut":
		return MethodMedianCut, nil
	case "wu":
		return MethodWu, nil
	case "kmeans", "k-means":
		return MethodKMeans, nil
	case "dominantcolor", "dominant":
		return MethodDominantColor, nil
	}
	return MethodMedianCut, fmt.Errorf("pixelart: unknown quantization method %q", s)
}

// QuantizeWith is Quantize with a selectable palette method. Images that
// already fit in targetColors take the identity path for every method.
// If an extractor finds no colors, median-cut is used instead.
func QuantizeWith(src *Buffer, targetColors int, m Method) (*Buffer, Palette, error) {
	if m == MethodMedianCut || m == MethodWu {
		return Quantize(src, targetColors)
	}
	if err := src.Validate(); err != nil {
		return nil, nil, err
	}
	if err := checkColorLimit(targetColors); err != nil {
		return nil, nil, err
	}
	if len(buildPopulation(src.Pix)) <= targetColors {
		return Quantize(src, targetColors)
	}

	var cands []utils.WeightedColor
	switch m {
	case MethodKMeans:
		var err error
		cands, err = utils.KMeansColors(src.NRGBA(), targetColors*4)
		if err != nil {
			Logger().Warn("pixelart: kmeans failed, using median-cut", "err", err)
		}
	case MethodDominantColor:
		cands = utils.DominantColors(src.NRGBA(), max(24, targetColors*8))
	}

	palette := make(Palette, 0, targetColors)
	for _, c := range utils.SelectDiverse(cands, targetColors) {
		if fc := FromColorful(c); !palette.Contains(fc) {
			palette = append(palette, fc)
		}
	}
	if len(palette) == 0 {
		Logger().Warn("pixelart: empty palette from extractor, using median-cut", "method", m.String())
		return Quantize(src, targetColors)
	}
	return remap(src, palette), palette, nil
}
