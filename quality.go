package pixelart

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Quality compares a processed buffer against its reference.
type Quality struct {
	// MSE is the mean squared error per channel (R, G, B).
	MSE [3]float64
	// PSNR in dB over the mean of the three channel MSEs. +Inf when equal.
	PSNR float64
	// Samples is the number of pixels opaque in both buffers.
	Samples int
}

// MeasureQuality computes per-channel error between ref and out over the
// pixels that are non-transparent in both. The buffers must share a size.
func MeasureQuality(ref, out *Buffer) (Quality, error) {
	if err := ref.Validate(); err != nil {
		return Quality{}, err
	}
	if err := out.Validate(); err != nil {
		return Quality{}, err
	}
	if ref.Width != out.Width || ref.Height != out.Height {
		return Quality{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrInvalidDimensions, ref.Width, ref.Height, out.Width, out.Height)
	}

	// Squared differences for one channel at a time, reused across channels.
	sq := make([]float64, 0, len(ref.Pix)/4)
	q := Quality{PSNR: math.Inf(1)}
	for c := range 3 {
		sq = sq[:0]
		for i := 0; i < len(ref.Pix); i += 4 {
			if ref.Pix[i+3] == 0 || out.Pix[i+3] == 0 {
				continue
			}
			d := float64(ref.Pix[i+c]) - float64(out.Pix[i+c])
			sq = append(sq, d*d)
		}
		q.Samples = len(sq)
		if q.Samples == 0 {
			return q, nil
		}
		q.MSE[c] = stat.Mean(sq, nil)
	}
	if mse := (q.MSE[0] + q.MSE[1] + q.MSE[2]) / 3; mse > 0 {
		q.PSNR = 10 * math.Log10(255*255/mse)
	}
	return q, nil
}
