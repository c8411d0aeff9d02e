package pixelart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// MinUpsampleSize is the smallest intermediate edge used before quantizing.
const MinUpsampleSize = 256

// UpsampleSize returns the intermediate size for a target pixel-art size:
// max(4*target, MinUpsampleSize) on each axis.
func UpsampleSize(targetWidth, targetHeight int) (int, int) {
	return max(4*targetWidth, MinUpsampleSize), max(4*targetHeight, MinUpsampleSize)
}

// Upsample scales src to width x height with the Catmull-Rom kernel so the
// quantizer sees a larger, smoother color population.
//
// Alpha is sampled nearest-neighbor from src: destination pixels whose
// nearest source pixel is fully transparent come out as (0,0,0,0), and the
// rest keep that source pixel's alpha with interpolated RGB.
func Upsample(src *Buffer, width, height int) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	mask, err := Downsample(src, width, height)
	if err != nil {
		return nil, err
	}

	smooth := image.NewNRGBA(image.Rect(0, 0, width, height))
	srcImg := src.NRGBA()
	draw.CatmullRom.Scale(smooth, smooth.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	out := mask
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = 0, 0, 0
			continue
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = smooth.Pix[i], smooth.Pix[i+1], smooth.Pix[i+2]
	}
	return out, nil
}

// Downsample scales src to exactly width x height with nearest-neighbor
// sampling. Every output pixel is a byte-exact copy of some source pixel,
// so palette colors and hard edges survive, except that alpha-0 pixels come
// out as (0,0,0,0). It also works for upscaling.
func Downsample(src *Buffer, width, height int) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst, err := NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	if width == src.Width && height == src.Height {
		copy(dst.Pix, src.Pix)
		clearTransparent(dst.Pix)
		return dst, nil
	}
	// Nearest-neighbor RGBA->RGBA with draw.Src copies bytes verbatim, so
	// the non-premultiplied data can travel through the *image.RGBA path.
	srcImg, dstImg := src.rawRGBA(), dst.rawRGBA()
	draw.NearestNeighbor.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	clearTransparent(dst.Pix)
	return dst, nil
}

// ThumbnailSize returns the size of src fitted inside maxSize x maxSize
// with its aspect ratio kept. It never upscales.
func ThumbnailSize(width, height, maxSize int) (int, int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}
	scale := math.Min(float64(maxSize)/float64(width), float64(maxSize)/float64(height))
	tw := int(math.Round(float64(width) * scale))
	th := int(math.Round(float64(height) * scale))
	return min(max(tw, 1), maxSize), min(max(th, 1), maxSize)
}

// Thumbnail returns a nearest-neighbor preview of src no larger than
// maxSize on either edge.
func Thumbnail(src *Buffer, maxSize int) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: thumbnail max size %d", ErrInvalidDimensions, maxSize)
	}
	w, h := ThumbnailSize(src.Width, src.Height, maxSize)
	return Downsample(src, w, h)
}

// CreateThumbnail returns a PNG-encoded Thumbnail of src.
func CreateThumbnail(src *Buffer, maxSize int) ([]byte, error) {
	thumb, err := Thumbnail(src, maxSize)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb.NRGBA()); err != nil {
		return nil, fmt.Errorf("pixelart: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
