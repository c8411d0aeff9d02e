package utils

import (
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes the image file at path.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// SaveImage writes img as PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveBytes writes an already encoded artifact.
func SaveBytes(data []byte, filename string) error {
	return os.WriteFile(filename, data, 0o644)
}

// PaletteStrip renders palette as a row of tileSize x tileSize swatches.
func PaletteStrip(palette []colorful.Color, tileSize int) (*image.NRGBA, error) {
	if len(palette) == 0 {
		return nil, errors.New("utils: empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		sw := color.NRGBA{R: r, G: g, B: b, A: 255}
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetNRGBA(x, y, sw)
			}
		}
	}
	return img, nil
}

// SavePalette writes PaletteStrip(palette, tileSize) as PNG.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	img, err := PaletteStrip(palette, tileSize)
	if err != nil {
		return err
	}
	return SaveImage(img, filename)
}
