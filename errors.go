package pixelart

import "errors"

// Precondition errors. All of them are reported before any output is produced.
var (
	// ErrInvalidBufferLength is returned when len(Pix) != Width*Height*4.
	ErrInvalidBufferLength = errors.New("pixelart: invalid buffer length")

	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("pixelart: invalid dimensions")

	// ErrNilBuffer is returned when a nil *Buffer is passed.
	ErrNilBuffer = errors.New("pixelart: nil buffer")

	// ErrEmptyPalette is returned when a closest match is requested against no colors.
	ErrEmptyPalette = errors.New("pixelart: empty palette")

	// ErrEmptyFrameSet is returned when an animation is assembled from zero frames.
	ErrEmptyFrameSet = errors.New("pixelart: empty frame set")

	// ErrUnsupportedColorLimit is returned when targetColors is outside [MinColors, MaxColors].
	ErrUnsupportedColorLimit = errors.New("pixelart: unsupported color limit")
)
