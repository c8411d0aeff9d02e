// Package pixelart turns arbitrary bitmaps into palette-limited pixel art
// and assembles processed frames into animated GIFs.
//
// The single-image pipeline is a straight composition of pure functions:
//
//	Upsample (Catmull-Rom) -> Quantize (median-cut) -> Dither (optional) -> Downsample (nearest-neighbor)
//
// Process runs it on a Buffer, ProcessImage on encoded bytes. ProcessFrames
// maps it over animation frames and Assemble/AssembleAnimation encode the
// result. Every call allocates its own outputs and keeps no state, so calls
// may run concurrently as long as they do not share output buffers.
//
// Fully transparent pixels (alpha 0) are excluded from palettes and come out
// of every stage as (0,0,0,0).
package pixelart
