package pixelart

// Floyd–Steinberg weights, in sixteenths, with their (dx, dy) targets.
var floydSteinberg = [4]struct {
	dx, dy int
	w      float64
}{
	{1, 0, 7.0 / 16.0},
	{-1, 1, 3.0 / 16.0},
	{0, 1, 5.0 / 16.0},
	{1, 1, 1.0 / 16.0},
}

// Dither maps src onto palette with Floyd–Steinberg error diffusion.
//
// Pixels are visited in row-major order; each one needs the finished error
// of its left neighbor and of the previous row, so the scan is sequential.
// Alpha-0 pixels come out as (0,0,0,0) and neither take nor pass on error.
// Other pixels keep their alpha. Every output RGB is a palette member.
func Dither(src *Buffer, palette Palette) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}

	w, h := src.Width, src.Height
	out := &Buffer{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	// Accumulated RGB error per pixel, owned by this call.
	errs := make([]float64, w*h*3)

	for y := range h {
		for x := range w {
			i := pixOffset(w, x, y)
			a := src.Pix[i+3]
			if a == 0 {
				continue
			}
			e := (y*w + x) * 3
			r := clamp255(float64(src.Pix[i]) + errs[e])
			g := clamp255(float64(src.Pix[i+1]) + errs[e+1])
			b := clamp255(float64(src.Pix[i+2]) + errs[e+2])

			c := palette[closestIndex(palette, int(r+0.5), int(g+0.5), int(b+0.5))]
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, a

			er := r - float64(c.R)
			eg := g - float64(c.G)
			eb := b - float64(c.B)
			for _, k := range floydSteinberg {
				nx, ny := x+k.dx, y+k.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				ne := (ny*w + nx) * 3
				errs[ne] += er * k.w
				errs[ne+1] += eg * k.w
				errs[ne+2] += eb * k.w
			}
		}
	}
	return out, nil
}
