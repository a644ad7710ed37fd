package scene

import "math"

// SpritePixels returns premultiplied RGBA pixels of the soft particle
// sprite: white at the center fading to transparent at the edge, with an
// alpha stop of 0.5 at 40% of the radius.
func SpritePixels(size int) []byte {
	pix := make([]byte, size*size*4)
	if size <= 0 {
		return pix
	}

	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c

			var rgb, a float64
			switch {
			case d <= 0.4:
				t := d / 0.4
				rgb, a = 1, 1-0.5*t
			case d < 1:
				t := (d - 0.4) / 0.6
				rgb, a = 1-t, 0.5*(1-t)
			}

			v := byte(math.Round(rgb * a * 255))
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2] = v, v, v
			pix[i+3] = byte(math.Round(a * 255))
		}
	}
	return pix
}

// VignettePixels returns a premultiplied black overlay whose alpha darkens
// the frame toward the corners. Drawn over the image with normal blending it
// scales each pixel by the vignette factor.
func VignettePixels(width, height int, offset, darkness float64) []byte {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			v := (float64(y) + 0.5) / float64(height)
			d := math.Hypot(u-0.5, v-0.5)

			factor := smoothstep(0.8, offset*0.799, d*(darkness+offset))
			pix[(y*width+x)*4+3] = byte(math.Round((1 - factor) * 255))
		}
	}
	return pix
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}
