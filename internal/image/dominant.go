package image

import (
	stdimage "image"

	"github.com/EdlinOrg/prominentcolor"
)

// DominantColor samples img at a stride of 5 pixels looking for a
// vibrant, readable accent color (lightness 0.3-0.85, saturation >=
// 0.25), falling back to prominentcolor's k-means when sampling finds
// nothing suitable. Used by the Block backend and by callers that want
// a theme accent derived from cover art.
func DominantColor(img stdimage.Image) (Color, bool) {
	if img == nil {
		return Color{}, false
	}

	bounds := img.Bounds()
	const stride = 5
	type candidate struct {
		c     Color
		score float64
	}
	var best candidate
	found := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 32768 {
				continue
			}
			c := Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			l, s := lightnessSaturation(c)
			if l < 0.3 || l > 0.85 || s < 0.25 {
				continue
			}
			lScore := l
			if l > 0.7 {
				lScore = 0.7 - (l - 0.7)
			}
			score := s*2.5 + lScore*1.5
			if !found || score > best.score {
				best = candidate{c: c, score: score}
				found = true
			}
		}
	}
	if found {
		return best.c, true
	}

	colors, err := prominentcolor.Kmeans(img)
	if err != nil || len(colors) == 0 {
		return Color{}, false
	}
	c := colors[0].Color
	return Color{R: c.R, G: c.G, B: c.B}, true
}

func lightnessSaturation(c Color) (lightness, saturation float64) {
	rf, gf, bf := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}
	lightness = (max + min) / 2
	if max != min {
		if lightness > 0.5 {
			saturation = (max - min) / (2 - max - min)
		} else {
			saturation = (max - min) / (max + min)
		}
	}
	return lightness, saturation
}
