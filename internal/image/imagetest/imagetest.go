// Package imagetest holds fixture generators shared across the image
// backend test suites.
package imagetest

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/png"
)

// SolidRGBA creates a width x height image filled with a single color.
func SolidRGBA(width, height int, fill color.Color) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

// GradientRGBA creates a vertical-gradient image between two colors, useful
// for exercising color quantization and resize fitting.
func GradientRGBA(width, height int, start, end color.RGBA) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		ratio := float64(y) / float64(height)
		r := uint8(float64(start.R)*(1-ratio) + float64(end.R)*ratio)
		g := uint8(float64(start.G)*(1-ratio) + float64(end.G)*ratio)
		b := uint8(float64(start.B)*(1-ratio) + float64(end.B)*ratio)
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// PNGBytes encodes img as PNG, for use as the raw cover-art bytes a
// Backend.CreateData call expects.
func PNGBytes(img stdimage.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// SolidPNG is a convenience wrapper combining SolidRGBA and PNGBytes.
func SolidPNG(width, height int, fill color.Color) []byte {
	return PNGBytes(SolidRGBA(width, height, fill))
}
