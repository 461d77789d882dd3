package image

import (
	stdcolor "image/color"
	"testing"
)

func TestMedianCutQuantizeBoundsPaletteSize(t *testing.T) {
	pixels := make([]stdcolor.RGBA, 0, 256)
	for r := 0; r < 16; r++ {
		for g := 0; g < 16; g++ {
			pixels = append(pixels, stdcolor.RGBA{R: uint8(r * 16), G: uint8(g * 16), B: 0, A: 255})
		}
	}

	palette := medianCutQuantize(pixels, 16)
	if len(palette) > 16 {
		t.Fatalf("expected at most 16 palette entries, got %d", len(palette))
	}
	if len(palette) == 0 {
		t.Fatal("expected a non-empty palette for non-empty input")
	}
}

func TestMedianCutQuantizeSingleColorCollapses(t *testing.T) {
	pixels := make([]stdcolor.RGBA, 100)
	for i := range pixels {
		pixels[i] = stdcolor.RGBA{R: 50, G: 60, B: 70, A: 255}
	}

	palette := medianCutQuantize(pixels, 256)
	if len(palette) != 1 {
		t.Fatalf("expected a uniform input to collapse to one palette entry, got %d", len(palette))
	}
}

func TestNearestPaletteIndexPicksClosest(t *testing.T) {
	palette := []stdcolor.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	idx := nearestPaletteIndex(stdcolor.RGBA{R: 200, G: 200, B: 200, A: 255}, palette)
	if idx != 1 {
		t.Fatalf("expected the light color to match palette index 1, got %d", idx)
	}
}
