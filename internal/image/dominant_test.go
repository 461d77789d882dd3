package image

import (
	"image/color"
	"testing"

	"rmpc/internal/image/imagetest"
)

func TestDominantColorSolidVibrant(t *testing.T) {
	img := imagetest.SolidRGBA(8, 8, color.RGBA{R: 200, G: 40, B: 40, A: 255})
	c, ok := DominantColor(img)
	if !ok {
		t.Fatalf("expected a dominant color")
	}
	if c.R < c.G || c.R < c.B {
		t.Fatalf("expected red-dominant color, got %+v", c)
	}
}

func TestDominantColorNil(t *testing.T) {
	if _, ok := DominantColor(nil); ok {
		t.Fatalf("expected no color for nil image")
	}
}
