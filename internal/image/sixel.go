package image

import (
	stdcolor "image/color"
	"io"

	"fmt"
	"strings"
)

const sixelTmuxCap = 1 << 20 // 1 MiB, the cap rmpc enforces inside Tmux

// SixelData is the Sixel backend's encoded payload: a complete DCS sixel
// stream ready to write.
type SixelData struct {
	Sequence string
}

func (SixelData) backendName() string { return "sixel" }

// SixelBackend quantizes to 256 colors and emits a DCS sixel stream.
type SixelBackend struct{}

func (SixelBackend) Name() string { return "sixel" }

func (SixelBackend) CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	w, h := FitDimensions(img, area, maxSize, 10, 20)
	if w == 0 || h == 0 {
		w, h = 1, 1
	}
	resized := Resize(img, w, h)
	bounds := resized.Bounds()

	pixels := make([]stdcolor.RGBA, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := resized.At(x, y).RGBA()
			pixels = append(pixels, stdcolor.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}

	palette := medianCutQuantize(pixels, 256)
	seq := encodeSixel(pixels, palette, bounds.Dx(), bounds.Dy())

	if InsideTmux() && len(seq) > sixelTmuxCap {
		return nil, fmt.Errorf("sixel: encoded stream %d bytes exceeds the %d byte Tmux cap", len(seq), sixelTmuxCap)
	}

	return SixelData{Sequence: seq}, nil
}

// encodeSixel renders a DCS sixel stream from pixels (row-major, width x
// height) using the given quantized palette.
func encodeSixel(pixels []stdcolor.RGBA, palette []stdcolor.RGBA, width, height int) string {
	var b strings.Builder
	b.WriteString("\x1bPq")

	for i, c := range palette {
		fmt.Fprintf(&b, "#%d;2;%d;%d;%d", i, int(c.R)*100/255, int(c.G)*100/255, int(c.B)*100/255)
	}

	for bandTop := 0; bandTop < height; bandTop += 6 {
		bandHeight := min(6, height-bandTop)
		for ci := range palette {
			wroteAny := false
			var row strings.Builder
			run := 0
			var runByte byte
			flush := func() {
				if run == 0 {
					return
				}
				if run > 3 {
					fmt.Fprintf(&row, "!%d%c", run, runByte)
				} else {
					for k := 0; k < run; k++ {
						row.WriteByte(runByte)
					}
				}
				run = 0
			}
			for x := 0; x < width; x++ {
				var mask byte
				for dy := 0; dy < bandHeight; dy++ {
					y := bandTop + dy
					idx := y*width + x
					if idx < len(pixels) && nearestPaletteIndex(pixels[idx], palette) == ci {
						mask |= 1 << uint(dy)
						wroteAny = true
					}
				}
				sixByte := byte('?') + mask
				if run > 0 && sixByte == runByte {
					run++
					continue
				}
				flush()
				runByte = sixByte
				run = 1
			}
			flush()
			if wroteAny {
				fmt.Fprintf(&b, "#%d%s$", ci, row.String())
			}
		}
		b.WriteString("-")
	}

	b.WriteString("\x1b\\")
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (SixelBackend) Display(w io.Writer, data EncodedData, _ *Color) error {
	sd, ok := data.(SixelData)
	if !ok {
		return fmt.Errorf("sixel: mismatched encoded data type %T", data)
	}
	_, err := io.WriteString(w, MaybeWrapTmux(sd.Sequence))
	return err
}

func (SixelBackend) Hide(w io.Writer, area Rect, bg *Color) error { return nil }

func (SixelBackend) Cleanup(area Rect) error { return nil }
