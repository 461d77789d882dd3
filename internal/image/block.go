package image

import (
	stdimage "image"
	"os"
	"strings"

	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	upperHalfBlock = "▀"
	lowerHalfBlock = "▄"
)

// BlockCell is one terminal cell's worth of rendered half-block output:
// the foreground (top pixel) and background (bottom pixel) colors.
type BlockCell struct {
	FG, BG Color
}

// BlockData is the Block backend's encoded payload: a grid of cells, one
// per terminal column/row of the target area.
type BlockData struct {
	Cells         [][]BlockCell
	Width, Height int
}

func (BlockData) backendName() string { return "block" }

// BlockBackend is the universal ANSI fallback: every cell renders two
// source pixels (stacked vertically) using the upper-half-block glyph
// with independent foreground/background colors.
type BlockBackend struct{}

func (BlockBackend) Name() string { return "block" }

func (BlockBackend) CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	cellsWide := int(area.Width)
	cellsHigh := int(area.Height)
	if cellsWide <= 0 {
		cellsWide = 1
	}
	if cellsHigh <= 0 {
		cellsHigh = 1
	}

	resized := Resize(img, uint(cellsWide), uint(cellsHigh*2))
	fallback, ok := DominantColor(resized)
	if !ok {
		fallback = Color{}
	}

	cells := make([][]BlockCell, cellsHigh)
	for row := 0; row < cellsHigh; row++ {
		cells[row] = make([]BlockCell, cellsWide)
		for col := 0; col < cellsWide; col++ {
			top := getPixelSafe(resized, col, row*2, fallback)
			bot := getPixelSafe(resized, col, row*2+1, fallback)
			cells[row][col] = BlockCell{FG: top, BG: bot}
		}
	}

	return BlockData{Cells: cells, Width: cellsWide, Height: cellsHigh}, nil
}

// getPixelSafe returns fallback (the image's dominant color) for any
// out-of-range coordinate or fully transparent pixel instead of flattening
// either case to black.
func getPixelSafe(img stdimage.Image, x, y int, fallback Color) Color {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return fallback
	}
	r, g, bl, a := img.At(x, y).RGBA()
	if a < 32768 {
		return fallback
	}
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
}

// TruecolorAvailable reports whether COLORTERM advertises 24-bit color
// support.
func TruecolorAvailable() bool {
	ct := os.Getenv("COLORTERM")
	return strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit")
}

func (BlockBackend) Display(w io.Writer, data EncodedData, bg *Color) error {
	bd, ok := data.(BlockData)
	if !ok {
		return fmt.Errorf("block: mismatched encoded data type %T", data)
	}

	truecolor := TruecolorAvailable()
	var out strings.Builder
	for _, row := range bd.Cells {
		for _, cell := range row {
			writeColorCode(&out, cell.FG, true, truecolor)
			writeColorCode(&out, cell.BG, false, truecolor)
			out.WriteString(upperHalfBlock)
		}
		out.WriteString("\x1b[0m\r\n")
	}
	_, err := io.WriteString(w, out.String())
	return err
}

func writeColorCode(out *strings.Builder, c Color, foreground, truecolor bool) {
	prefix := "38"
	if !foreground {
		prefix = "48"
	}
	if truecolor {
		fmt.Fprintf(out, "\x1b[%s;2;%d;%d;%dm", prefix, c.R, c.G, c.B)
		return
	}
	fmt.Fprintf(out, "\x1b[%s;5;%dm", prefix, ansi256FromRGB(c))
}

// ansi256FromRGB finds the nearest ANSI-256 color index to c using go-colorful's
// Lab-space distance, the approximation path used when the terminal
// doesn't advertise truecolor support.
func ansi256FromRGB(c Color) int {
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best := 16
	bestDist := 1e9
	for i := 16; i < 256; i++ {
		cand := ansi256Palette(i)
		if d := target.DistanceLab(cand); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// ansi256Palette reconstructs the standard 6x6x6 color cube plus the
// grayscale ramp used by the xterm-256color palette (indices 16-255).
func ansi256Palette(i int) colorful.Color {
	if i >= 232 {
		level := 8 + (i-232)*10
		v := float64(level) / 255
		return colorful.Color{R: v, G: v, B: v}
	}
	i -= 16
	r := i / 36
	g := (i % 36) / 6
	b := i % 6
	ramp := func(v int) float64 {
		if v == 0 {
			return 0
		}
		return float64(55+v*40) / 255
	}
	return colorful.Color{R: ramp(r), G: ramp(g), B: ramp(b)}
}

func (BlockBackend) Hide(w io.Writer, area Rect, bg *Color) error {
	col := Color{}
	if bg != nil {
		col = *bg
	}
	var out strings.Builder
	writeColorCode(&out, col, false, TruecolorAvailable())
	for y := uint16(0); y < area.Height; y++ {
		for x := uint16(0); x < area.Width; x++ {
			out.WriteString(" ")
		}
		out.WriteString("\x1b[0m\r\n")
	}
	_, err := io.WriteString(w, out.String())
	return err
}

func (BlockBackend) Cleanup(area Rect) error { return nil }
