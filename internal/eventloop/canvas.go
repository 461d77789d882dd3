package eventloop

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// canvas is a fixed terminal-cell grid panes blit their rendered content
// into, generalizing the teacher's single lipgloss.Place call (which only
// ever positioned one widget) to the multi-pane layout tree of §4.5.
type canvas struct {
	width, height int
	rows          [][]rune
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.rows = make([][]rune, height)
	for i := range c.rows {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		c.rows[i] = row
	}
	return c
}

// Put writes content's lines starting at (x, y), clipping to the canvas
// bounds and advancing columns by each rune's display width.
func (c *canvas) Put(x, y int, content string) {
	for i, line := range strings.Split(content, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		col := x
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				w = 1
			}
			if col >= 0 && col < c.width {
				c.rows[row][col] = r
			}
			col += w
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
