package eventloop

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// formatTime converts seconds to MM:SS, same helper the teacher's
// text.go carried.
func formatTime(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// scrollSeparator pads looping text the way the teacher's scrollText did.
const scrollSeparator = "  •  "

// scrollText returns a width-bounded, looping window of text, generalized
// from the teacher's rune-counted version to use grapheme-cluster-aware
// width (uniseg) so combining marks and wide glyphs don't desync the
// loop, and go-runewidth to size the visible window in terminal cells
// rather than runes.
func scrollText(text string, maxWidth, offset int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	full := text + scrollSeparator
	clusters := uniseg.NewGraphemes(full)
	var runes []string
	for clusters.Next() {
		runes = append(runes, clusters.Str())
	}
	n := len(runes)
	if n == 0 {
		return text
	}
	offset = offset % n

	var out string
	width := 0
	for i := 0; width < maxWidth && i < n*2; i++ {
		cluster := runes[(offset+i)%n]
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth {
			break
		}
		out += cluster
		width += w
	}
	return out
}

// truncate clips s to maxWidth terminal cells, width-aware.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "")
}
