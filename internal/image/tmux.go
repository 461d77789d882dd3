package image

import (
	"os"
	"strings"
)

// InsideTmux detects tmux by both TMUX and TMUX_PANE being non-empty, the
// same two-variable check every backend uses before wrapping its control
// sequences.
func InsideTmux() bool {
	return os.Getenv("TMUX") != "" && os.Getenv("TMUX_PANE") != ""
}

// WrapTmuxPassthrough wraps seq in a tmux DCS passthrough envelope
// (`\033Ptmux;...\033\\`), doubling any embedded ESC byte as tmux
// requires, so backend control sequences survive a tmux pane.
func WrapTmuxPassthrough(seq string) string {
	doubled := strings.ReplaceAll(seq, "\x1b", "\x1b\x1b")
	var b strings.Builder
	b.WriteString("\x1bPtmux;")
	b.WriteString(doubled)
	b.WriteString("\x1b\\")
	return b.String()
}

// MaybeWrapTmux applies WrapTmuxPassthrough only when running inside
// tmux, leaving the sequence untouched otherwise.
func MaybeWrapTmux(seq string) string {
	if InsideTmux() {
		return WrapTmuxPassthrough(seq)
	}
	return seq
}
