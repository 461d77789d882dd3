// Package image implements the pluggable cover-art rendering pipeline:
// one Backend per terminal image protocol, a coalescing facade that keeps
// at most one encode in flight, and terminal capability auto-detection.
package image

import (
	"io"

	"rmpc/internal/layout"
)

// Align is the horizontal or vertical placement of the image within its
// target area when it doesn't exactly fill it.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Rect is the terminal-cell area a backend paints into.
type Rect = layout.Geometry

// Backend is the per-protocol implementation contract. CreateData is pure
// CPU work dispatched to the work worker; Display/Hide/Cleanup run on the
// UI thread and are the only code paths allowed to touch the terminal.
type Backend interface {
	// CreateData resizes/positions/encodes the image for this backend.
	CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error)
	// Display writes the already-encoded data to the terminal.
	Display(w io.Writer, data EncodedData, bg *Color) error
	// Hide paints over area with bg (or resets it).
	Hide(w io.Writer, area Rect, bg *Color) error
	// Cleanup releases any backend-held resources (daemons, image ids).
	Cleanup(area Rect) error
	// Name identifies the backend for logging and mismatch diagnostics.
	Name() string
}

// Color is a simple RGB color, backend-agnostic.
type Color struct {
	R, G, B uint8
}

// EncodedData is the opaque, backend-specific output of CreateData. Each
// backend defines its own concrete payload type; callers must route a
// payload back to the backend that produced it, never another one.
type EncodedData interface {
	backendName() string
}
