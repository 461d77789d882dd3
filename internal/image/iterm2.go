package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/gif"
	"image/jpeg"
	"io"
)

// Iterm2Data is the iTerm2 inline-image protocol's encoded payload.
type Iterm2Data struct {
	Sequence string
}

func (Iterm2Data) backendName() string { return "iterm2" }

// Iterm2Backend implements iTerm2's inline image escape sequence. It
// JPEG-encodes non-animated images for size, but falls through the raw
// source bytes for animated GIFs so the terminal can play the animation.
type Iterm2Backend struct{}

func (Iterm2Backend) Name() string { return "iterm2" }

func (Iterm2Backend) CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error) {
	if isAnimatedGIF(data) {
		return Iterm2Data{Sequence: iterm2Sequence(data, area)}, nil
	}

	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	w, h := FitDimensions(img, area, maxSize, 8, 16)
	resized := Resize(img, w, h)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("iterm2: encode jpeg: %w", err)
	}
	return Iterm2Data{Sequence: iterm2Sequence(buf.Bytes(), area)}, nil
}

func isAnimatedGIF(data []byte) bool {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	return err == nil && len(g.Image) > 1
}

func iterm2Sequence(payload []byte, area Rect) string {
	encoded := base64.StdEncoding.EncodeToString(payload)
	return fmt.Sprintf(
		"\x1b]1337;File=inline=1;width=%dpx;height=%dpx;preserveAspectRatio=1:%s\a",
		area.Width, area.Height, encoded,
	)
}

func (Iterm2Backend) Display(w io.Writer, data EncodedData, _ *Color) error {
	id, ok := data.(Iterm2Data)
	if !ok {
		return fmt.Errorf("iterm2: mismatched encoded data type %T", data)
	}
	_, err := io.WriteString(w, MaybeWrapTmux(id.Sequence))
	return err
}

func (Iterm2Backend) Hide(w io.Writer, area Rect, bg *Color) error {
	return nil
}

func (Iterm2Backend) Cleanup(area Rect) error { return nil }
