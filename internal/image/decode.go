package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Decode parses a JPEG/PNG/GIF/WebP byte blob into an image.Image, the
// shared first step of every backend's CreateData.
func Decode(data []byte) (stdimage.Image, string, error) {
	img, format, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode artwork: %w", err)
	}
	return img, format, nil
}

// FitDimensions computes the resized width/height that fits img's aspect
// ratio inside area, subject to maxSize (in pixels, the larger bound on
// either axis). It computes dimensions only; placement within area is
// left to the caller.
func FitDimensions(img stdimage.Image, area Rect, maxSize int, cellWidthPx, cellHeightPx int) (w, h uint) {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return 0, 0
	}

	targetW := int(area.Width) * cellWidthPx
	targetH := int(area.Height) * cellHeightPx
	if maxSize > 0 {
		if targetW > maxSize {
			targetW = maxSize
		}
		if targetH > maxSize {
			targetH = maxSize
		}
	}
	if targetW <= 0 || targetH <= 0 {
		return 0, 0
	}

	scale := float64(targetW) / float64(srcW)
	if hScale := float64(targetH) / float64(srcH); hScale < scale {
		scale = hScale
	}
	return uint(float64(srcW) * scale), uint(float64(srcH) * scale)
}

// Resize wraps nfnt/resize's Lanczos3 filter, the resampling algorithm
// every backend uses to fit artwork into its target area.
func Resize(img stdimage.Image, w, h uint) stdimage.Image {
	return resize.Resize(w, h, img, resize.Lanczos3)
}

// EncodePNG is a small helper shared by the Kitty and iTerm2 backends.
func EncodePNG(img stdimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
