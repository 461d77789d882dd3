package image

import (
	"bytes"
	"image/color"
	"testing"

	"rmpc/internal/image/imagetest"
	"rmpc/internal/layout"
)

func TestBlockBackendCreateDataFillsCellGrid(t *testing.T) {
	data := imagetest.SolidPNG(20, 20, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	var backend BlockBackend
	area := layout.NewGeometry(0, 0, 8, 4)
	encoded, err := backend.CreateData(data, area, 0, AlignCenter, AlignCenter)
	if err != nil {
		t.Fatalf("CreateData returned error: %v", err)
	}

	bd, ok := encoded.(BlockData)
	if !ok {
		t.Fatalf("expected BlockData, got %T", encoded)
	}
	if bd.Width != 8 || bd.Height != 4 {
		t.Fatalf("expected an 8x4 cell grid, got %dx%d", bd.Width, bd.Height)
	}
	if len(bd.Cells) != 4 || len(bd.Cells[0]) != 8 {
		t.Fatalf("cell slice dimensions do not match Width/Height: %d rows, %d cols", len(bd.Cells), len(bd.Cells[0]))
	}
}

func TestBlockBackendDisplayWritesResetAfterEachRow(t *testing.T) {
	backend := BlockBackend{}
	var buf bytes.Buffer
	data := BlockData{
		Width: 2, Height: 1,
		Cells: [][]BlockCell{{
			{FG: Color{R: 255}, BG: Color{B: 255}},
			{FG: Color{G: 255}, BG: Color{}},
		}},
	}
	if err := backend.Display(&buf, data, nil); err != nil {
		t.Fatalf("Display returned error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[0m\r\n")) {
		t.Fatalf("expected a reset+CRLF terminator after the row, got %q", buf.String())
	}
}

func TestBlockBackendDisplayRejectsMismatchedPayload(t *testing.T) {
	backend := BlockBackend{}
	err := backend.Display(&bytes.Buffer{}, KittyData{}, nil)
	if err == nil {
		t.Fatal("expected an error when handed another backend's encoded data")
	}
}
