package image

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// UeberzugLayer selects which ueberzugpp window-system layer to request.
type UeberzugLayer int

const (
	UeberzugX11 UeberzugLayer = iota
	UeberzugWayland
)

// UeberzugData is the Ueberzug backend's encoded payload: the path the
// image was written to plus the placement rect to send the daemon.
type UeberzugData struct {
	ImagePath string
	Area      Rect
}

func (UeberzugData) backendName() string { return "ueberzug" }

// UeberzugBackend spawns a ueberzugpp daemon per process and drives it
// over a Unix socket with line-oriented JSON commands.
type UeberzugBackend struct {
	Layer UeberzugLayer

	mu      sync.Mutex
	cmd     *exec.Cmd
	sockPath string
	pidPath string
}

const ueberzugIdentifier = "rmpc-albumart"

func (u *UeberzugBackend) Name() string { return "ueberzug" }

func (u *UeberzugBackend) runtimeDir() string {
	return filepath.Join(os.TempDir(), "rmpc")
}

// ensureDaemon lazily spawns the ueberzugpp layer daemon and records its
// pid file under /tmp/rmpc/ueberzug-<pid>.pid, matching the filesystem
// contract rmpc's other processes (the remote CLI) expect.
func (u *UeberzugBackend) ensureDaemon() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cmd != nil {
		return nil
	}

	dir := u.runtimeDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("ueberzug: create runtime dir: %w", err)
	}

	layerFlag := "x11"
	if u.Layer == UeberzugWayland {
		layerFlag = "wayland"
	}
	u.sockPath = filepath.Join(dir, fmt.Sprintf("ueberzug-%d.sock", os.Getpid()))
	u.pidPath = filepath.Join(dir, fmt.Sprintf("ueberzug-%d.pid", os.Getpid()))

	cmd := exec.Command("ueberzugpp", "layer", "--no-stdin", "--silent", "-o", layerFlag, "--socket", u.sockPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ueberzug: spawn daemon: %w", err)
	}
	u.cmd = cmd
	return os.WriteFile(u.pidPath, fmt.Appendf(nil, "%d", cmd.Process.Pid), 0o600)
}

func (u *UeberzugBackend) send(cmdObj map[string]any) error {
	conn, err := net.Dial("unix", u.sockPath)
	if err != nil {
		return fmt.Errorf("ueberzug: dial socket: %w", err)
	}
	defer conn.Close()
	enc := json.NewEncoder(conn)
	return enc.Encode(cmdObj)
}

func (u *UeberzugBackend) CreateData(data []byte, area Rect, maxSize int, halign, valign Align) (EncodedData, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	w, h := FitDimensions(img, area, maxSize, 10, 20)
	resized := Resize(img, w, h)

	path := filepath.Join(os.TempDir(), "rmpc", "albumart")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("ueberzug: create albumart dir: %w", err)
	}
	png, err := EncodePNG(resized)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return nil, fmt.Errorf("ueberzug: write albumart: %w", err)
	}

	return UeberzugData{ImagePath: path, Area: area}, nil
}

func (u *UeberzugBackend) Display(w io.Writer, data EncodedData, _ *Color) error {
	ud, ok := data.(UeberzugData)
	if !ok {
		return fmt.Errorf("ueberzug: mismatched encoded data type %T", data)
	}
	if err := u.ensureDaemon(); err != nil {
		return err
	}
	return u.send(map[string]any{
		"action":     "add",
		"identifier": ueberzugIdentifier,
		"path":       ud.ImagePath,
		"x":          ud.Area.X,
		"y":          ud.Area.Y,
		"width":      ud.Area.Width,
		"height":     ud.Area.Height,
	})
}

func (u *UeberzugBackend) Hide(w io.Writer, area Rect, _ *Color) error {
	if u.cmd == nil {
		return nil
	}
	return u.send(map[string]any{"action": "remove", "identifier": ueberzugIdentifier})
}

func (u *UeberzugBackend) Cleanup(area Rect) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cmd == nil {
		return nil
	}
	_ = u.send(map[string]any{"action": "remove", "identifier": ueberzugIdentifier})
	if u.cmd.Process != nil {
		_ = u.cmd.Process.Kill()
	}
	_ = os.Remove(u.sockPath)
	_ = os.Remove(u.pidPath)
	u.cmd = nil
	return nil
}
