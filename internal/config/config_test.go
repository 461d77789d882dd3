package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Image.Backend != "auto" {
		t.Errorf("expected auto backend default, got %q", cfg.Image.Backend)
	}
	if cfg.Timing.MaxFps != 30 {
		t.Errorf("expected max_fps default 30, got %d", cfg.Timing.MaxFps)
	}
}

func TestLocationsExplicitFirst(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	locs := Locations("/explicit/path.yaml")
	if len(locs) == 0 || locs[0] != "/explicit/path.yaml" {
		t.Fatalf("expected explicit path first, got %v", locs)
	}
}

func TestLocationsIgnoresRelativeXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "relative/path")
	locs := Locations("")
	for _, l := range locs {
		if l == filepath.Join("relative/path", "rmpc", "config.yaml") {
			t.Fatalf("relative XDG_CONFIG_HOME should be ignored, got %v", locs)
		}
	}
}

func TestLoadFromExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mpd:\n  address: 127.0.0.1:7700\nimage:\n  backend: kitty\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := sc.Get()
	if cfg.Mpd.Address != "127.0.0.1:7700" {
		t.Errorf("expected address override, got %q", cfg.Mpd.Address)
	}
	if cfg.Image.Backend != "kitty" {
		t.Errorf("expected backend override, got %q", cfg.Image.Backend)
	}
}

func TestSafeConfigOnChangeNotifies(t *testing.T) {
	sc := &SafeConfig{cfg: Default()}
	done := make(chan Config, 1)
	sc.OnChange(func(c Config) { done <- c })

	updated := Default()
	updated.Image.Backend = "sixel"
	sc.set(updated)

	select {
	case c := <-done:
		if c.Image.Backend != "sixel" {
			t.Fatalf("expected sixel, got %q", c.Image.Backend)
		}
	default:
		t.Fatalf("expected listener to be invoked synchronously")
	}
}
