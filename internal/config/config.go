// Package config defines the ConfigSource contract spec.md §1 calls an
// external collaborator (RON deserialization is out of scope) and ships
// a YAML-backed Viper implementation, watched live via fsnotify, for the
// fields this repo actually needs to drive: MPD address/password
// override, image backend choice, scheduler timing, and pane scrolloff/
// wrap settings. Mirrors the teacher's config.go SafeConfig + fsnotify
// live-reload mechanics exactly, with a different schema.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the subset of rmpc's configuration this repository's core
// needs to drive directly; theming/keymap details stay with the RON
// loader spec.md names as an external collaborator.
type Config struct {
	Mpd struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
	} `mapstructure:"mpd"`

	Image struct {
		Backend string `mapstructure:"backend"` // auto|kitty|iterm2|sixel|ueberzug|block
	} `mapstructure:"image"`

	Browser struct {
		Scrolloff      int  `mapstructure:"scrolloff"`
		WrapNavigation bool `mapstructure:"wrap_navigation"`
	} `mapstructure:"browser"`

	Timing struct {
		SchedulerIntervalMs int `mapstructure:"scheduler_interval_ms"`
		MaxFps              int `mapstructure:"max_fps"`
	} `mapstructure:"timing"`

	LyricsDir      string `mapstructure:"lyrics_dir"`
	CacheDir       string `mapstructure:"cache_dir"`
	OnSongChange   string `mapstructure:"on_song_change"`
	AlbumArtLoader string `mapstructure:"album_art_loader"` // external process; empty means MPD readpicture/albumart only
}

// Default returns the baseline configuration applied before any
// file/env/flag overrides, matching the teacher's viper.SetDefault calls.
func Default() Config {
	var c Config
	c.Image.Backend = "auto"
	c.Browser.Scrolloff = 0
	c.Browser.WrapNavigation = false
	c.Timing.SchedulerIntervalMs = 1000
	c.Timing.MaxFps = 30
	return c
}

// Source is the live, thread-safe config contract the rest of the
// program depends on; SourceFromViper is the concrete implementation,
// but tests and the remote CLI may supply a static Source instead.
type Source interface {
	Get() Config
	OnChange(func(Config))
}

// Static is a Source that never changes, useful for tests and for the
// `rmpc remote`/`rmpc albumart` helper subcommands that don't watch a
// config file.
type Static struct{ Cfg Config }

func (s Static) Get() Config          { return s.Cfg }
func (s Static) OnChange(func(Config)) {}

// SafeConfig wraps Config with thread-safe access, exactly the
// teacher's SafeConfig, generalized to the new schema.
type SafeConfig struct {
	mu        sync.RWMutex
	cfg       Config
	listeners []func(Config)
}

func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

func (sc *SafeConfig) set(cfg Config) {
	sc.mu.Lock()
	sc.cfg = cfg
	listeners := append([]func(Config){}, sc.listeners...)
	sc.mu.Unlock()
	for _, l := range listeners {
		l(cfg)
	}
}

// OnChange registers fn to be called (from whatever goroutine the
// fsnotify watcher runs on) every time the config file is reloaded.
func (sc *SafeConfig) OnChange(fn func(Config)) {
	sc.mu.Lock()
	sc.listeners = append(sc.listeners, fn)
	sc.mu.Unlock()
}

// Locations returns the config-file search path per spec.md §6:
// explicit path first, then <config_dir>/rmpc/config.ron (here:
// config.yaml, RON parsing being out of scope), then <home>/rmpc/config.yaml.
func Locations(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		paths = append(paths, filepath.Join(xdg, "rmpc", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, "rmpc", "config.yaml"))
	}
	return paths
}

// Load builds a *SafeConfig from the first existing location in
// Locations(explicitPath), applying env var (RMPC_) and defaults the
// same way the teacher's initConfig does, then starts a live-reload
// watch via fsnotify.
func Load(explicitPath string) (*SafeConfig, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("mpd.address", def.Mpd.Address)
	v.SetDefault("image.backend", def.Image.Backend)
	v.SetDefault("browser.scrolloff", def.Browser.Scrolloff)
	v.SetDefault("browser.wrap_navigation", def.Browser.WrapNavigation)
	v.SetDefault("timing.scheduler_interval_ms", def.Timing.SchedulerIntervalMs)
	v.SetDefault("timing.max_fps", def.Timing.MaxFps)

	v.SetConfigType("yaml")
	for _, path := range Locations(explicitPath) {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			break
		}
	}

	v.SetEnvPrefix("RMPC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	sc := &SafeConfig{cfg: cfg}

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			var newCfg Config
			if err := v.Unmarshal(&newCfg); err != nil {
				return
			}
			sc.set(newCfg)
		})
		v.WatchConfig()
	}

	return sc, nil
}
