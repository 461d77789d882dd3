package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rmpc/internal/address"
	"rmpc/internal/config"
	"rmpc/internal/eventloop"
	"rmpc/internal/ipc"
	"rmpc/internal/logging"
	"rmpc/internal/lrcindex"
	"rmpc/internal/mpdclient"
	"rmpc/internal/ytdlp"
)

// runTUI builds every collaborator the event loop needs (config, MPD
// client, work worker, IPC listener, yt-dlp/lrc index) and drives the
// Bubble Tea program until the user quits or a fatal error occurs.
func runTUI(addrFlag, passFlag, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	addr, pw := resolveAddress(addrFlag, passFlag, cfg.Get())

	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.Init(logFile, "info")

	bridge := make(chan tea.Msg, 256)

	password := ""
	if pw != nil {
		password = pw.Plaintext()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mpd, err := mpdclient.New(ctx, addr.Network(), addr.DialAddress(), password, eventloop.NewMpdOptions(bridge))
	if err != nil {
		return fmt.Errorf("connect to mpd at %s: %w", addr.String(), err)
	}

	var lrcIdx lrcindex.Index
	c := cfg.Get()
	if c.LyricsDir != "" {
		if err := lrcIdx.Build(address.ExpandPath(c.LyricsDir)); err != nil {
			logger.Warn().Err(err).Msg("initial lyrics index build failed")
		}
	}

	cacheDir := c.CacheDir
	if cacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = base + "/rmpc"
		} else {
			cacheDir = os.TempDir() + "/rmpc"
		}
	}
	ytClient, err := ytdlp.New(address.ExpandPath(cacheDir))
	if err != nil {
		logger.Warn().Err(err).Msg("yt-dlp unavailable; streaming disabled")
	}

	m := eventloop.New(eventloop.Deps{
		Cfg:      cfg,
		Mpd:      mpd,
		Logger:   logger,
		LrcIndex: &lrcIdx,
		YtDlp:    ytClient,
		Address:  addr,
		Bridge:   bridge,
	})

	sockPath := ipc.SocketPath(os.Getpid())
	if srv, err := ipc.Listen(sockPath, m.IPCHandler()); err != nil {
		logger.Warn().Err(err).Msg("ipc listener failed to bind; rmpc remote will not work for this process")
	} else {
		go srv.Serve()
		m.SetPidSock(srv)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithFPS(m.MaxFPS()))
	_, runErr := p.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	m.Shutdown(shutdownCtx)

	return runErr
}

// resolveAddress applies the §4.7 CLI > env > config > default
// precedence, folding in the --address/--password flags as the CLI
// tier.
func resolveAddress(addrFlag, passFlag string, cfg config.Config) (address.Address, *address.Password) {
	sources := address.Sources{}
	if addrFlag != "" {
		sources.CLIAddr = &addrFlag
	}
	if passFlag != "" {
		sources.CLIPass = &passFlag
	}
	if v, ok := os.LookupEnv("MPD_HOST"); ok {
		sources.EnvHost = &v
	}
	if v, ok := os.LookupEnv("MPD_PORT"); ok {
		sources.EnvPort = &v
	}
	if cfg.Mpd.Address != "" {
		sources.ConfigAddr = &cfg.Mpd.Address
	}
	if cfg.Mpd.Password != "" {
		sources.ConfigPass = &cfg.Mpd.Password
	}
	return address.Resolve(sources)
}

func openLogFile() (*os.File, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = dir + "/rmpc"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(dir+"/rmpc.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
