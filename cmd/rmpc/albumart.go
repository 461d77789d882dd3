package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rmpc/internal/albumart"
	"rmpc/internal/config"
	"rmpc/internal/mpdclient"
)

// Exit codes for the albumart helper subcommand, per spec.md §6.
const (
	exitOK            = 0
	exitGeneric       = 1
	exitNoAlbumArt    = 2
	exitNoSongPlaying = 3
)

// albumArtCmd implements the scriptable `rmpc albumart` helper: connect
// to MPD just long enough to resolve the currently playing song, run the
// configured external loader if any, and fall back to MPD's
// readpicture/albumart binary protocol, writing whatever art bytes
// result to stdout (or --output).
func albumArtCmd() *cobra.Command {
	var addrFlag, passFlag, configPath, output string

	cmd := &cobra.Command{
		Use:   "albumart",
		Short: "Print the cover art for the currently playing song",
		RunE: func(c *cobra.Command, args []string) error {
			code, err := runAlbumArt(addrFlag, passFlag, configPath, output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				if code == exitOK {
					code = exitGeneric
				}
			}
			if code != exitOK {
				os.Exit(code)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addrFlag, "address", "", "MPD address override")
	cmd.Flags().StringVar(&passFlag, "password", "", "MPD password override")
	cmd.Flags().StringVar(&configPath, "config", "", "explicit config file path")
	cmd.Flags().StringVar(&output, "output", "", "write art to this path instead of stdout")
	return cmd
}

func runAlbumArt(addrFlag, passFlag, configPath, output string) (int, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return exitGeneric, fmt.Errorf("config: %w", err)
	}
	c := cfg.Get()
	addr, pw := resolveAddress(addrFlag, passFlag, c)
	password := ""
	if pw != nil {
		password = pw.Plaintext()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mpd, err := mpdclient.New(ctx, addr.Network(), addr.DialAddress(), password, mpdclient.Options{})
	if err != nil {
		return exitGeneric, fmt.Errorf("connect to mpd: %w", err)
	}
	defer mpd.Shutdown()

	song, err := mpd.CurrentSong()
	if err != nil {
		return exitGeneric, fmt.Errorf("currentsong: %w", err)
	}
	if song.File == "" {
		return exitNoSongPlaying, fmt.Errorf("albumart: no song playing")
	}

	if c.AlbumArtLoader != "" {
		result, _, err := albumart.Load(ctx, c.AlbumArtLoader, song.File)
		if err == nil {
			switch result.Action {
			case albumart.ActionDisplay:
				return exitOK, writeArt(output, result.Data)
			case albumart.ActionDisplayDefault:
				return exitNoAlbumArt, fmt.Errorf("albumart: loader requested default art")
			case albumart.ActionFallback:
				// fall through to MPD
			}
		}
	}

	if data, err := mpd.ReadPicture(song.File); err == nil && len(data) > 0 {
		return exitOK, writeArt(output, data)
	}
	if data, err := mpd.AlbumArt(song.File); err == nil && len(data) > 0 {
		return exitOK, writeArt(output, data)
	}

	return exitNoAlbumArt, fmt.Errorf("albumart: no album art for %s", song.File)
}

func writeArt(output string, data []byte) error {
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
