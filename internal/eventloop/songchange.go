package eventloop

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rmpc/internal/albumart"
	"rmpc/internal/logging"
	"rmpc/internal/mpdmodel"
)

// onSongChangedCmd spawns on_song_change (if configured) with the
// environment described in spec.md §6: uppercase copies of every song
// metadata key, plus FILE and DURATION.
func (m *Model) onSongChangedCmd() tea.Cmd {
	cfg := m.deps.Cfg.Get()
	if cfg.OnSongChange == "" {
		return nil
	}
	song := m.currentSong
	env := songChangeEnv(song)

	return func() tea.Msg {
		cmd := exec.Command(cfg.OnSongChange)
		cmd.Env = env
		if err := cmd.Run(); err != nil {
			return externalProcessErrMsg{err: fmt.Errorf("on_song_change: %w", err)}
		}
		return nil
	}
}

// loadAlbumArtCmd resolves cover art for the current song through the
// configured external loader (if any) and falls back to MPD's
// readpicture/albumart binary protocol, per §4.3/§6; whatever is found
// is pushed into the image facade's coalescing pipeline. Runs entirely
// off the UI thread; Facade.Show is safe to call from any goroutine.
func (m *Model) loadAlbumArtCmd() tea.Cmd {
	file := m.currentSong.File
	cfg := m.deps.Cfg.Get()
	mpd := m.deps.Mpd
	facade := m.facade

	return func() tea.Msg {
		if file == "" {
			facade.ShowDefault()
			return nil
		}
		if cfg.AlbumArtLoader != "" {
			result, _, err := albumart.Load(context.Background(), cfg.AlbumArtLoader, file)
			if err == nil {
				switch result.Action {
				case albumart.ActionDisplay:
					facade.Show(result.Data)
					return nil
				case albumart.ActionDisplayDefault:
					facade.ShowDefault()
					return nil
				}
			}
		}
		if data, err := mpd.ReadPicture(file); err == nil && len(data) > 0 {
			facade.Show(data)
			return nil
		}
		if data, err := mpd.AlbumArt(file); err == nil && len(data) > 0 {
			facade.Show(data)
			return nil
		}
		facade.ShowDefault()
		return nil
	}
}

type externalProcessErrMsg struct{ err error }

func songChangeEnv(song mpdmodel.Song) []string {
	env := []string{"FILE=" + song.File}
	if song.Duration != nil {
		env = append(env, "DURATION="+strconv.FormatFloat(song.Duration.Seconds(), 'f', -1, 64))
	} else {
		env = append(env, "DURATION=")
	}
	for k, vals := range song.Metadata {
		if len(vals) == 0 {
			continue
		}
		env = append(env, strings.ToUpper(k)+"="+vals[0])
	}
	return env
}

func (m *Model) handleExternalProcessErr(msg externalProcessErrMsg) {
	m.logErr(msg.err, logging.CategoryExternalProcess)
}
