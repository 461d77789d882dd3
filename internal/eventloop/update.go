package eventloop

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rmpc/internal/dirstack"
	"rmpc/internal/events"
	"rmpc/internal/logging"
	"rmpc/internal/mpdmodel"
	"rmpc/internal/work"
	"rmpc/internal/ytdlp"
)

// Update implements tea.Model. It never blocks: MPD calls and other I/O
// are always wrapped in a returned tea.Cmd.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.resolveLayout()
		m.needsRender = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.MouseMsg:
		return m.handleMouse(v)

	case bridgeMsg:
		cmd := m.dispatchBridge(v.inner)
		return m, tea.Batch(cmd, waitForBridgeMsg(m.eventCh))

	case statusFetchedMsg:
		cmd := m.applyStatus(v.status)
		return m, cmd

	case queueFetchedMsg:
		m.queue = v.queue
		m.needsRender = true
		return m, nil

	case volumeFetchedMsg:
		m.status.Volume = v.volume
		m.needsRender = true
		return m, nil

	case imageReadyMsg:
		m.artData = v.data
		m.needsRender = true
		return m, nil

	case imageFailedMsg:
		m.logErr(v.err, logging.CategoryEncodeRender)
		return m, nil

	case schedulerTickMsg:
		if !m.schedulerRun {
			return m, nil
		}
		m.needsRender = true
		return m, schedulerTickCmd(200 * time.Millisecond)

	case dirPushedMsg:
		if stack, ok := m.browsers[v.kind]; ok {
			stack.Push(v.items)
			m.needsRender = true
		}
		return m, nil

	case browserSeededMsg:
		m.browsers[v.kind] = dirstack.New(v.items)
		m.needsRender = true
		return m, nil

	case externalProcessErrMsg:
		m.handleExternalProcessErr(v)
		return m, nil

	case exitRequestMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// exitRequestMsg is produced in response to events.ExitMsg; the quit
// keybinding returns tea.Quit directly instead.
type exitRequestMsg struct{}

func (m *Model) handleWorkDone(msg events.WorkDoneMsg) *Model {
	if msg.Err != nil {
		cat := logging.CategoryProtocol
		switch msg.Kind {
		case events.WorkAlbumArtLoaded, events.WorkYtDlpDownloaded:
			cat = logging.CategoryExternalProcess
		case events.WorkImageResized:
			cat = logging.CategoryEncodeRender
		}
		m.logErr(msg.Err, cat)
		return m
	}

	switch msg.Kind {
	case events.WorkLyricsIndexed:
		m.pushStatus("lyrics index updated", events.StatusInfo, 2*time.Second)
	case events.WorkYtDlpDownloaded:
		m.pushStatus("yt-dlp job finished", events.StatusInfo, 2*time.Second)
	case events.WorkMpdCommandFinished:
		m.needsRender = true
	}
	return m
}

// dispatchBridge handles whatever was read off the bridge channel: MPD
// idle events and connection transitions, work-worker completions, and
// commands relayed from the IPC listener. Always called from Update, so
// it runs on the UI thread even though the values it handles originated
// on other goroutines.
func (m *Model) dispatchBridge(msg tea.Msg) tea.Cmd {
	switch v := msg.(type) {
	case events.WorkDoneMsg:
		m.handleWorkDone(v)
		return nil

	case events.IdleEventMsg:
		return m.handleIdle(v)

	case events.LostConnectionMsg:
		m.connLost = true
		m.status.State = mpdmodel.StateStop
		m.schedulerRun = false
		m.pushStatus("lost connection to MPD", events.StatusError, 6*time.Second)
		return nil

	case events.ReconnectedMsg:
		m.connLost = false
		m.pushStatus("reconnected", events.StatusInfo, 3*time.Second)
		return tea.Batch(
			m.handleIdle(events.IdleEventMsg{Kind: events.SubsystemPlayer}),
			m.handleIdle(events.IdleEventMsg{Kind: events.SubsystemPlaylist}),
			m.handleIdle(events.IdleEventMsg{Kind: events.SubsystemOptions}),
		)

	case events.StatusMsg:
		d := v.Duration
		if d <= 0 {
			d = 4 * time.Second
		}
		m.pushStatus(v.Text, v.Level, d)
		return nil

	case indexLrcRequestMsg:
		m.worker.Submit(work.IndexSingleLrcJob(m.deps.LrcIndex, v.path))
		return nil

	case tmuxHookMsg:
		m.pushStatus("tmux hook: "+v.hook, events.StatusInfo, 2*time.Second)
		return nil

	case switchTabMsg:
		for i, t := range m.tabs {
			if t.Name == v.name {
				m.tabIdx = i
				m.resolveLayout()
				break
			}
		}
		return nil

	case commandActionMsg:
		return m.dispatchCommandAction(v.action)

	case tea.KeyMsg:
		_, cmd := m.handleKey(v)
		return cmd

	case events.ExitMsg:
		return func() tea.Msg { return exitRequestMsg{} }
	}
	return nil
}

// handleIdle translates an idle subsystem into follow-up MPD queries per
// the table in spec.md §4.1, issuing them as tea.Cmds so the UI thread
// never blocks on the round trip.
func (m *Model) handleIdle(msg events.IdleEventMsg) tea.Cmd {
	queries := events.Translate(msg.Kind, m.deps.Mpd.SupportsGetVol())
	if len(queries) == 0 {
		m.pushStatus("database updated", events.StatusInfo, 1500*time.Millisecond)
		return nil
	}

	var cmds []tea.Cmd
	for _, q := range queries {
		switch q.Kind {
		case events.QueryGetVolume:
			cmds = append(cmds, m.refreshVolumeCmd())
		case events.QueryGetStatus:
			cmds = append(cmds, m.refreshStatusCmd())
		case events.QueryPlaylistInfo:
			cmds = append(cmds, m.refreshQueueCmd())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) refreshVolumeCmd() tea.Cmd {
	return func() tea.Msg {
		v, err := m.deps.Mpd.GetVolume()
		if err != nil {
			return events.WorkDoneMsg{Kind: events.WorkMpdCommandFinished, Target: "volume", Err: err}
		}
		return volumeFetchedMsg{volume: v}
	}
}

type volumeFetchedMsg struct{ volume int }

// dispatchCommandAction resolves a remote/keybind command string into a
// follow-up worker job. "yt-search:<query>", "yt-download:<id>" and
// "yt-playlist:<url>" give `rmpc remote command` a way to drive yt-dlp
// without a dedicated search pane; anything else is surfaced as a plain
// status line, matching the teacher's catch-all Command action.
func (m *Model) dispatchCommandAction(action string) tea.Cmd {
	switch {
	case strings.HasPrefix(action, "yt-search:"):
		query := strings.TrimPrefix(action, "yt-search:")
		if m.deps.YtDlp == nil {
			m.pushStatus("yt-dlp unavailable", events.StatusWarn, 3*time.Second)
			return nil
		}
		m.worker.Submit(work.SearchYtJob(context.Background(), m.deps.YtDlp, query, ytdlp.SearchQuery, 20))
		m.pushStatus("searching: "+query, events.StatusInfo, 2*time.Second)
		return nil
	case strings.HasPrefix(action, "yt-download:"):
		id := strings.TrimPrefix(action, "yt-download:")
		if m.deps.YtDlp == nil {
			m.pushStatus("yt-dlp unavailable", events.StatusWarn, 3*time.Second)
			return nil
		}
		m.worker.Submit(work.YtDlpDownloadJob(context.Background(), m.deps.YtDlp, id))
		m.pushStatus("downloading: "+id, events.StatusInfo, 2*time.Second)
		return nil
	case strings.HasPrefix(action, "yt-playlist:"):
		url := strings.TrimPrefix(action, "yt-playlist:")
		if m.deps.YtDlp == nil {
			m.pushStatus("yt-dlp unavailable", events.StatusWarn, 3*time.Second)
			return nil
		}
		m.worker.Submit(work.YtDlpResolvePlaylistJob(context.Background(), m.deps.YtDlp, url))
		m.pushStatus("resolving playlist: "+url, events.StatusInfo, 2*time.Second)
		return nil
	default:
		m.pushStatus("command: "+action, events.StatusInfo, 2*time.Second)
		return nil
	}
}

// applyStatus updates playback state, detects song changes, and starts
// or stops the elapsed-time scheduler per the Play<->Pause|Stop rule.
func (m *Model) applyStatus(st mpdmodel.Status) tea.Cmd {
	wasPlaying := m.schedulerRun
	m.status = st
	m.schedulerRun = st.State == mpdmodel.StatePlay

	songChanged := (m.prevSongID == nil) != (st.SongID == nil)
	if !songChanged && m.prevSongID != nil && st.SongID != nil {
		songChanged = *m.prevSongID != *st.SongID
	}
	if st.State == mpdmodel.StateStop {
		songChanged = true
	}
	m.prevSongID = st.SongID
	m.needsRender = true

	var cmds []tea.Cmd
	if songChanged {
		if song, ok := m.queue.ByID(derefU32(st.SongID)); ok {
			m.currentSong = song
		}
		cmds = append(cmds, m.onSongChangedCmd(), m.loadAlbumArtCmd())
	}
	if !wasPlaying && m.schedulerRun {
		cmds = append(cmds, schedulerTickCmd(200*time.Millisecond))
	}
	return tea.Batch(cmds...)
}

func derefU32(p *uint32) uint32 {
	if p == nil {
		return 0
	}
	return *p
}
