package eventloop

import (
	"errors"
	"testing"
	"time"

	"rmpc/internal/config"
	"rmpc/internal/events"
	"rmpc/internal/layout"
	"rmpc/internal/lrcindex"
	"rmpc/internal/mpdclient"
	"rmpc/internal/mpdmodel"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m := New(Deps{
		Cfg:      &config.SafeConfig{},
		Mpd:      &mpdclient.Client{},
		LrcIndex: &lrcindex.Index{},
	})
	t.Cleanup(func() { m.worker.Shutdown() })
	return m
}

func u32(v uint32) *uint32 { return &v }

func TestApplyStatusDetectsSongChange(t *testing.T) {
	m := testModel(t)
	m.queue = mpdmodel.Queue{Songs: []mpdmodel.Song{{ID: 1, File: "a.mp3"}}}

	m.applyStatus(mpdmodel.Status{State: mpdmodel.StatePlay, SongID: u32(1)})
	if m.currentSong.File != "a.mp3" {
		t.Fatalf("expected current song a.mp3, got %q", m.currentSong.File)
	}
	if !m.schedulerRun {
		t.Fatalf("expected scheduler running while State == Play")
	}

	m.applyStatus(mpdmodel.Status{State: mpdmodel.StateStop})
	if m.schedulerRun {
		t.Fatalf("expected scheduler stopped on State == Stop")
	}
}

func TestApplyStatusSongChangeRequiresIDDiff(t *testing.T) {
	m := testModel(t)
	m.queue = mpdmodel.Queue{Songs: []mpdmodel.Song{{ID: 1}, {ID: 2}}}

	m.applyStatus(mpdmodel.Status{State: mpdmodel.StatePlay, SongID: u32(1)})
	m.currentSong = mpdmodel.Song{File: "sentinel"}

	m.applyStatus(mpdmodel.Status{State: mpdmodel.StatePlay, SongID: u32(1)})
	if m.currentSong.File != "sentinel" {
		t.Fatalf("repeating the same song id should not re-resolve currentSong")
	}
}

// TestUpdateBridgeMsgReschedulesExactlyOnce exercises a dispatchBridge
// case (StatusMsg) that itself returns a nil cmd, so tea.Batch collapses
// the (nil, waitForBridgeMsg) pair down to the single rescheduled read:
// whatever is next on the channel comes back wrapped in bridgeMsg.
func TestUpdateBridgeMsgReschedulesExactlyOnce(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 80, 24

	model, cmd := m.Update(bridgeMsg{inner: events.StatusMsg{Text: "hi", Level: events.StatusInfo}})
	if model.(*Model) != m {
		t.Fatalf("Update should return the same *Model")
	}
	if cmd == nil {
		t.Fatalf("expected a non-nil rescheduled read")
	}

	marker := events.StatusMsg{Text: "marker"}
	m.eventCh <- marker
	got, ok := cmd().(bridgeMsg)
	if !ok {
		t.Fatalf("expected bridgeMsg, got %T", got)
	}
	if got.inner.(events.StatusMsg).Text != "marker" {
		t.Fatalf("expected the rescheduled read to drain the next queued message")
	}

	select {
	case <-m.eventCh:
		t.Fatalf("expected exactly one value consumed from eventCh, found a second")
	default:
	}
}

func TestDispatchBridgeLostConnectionStopsScheduler(t *testing.T) {
	m := testModel(t)
	m.schedulerRun = true

	m.dispatchBridge(events.LostConnectionMsg{})
	if !m.connLost {
		t.Fatalf("expected connLost true")
	}
	if m.schedulerRun {
		t.Fatalf("expected scheduler stopped on lost connection")
	}
	if m.status.State != mpdmodel.StateStop {
		t.Fatalf("expected state forced to Stop on lost connection")
	}
}

func TestDispatchBridgeReconnectedResyncsTriple(t *testing.T) {
	m := testModel(t)
	m.connLost = true

	cmd := m.dispatchBridge(events.ReconnectedMsg{})
	if m.connLost {
		t.Fatalf("expected connLost cleared")
	}
	if cmd == nil {
		t.Fatalf("expected a resync batch cmd")
	}
}

func TestDispatchBridgeIndexLrcSubmitsJob(t *testing.T) {
	m := testModel(t)
	m.dispatchBridge(indexLrcRequestMsg{path: "/music/song.lrc"})
}

func TestDispatchBridgeSwitchTab(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 80, 24
	m.resolveLayout()
	want := m.tabs[2].Name

	m.dispatchBridge(switchTabMsg{name: want})
	if m.tabs[m.tabIdx].Name != want {
		t.Fatalf("expected tab %q active, got %q", want, m.tabs[m.tabIdx].Name)
	}
}

func TestDispatchBridgeExitProducesExitRequest(t *testing.T) {
	m := testModel(t)
	cmd := m.dispatchBridge(events.ExitMsg{})
	if cmd == nil {
		t.Fatalf("expected non-nil cmd")
	}
	if _, ok := cmd().(exitRequestMsg); !ok {
		t.Fatalf("expected exitRequestMsg")
	}
}

func TestHandleWorkDoneClassifiesErrors(t *testing.T) {
	m := testModel(t)
	before := len(m.messages)
	m.handleWorkDone(events.WorkDoneMsg{Kind: events.WorkAlbumArtLoaded, Err: errors.New("boom")})
	if len(m.messages) != before+1 {
		t.Fatalf("expected a status message pushed for a failed job")
	}
}

func TestBrowserSeededMsgPopulatesStack(t *testing.T) {
	m := testModel(t)
	items := []mpdmodel.DirOrSong{mpdmodel.NewDirEntry(mpdmodel.Dir{Name: "Albums", FullPath: "Albums"})}

	model, _ := m.Update(browserSeededMsg{kind: layout.PaneDirectories, items: items})
	got := model.(*Model)
	stack, ok := got.browsers[layout.PaneDirectories]
	if !ok {
		t.Fatalf("expected Directories stack to be seeded")
	}
	if len(stack.Current().Items) != 1 {
		t.Fatalf("expected 1 item in root frame, got %d", len(stack.Current().Items))
	}
}

func TestSchedulerTickStopsReschedulingOnceStopped(t *testing.T) {
	m := testModel(t)
	m.schedulerRun = false
	_, cmd := m.Update(schedulerTickMsg(time.Time{}))
	if cmd != nil {
		t.Fatalf("expected no reschedule once scheduler is stopped")
	}
}
