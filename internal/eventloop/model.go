// Package eventloop wires every other package into the Bubble Tea
// Model/Update/View the teacher's model.go/view.go split, generalized
// from a single now-playing widget into the full pane/tab UI of
// spec.md §4.1: idle-event translation, frame-paced rendering, the
// status message ring, directional focus, and the browser panes.
package eventloop

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"rmpc/internal/address"
	"rmpc/internal/config"
	"rmpc/internal/dirstack"
	"rmpc/internal/events"
	"rmpc/internal/image"
	"rmpc/internal/ipc"
	"rmpc/internal/layout"
	"rmpc/internal/logging"
	"rmpc/internal/lrcindex"
	"rmpc/internal/mpdclient"
	"rmpc/internal/mpdmodel"
	"rmpc/internal/work"
	"rmpc/internal/ytdlp"
)

const messageRingCapacity = 10

// statusEntry is one line in the message ring.
type statusEntry struct {
	Text    string
	Level   events.StatusLevel
	Expires time.Time
}

// Deps bundles the collaborators New needs; every field is already
// constructed and owned by cmd/rmpc, which outlives the Model (the MPD
// client and worker are shut down by the caller after Program.Run
// returns).
type Deps struct {
	Cfg      *config.SafeConfig
	Mpd      *mpdclient.Client
	Logger   zerolog.Logger
	LrcIndex *lrcindex.Index
	YtDlp    *ytdlp.Client
	Address  address.Address
	PidSock  *ipc.Server // nil when the IPC listener failed to bind; non-fatal

	// Bridge is the channel mpdclient's idle/connection callbacks were
	// already wired to post onto via NewMpdOptions, before the Client
	// itself was constructed. Model reuses it instead of making its own,
	// so those callbacks (bound before a Model exists) and the worker's
	// deliver callback (bound after) land on the same queue.
	Bridge chan tea.Msg
}

// NewMpdOptions builds the mpdclient.Options whose callbacks post onto
// bridge, for use when dialing the Client before a Model exists to own
// it. cmd/rmpc creates bridge, passes these Options to mpdclient.New,
// and then passes the same bridge and Client through Deps.
func NewMpdOptions(bridge chan tea.Msg) mpdclient.Options {
	return mpdclient.Options{
		OnIdle:        func(kind events.IdleSubsystem) { bridge <- events.IdleEventMsg{Kind: kind} },
		OnLostConn:    func(error) { bridge <- events.LostConnectionMsg{} },
		OnReconnected: func() { bridge <- events.ReconnectedMsg{} },
	}
}

// Model is the event loop's Bubble Tea model.
type Model struct {
	deps Deps

	worker  *work.Worker
	facade  *image.Facade
	eventCh chan tea.Msg

	width, height int
	needsRender   bool
	lastRender    time.Time
	maxFPS        int

	status       mpdmodel.Status
	prevSongID   *uint32
	queue        mpdmodel.Queue
	currentSong  mpdmodel.Song
	connLost     bool
	schedulerRun bool

	artData image.EncodedData

	messages []statusEntry

	browsers map[layout.PaneKind]*dirstack.Stack[mpdmodel.DirOrSong]

	global  *layout.Node
	tabs    []tabDef
	tabIdx  int
	focus   *layout.FocusManager
	resolve []layout.Assignment

	quitting bool
	fatalErr error
}

type tabDef struct {
	Name string
	Root *layout.Node
}

// New builds a Model and its background wiring (work worker, image
// facade) but performs no I/O; callers drive startup via the tea.Program
// returned Init command.
func New(deps Deps) *Model {
	bridge := deps.Bridge
	if bridge == nil {
		bridge = make(chan tea.Msg, 256)
	}
	m := &Model{
		deps:     deps,
		eventCh:  bridge,
		maxFPS:   deps.Cfg.Get().Timing.MaxFps,
		browsers: map[layout.PaneKind]*dirstack.Stack[mpdmodel.DirOrSong]{},
	}
	if m.maxFPS <= 0 {
		m.maxFPS = 30
	}

	m.worker = work.NewWorker(func(msg events.WorkDoneMsg) {
		m.eventCh <- msg
	})
	m.facade = image.NewFacade(
		image.NewBackend(image.Detect(backendMethod(deps.Cfg.Get().Image.Backend))),
		nil,
		work.Submitter(m.worker),
		func(data image.EncodedData) { m.eventCh <- imageReadyMsg{data: data} },
		func(err error) { m.eventCh <- imageFailedMsg{err: err} },
	)

	m.global, m.tabs = defaultLayout()

	deps.Mpd.SupportsGetVol() // touch once so the field is warm before first idle event

	return m
}

func backendMethod(name string) image.Method {
	switch name {
	case "kitty":
		return image.MethodKitty
	case "iterm2":
		return image.MethodIterm2
	case "sixel":
		return image.MethodSixel
	case "ueberzug":
		return image.MethodUeberzugX11
	case "block":
		return image.MethodBlock
	case "none":
		return image.MethodNone
	default:
		return image.MethodAuto
	}
}

// Init kicks off the initial status/queue fetch and the self-rescheduling
// commands that bridge the MPD/worker callback goroutines and any
// scheduler tick into Bubble Tea messages.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForBridgeMsg(m.eventCh),
		m.refreshStatusCmd(),
		m.refreshQueueCmd(),
		m.browseRootCmd(layout.PaneDirectories, ""),
		tea.EnterAltScreen,
	)
}

// browseRootCmd seeds a browser pane's stack with the MPD root listing
// for uri (empty string is the database root), so the pane has content
// before the user navigates into it.
func (m *Model) browseRootCmd(kind layout.PaneKind, uri string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Mpd.ListInfo(uri)
		if err != nil {
			return events.WorkDoneMsg{Kind: events.WorkMpdCommandFinished, Target: "lsinfo", Err: err}
		}
		return browserSeededMsg{kind: kind, items: items}
	}
}

type browserSeededMsg struct {
	kind  layout.PaneKind
	items []mpdmodel.DirOrSong
}

// bridgeMsg wraps anything read off the bridge channel so Update can
// always reschedule exactly one more read in response, regardless of
// what the wrapped message turns out to be; tea.KeyMsg/tea.MouseMsg
// delivered directly by the Bubble Tea input reader never go through
// this wrapper, so they never trigger a spurious extra reschedule.
type bridgeMsg struct{ inner tea.Msg }

// waitForBridgeMsg is the self-rescheduling tea.Cmd that drains the
// channel MPD idle callbacks, worker completions, and the IPC handler
// are posted to, mirroring the teacher's tickCmd/fetchCmd pattern.
func waitForBridgeMsg(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return bridgeMsg{inner: <-ch} }
}

type imageReadyMsg struct{ data image.EncodedData }
type imageFailedMsg struct{ err error }

func (m *Model) refreshStatusCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.deps.Mpd.GetStatus()
		if err != nil {
			return events.WorkDoneMsg{Kind: events.WorkMpdCommandFinished, Target: "status", Err: err}
		}
		return statusFetchedMsg{status: st}
	}
}

func (m *Model) refreshQueueCmd() tea.Cmd {
	return func() tea.Msg {
		q, err := m.deps.Mpd.PlaylistInfo()
		if err != nil {
			return events.WorkDoneMsg{Kind: events.WorkMpdCommandFinished, Target: "queue", Err: err}
		}
		return queueFetchedMsg{queue: q}
	}
}

type statusFetchedMsg struct{ status mpdmodel.Status }
type queueFetchedMsg struct{ queue mpdmodel.Queue }

// schedulerTickCmd drives progress-bar interpolation while a song plays,
// started/stopped per the Play<->Pause|Stop transitions of §4.1.
func schedulerTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return schedulerTickMsg(t) })
}

type schedulerTickMsg time.Time

func (m *Model) pushStatus(text string, level events.StatusLevel, d time.Duration) {
	m.messages = append(m.messages, statusEntry{Text: text, Level: level, Expires: time.Now().Add(d)})
	if len(m.messages) > messageRingCapacity {
		m.messages = m.messages[len(m.messages)-messageRingCapacity:]
	}
	m.needsRender = true
}

func (m *Model) logErr(err error, cat logging.Category) {
	if err == nil {
		return
	}
	logging.Log(m.deps.Logger, err, cat)
	m.pushStatus(err.Error(), cat.StatusLevel(), 4*time.Second)
}

// MaxFPS returns the configured frame rate, for cmd/rmpc to pass to
// tea.WithFPS when constructing the Program.
func (m *Model) MaxFPS() int { return m.maxFPS }

// SetPidSock attaches the IPC listener after startup, once cmd/rmpc has
// bound it using IPCHandler (which itself requires a live Model) — this
// breaks the construction cycle so Shutdown still closes the listener.
func (m *Model) SetPidSock(s *ipc.Server) { m.deps.PidSock = s }

// Shutdown releases the worker, image facade, MPD client, and IPC
// listener; called by cmd/rmpc after Program.Run returns.
func (m *Model) Shutdown(ctx context.Context) {
	m.worker.Shutdown()
	_ = m.facade.Cleanup()
	m.deps.Mpd.Shutdown()
	if m.deps.PidSock != nil {
		_ = m.deps.PidSock.Close()
	}
	_ = ctx
}
