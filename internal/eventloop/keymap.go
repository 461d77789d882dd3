package eventloop

import (
	tea "github.com/charmbracelet/bubbletea"

	"rmpc/internal/events"
	"rmpc/internal/layout"
	"rmpc/internal/logging"
	"rmpc/internal/mpdmodel"
)

// handleKey dispatches global keybindings, then tab-switch keys, then
// whatever a future per-pane handler would consume, per the three-tier
// resolution order of §4.5 ("global, then tab, then focused pane").
func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.needsRender = true
		return m, nil
	case "tab":
		m.tabIdx = (m.tabIdx + 1) % len(m.tabs)
		m.resolveLayout()
		return m, nil
	case "shift+tab":
		m.tabIdx = (m.tabIdx - 1 + len(m.tabs)) % len(m.tabs)
		m.resolveLayout()
		return m, nil
	case "left", "h":
		m.moveFocus(layout.NavLeft)
		return m, nil
	case "right", "l":
		m.moveFocus(layout.NavRight)
		return m, nil
	case "up", "k":
		return m.navSelection(func(d stackDir) { d.Prev(m.scrolloff(), m.wrap()) })
	case "down", "j":
		return m.navSelection(func(d stackDir) { d.Next(m.scrolloff(), m.wrap()) })
	case "g":
		return m.navSelection(func(d stackDir) { d.First() })
	case "G":
		return m.navSelection(func(d stackDir) { d.Last() })
	case "p":
		return m, m.togglePauseCmd()
	case "n":
		return m, m.nextCmd()
	case "b":
		return m, m.previousCmd()
	case "enter":
		return m, m.activateCmd()
	}
	return m, nil
}

type stackDir = interface {
	Next(int, bool)
	Prev(int, bool)
	First()
	Last()
}

func (m *Model) scrolloff() int { return m.deps.Cfg.Get().Browser.Scrolloff }
func (m *Model) wrap() bool     { return m.deps.Cfg.Get().Browser.WrapNavigation }

func (m *Model) moveFocus(dir layout.NavDirection) {
	if m.focus == nil {
		return
	}
	m.focus.Move(dir)
	m.needsRender = true
}

// navSelection applies fn to the focused pane's browser stack, if the
// focused pane kind owns one.
func (m *Model) navSelection(fn func(stackDir)) (tea.Model, tea.Cmd) {
	kind, ok := m.focusedPaneKind()
	if !ok {
		return m, nil
	}
	stack, ok := m.browsers[kind]
	if !ok {
		return m, nil
	}
	fn(stack.Current())
	m.needsRender = true
	return m, nil
}

func (m *Model) focusedPaneKind() (layout.PaneKind, bool) {
	if m.focus == nil {
		return 0, false
	}
	id := m.focus.Focused()
	for _, a := range m.resolve {
		if a.Pane.ID == id {
			return a.Pane.Kind, true
		}
	}
	return 0, false
}

func (m *Model) handleMouse(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.focus == nil || ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if id, ok := m.focus.HitTest(layout.Point{X: uint16(ev.X), Y: uint16(ev.Y)}); ok {
		m.focus.SetFocus(id)
		m.needsRender = true
	}
	return m, nil
}

func (m *Model) togglePauseCmd() tea.Cmd {
	pause := m.status.State == mpdmodel.StatePlay
	return func() tea.Msg {
		if err := m.deps.Mpd.Pause(pause); err != nil {
			return externalErr(err)
		}
		return nil
	}
}

func (m *Model) nextCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.deps.Mpd.Next(); err != nil {
			return externalErr(err)
		}
		return nil
	}
}

func (m *Model) previousCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.deps.Mpd.Previous(); err != nil {
			return externalErr(err)
		}
		return nil
	}
}

// activateCmd implements the browser's open-or-play rule of §4.6: a
// directory row pushes a new frame (after an lsinfo round trip); a song
// row is queued and, on "open", played immediately.
func (m *Model) activateCmd() tea.Cmd {
	kind, ok := m.focusedPaneKind()
	if !ok {
		return nil
	}
	stack, ok := m.browsers[kind]
	if !ok {
		return nil
	}
	entry, ok := stack.Current().Current()
	if !ok {
		return nil
	}

	if entry.IsDir() {
		dirPath := entry.Dir.FullPath
		return func() tea.Msg {
			children, err := m.deps.Mpd.ListInfo(dirPath)
			if err != nil {
				return externalErr(err)
			}
			return dirPushedMsg{kind: kind, items: children}
		}
	}

	song := entry.Song
	queueLen := len(m.queue.Songs)
	return func() tea.Msg {
		if err := m.deps.Mpd.PlayLast(song.File, queueLen); err != nil {
			return externalErr(err)
		}
		return nil
	}
}

type dirPushedMsg struct {
	kind  layout.PaneKind
	items []mpdmodel.DirOrSong
}

func externalErr(err error) tea.Msg {
	return events.WorkDoneMsg{Kind: events.WorkMpdCommandFinished, Err: logging.Classify(err, logging.CategoryConnection)}
}
