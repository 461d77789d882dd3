package eventloop

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rmpc/internal/events"
	"rmpc/internal/ipc"
)

// IPCHandler builds the ipc.Handler the program's Unix-socket listener
// dispatches into, posting each remote command onto the same bridge
// channel idle events and worker results use so Update only ever runs on
// the UI thread.
func (m *Model) IPCHandler() ipc.Handler {
	return func(cmd ipc.Command) ([]string, error) {
		switch {
		case cmd.IndexLrc != nil:
			m.eventCh <- indexLrcRequestMsg{path: cmd.IndexLrc.Path}
			return nil, nil
		case cmd.StatusMessage != nil:
			m.eventCh <- events.StatusMsg{Text: cmd.StatusMessage.Message, Level: parseLevel(cmd.StatusMessage.Level)}
			return nil, nil
		case cmd.TmuxHook != nil:
			m.eventCh <- tmuxHookMsg{hook: cmd.TmuxHook.Hook}
			return nil, nil
		case cmd.Keybind != nil:
			m.eventCh <- tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(cmd.Keybind.Key)}
			return nil, nil
		case cmd.CommandAction != nil:
			m.eventCh <- commandActionMsg{action: cmd.CommandAction.Action}
			return nil, nil
		case cmd.SwitchTab != nil:
			m.eventCh <- switchTabMsg{name: cmd.SwitchTab.Name}
			return nil, nil
		default:
			return nil, fmt.Errorf("ipc: empty command")
		}
	}
}

func parseLevel(s string) events.StatusLevel {
	switch s {
	case "Warn", "warn":
		return events.StatusWarn
	case "Error", "error":
		return events.StatusError
	default:
		return events.StatusInfo
	}
}

type indexLrcRequestMsg struct{ path string }
type tmuxHookMsg struct{ hook string }
type commandActionMsg struct{ action string }
type switchTabMsg struct{ name string }
