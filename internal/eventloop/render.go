package eventloop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rmpc/internal/events"
	"rmpc/internal/layout"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
)

// View implements tea.Model. It renders every leaf in the current
// layout resolution onto a fixed canvas, matching the teacher's
// lipgloss-driven composition generalized to multiple panes.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	cv := newCanvas(m.width, m.height)
	for _, a := range m.resolve {
		content := m.renderPane(a)
		cv.Put(int(a.Area.X), int(a.Area.Y), content)
	}
	return cv.String()
}

func (m *Model) renderPane(a layout.Assignment) string {
	w, h := int(a.Area.Width), int(a.Area.Height)
	switch a.Pane.Kind {
	case layout.PaneHeader:
		return m.renderHeader(w)
	case layout.PaneTabs:
		return m.renderTabs(w)
	case layout.PaneProgressBar:
		return m.renderProgress(w)
	case layout.PaneQueue:
		return m.renderQueue(a.Pane.ID, w, h)
	case layout.PaneAlbumArt:
		return m.renderAlbumArt(w, h)
	case layout.PaneDirectories, layout.PaneArtists, layout.PaneAlbums, layout.PaneAlbumArtists, layout.PanePlaylists, layout.PaneSearch:
		return m.renderBrowser(a.Pane.Kind, w, h)
	case layout.PaneLyrics:
		return m.renderLyrics(w, h)
	case layout.PaneLogs:
		return m.renderMessages(w, h)
	default:
		return ""
	}
}

func (m *Model) renderHeader(width int) string {
	title := "rmpc"
	if focused, ok := m.focusedPaneKind(); ok {
		title = fmt.Sprintf("rmpc — %s", paneKindName(focused))
	}
	return truncate(accentStyle.Render(title), width)
}

func (m *Model) renderTabs(width int) string {
	var parts []string
	for i, t := range m.tabs {
		label := t.Name
		if i == m.tabIdx {
			label = accentStyle.Render("[" + label + "]")
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return truncate(strings.Join(parts, " "), width)
}

func (m *Model) renderProgress(width int) string {
	if m.status.Duration <= 0 {
		return mutedStyle.Render(truncate("no song playing", width))
	}
	ratio := float64(m.status.Elapsed) / float64(m.status.Duration)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	barWidth := width - 13
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	bar := accentStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("─", barWidth-filled))
	return fmt.Sprintf("%s %s/%s", bar,
		formatTime(int64(m.status.Elapsed.Seconds())), formatTime(int64(m.status.Duration.Seconds())))
}

func (m *Model) renderQueue(paneID, width, height int) string {
	var b strings.Builder
	for i, song := range m.queue.Songs {
		if i >= height {
			break
		}
		marker := "  "
		if m.status.SongID != nil && song.ID == *m.status.SongID {
			marker = accentStyle.Render("▶ ")
		}
		line := fmt.Sprintf("%s%s — %s", marker, song.Title(), song.Tag("artist"))
		b.WriteString(truncate(line, width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) renderAlbumArt(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if m.artData != nil && m.facade.BackendName() == "block" {
		if out, err := m.facade.RenderInline(m.artData); err == nil {
			return strings.TrimRight(out, "\r\n")
		}
	}
	var placeholder string
	if backend := m.facade.BackendName(); backend != "block" && backend != "none" {
		placeholder = mutedStyle.Render(fmt.Sprintf("album art (%s)", backend))
	} else {
		placeholder = mutedStyle.Render("no album art")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, placeholder)
}

func (m *Model) renderBrowser(kind layout.PaneKind, width, height int) string {
	stack, ok := m.browsers[kind]
	if !ok {
		return mutedStyle.Render("(empty)")
	}
	dir := stack.Current()
	var b strings.Builder
	for i, item := range dir.Items {
		if i >= height {
			break
		}
		line := item.DisplayName()
		if i == dir.Selected {
			line = accentStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(truncate(line, width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) renderLyrics(width, height int) string {
	return mutedStyle.Render(truncate("no lyrics indexed for this song", width))
}

func (m *Model) renderMessages(width, height int) string {
	var b strings.Builder
	start := 0
	if len(m.messages) > height {
		start = len(m.messages) - height
	}
	for _, entry := range m.messages[start:] {
		style := mutedStyle
		switch entry.Level {
		case events.StatusWarn:
			style = warnStyle
		case events.StatusError:
			style = errorStyle
		}
		b.WriteString(truncate(style.Render(entry.Text), width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func paneKindName(k layout.PaneKind) string {
	switch k {
	case layout.PaneQueue:
		return "queue"
	case layout.PaneDirectories:
		return "directories"
	case layout.PaneArtists:
		return "artists"
	case layout.PaneAlbumArtists:
		return "album artists"
	case layout.PaneAlbums:
		return "albums"
	case layout.PanePlaylists:
		return "playlists"
	case layout.PaneSearch:
		return "search"
	case layout.PaneAlbumArt:
		return "album art"
	case layout.PaneLyrics:
		return "lyrics"
	default:
		return ""
	}
}
