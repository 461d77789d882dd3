package eventloop

import "rmpc/internal/layout"

// defaultLayout builds the global frame (header + tab bar + content area
// + progress bar) and the per-tab content trees, matching the structural
// invariants layout.Validate enforces: the global frame has no focusable
// panes and exactly one TabContent leaf, and no pane kind is shared
// between the global frame and any tab.
func defaultLayout() (*layout.Node, []tabDef) {
	global := layout.Split(layout.Vertical,
		layout.Child{Size: layout.Size{Kind: layout.SizeLength, Length: 1}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneHeader, ID: 1})},
		layout.Child{Size: layout.Size{Kind: layout.SizeLength, Length: 1}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneTabs, ID: 2})},
		layout.Child{Size: layout.Size{Kind: layout.SizePercent, Percent: 100}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneTabContent, ID: 3})},
		layout.Child{Size: layout.Size{Kind: layout.SizeLength, Length: 2}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneProgressBar, ID: 4})},
	)

	queueTab := layout.Split(layout.Horizontal,
		layout.Child{Size: layout.Size{Kind: layout.SizePercent, Percent: 35}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneAlbumArt, ID: 10})},
		layout.Child{Size: layout.Size{Kind: layout.SizePercent, Percent: 65}, Node: layout.Leaf(layout.Pane{Kind: layout.PaneQueue, ID: 11})},
	)

	directoriesTab := layout.Leaf(layout.Pane{Kind: layout.PaneDirectories, ID: 20})
	artistsTab := layout.Leaf(layout.Pane{Kind: layout.PaneArtists, ID: 21})
	albumsTab := layout.Leaf(layout.Pane{Kind: layout.PaneAlbums, ID: 22})
	playlistsTab := layout.Leaf(layout.Pane{Kind: layout.PanePlaylists, ID: 23})
	searchTab := layout.Leaf(layout.Pane{Kind: layout.PaneSearch, ID: 24})
	lyricsTab := layout.Leaf(layout.Pane{Kind: layout.PaneLyrics, ID: 25})

	tabs := []tabDef{
		{Name: "queue", Root: queueTab},
		{Name: "directories", Root: directoriesTab},
		{Name: "artists", Root: artistsTab},
		{Name: "albums", Root: albumsTab},
		{Name: "playlists", Root: playlistsTab},
		{Name: "search", Root: searchTab},
		{Name: "lyrics", Root: lyricsTab},
	}
	return global, tabs
}

// resolveLayout partitions the current terminal size into the global
// frame's assignments plus the active tab's content, then rebuilds the
// focus manager over the combined leaf set.
func (m *Model) resolveLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	area := layout.NewGeometry(0, 0, uint16(m.width), uint16(m.height))
	assignments, err := layout.Resolve(m.global, area, layout.BorderNone)
	if err != nil {
		m.fatalErr = err
		return
	}

	var contentArea layout.Geometry
	out := make([]layout.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Pane.Kind == layout.PaneTabContent {
			contentArea = a.Area
			continue
		}
		out = append(out, a)
	}

	if len(m.tabs) > 0 {
		tabAssignments, err := layout.Resolve(m.tabs[m.tabIdx].Root, contentArea, layout.BorderSingle)
		if err == nil {
			out = append(out, tabAssignments...)
		}
	}

	m.resolve = out
	m.focus = layout.NewFocusManager(out, nil)
	m.facade.SetSize(albumArtArea(out))
}

func albumArtArea(assignments []layout.Assignment) layout.Geometry {
	for _, a := range assignments {
		if a.Pane.Kind == layout.PaneAlbumArt {
			return a.Area
		}
	}
	return layout.Geometry{}
}
