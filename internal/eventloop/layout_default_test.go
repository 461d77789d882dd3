package eventloop

import (
	"testing"

	"rmpc/internal/layout"
)

func TestDefaultLayoutValidates(t *testing.T) {
	global, tabs := defaultLayout()
	var roots []*layout.Node
	for _, td := range tabs {
		roots = append(roots, td.Root)
	}
	if err := layout.Validate(global, roots); err != nil {
		t.Fatalf("defaultLayout produced an invalid layout: %v", err)
	}
}

func TestResolveLayoutPopulatesFocusManager(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 100, 30
	m.resolveLayout()

	if m.focus == nil {
		t.Fatalf("expected a focus manager after resolveLayout")
	}
	if len(m.resolve) == 0 {
		t.Fatalf("expected non-empty pane assignments")
	}
}

func TestResolveLayoutSwitchesTabContent(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 100, 30
	m.resolveLayout()

	found := func() bool {
		for _, a := range m.resolve {
			if a.Pane.Kind == layout.PaneQueue {
				return true
			}
		}
		return false
	}
	if !found() {
		t.Fatalf("expected the default (queue) tab's panes in the resolved set")
	}

	m.tabIdx = 1 // directories
	m.resolveLayout()
	for _, a := range m.resolve {
		if a.Pane.Kind == layout.PaneQueue {
			t.Fatalf("queue pane should not appear once the directories tab is active")
		}
	}
}
