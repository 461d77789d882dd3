package layout

import "testing"

func pct(p uint16) Size { return Size{Kind: SizePercent, Percent: p} }

func TestPaneNavigationThreeWaySplit(t *testing.T) {
	// §8 scenario 6: 3-pane horizontal split [A, B, C].
	a := Pane{Kind: PaneQueue, ID: 1}
	b := Pane{Kind: PaneDirectories, ID: 2}
	c := Pane{Kind: PaneArtists, ID: 3}

	root := Split(Horizontal,
		Child{Size: pct(33), Node: Leaf(a)},
		Child{Size: pct(33), Node: Leaf(b)},
		Child{Size: pct(34), Node: Leaf(c)},
	)

	assignments, err := Resolve(root, NewGeometry(0, 0, 90, 24), BorderNone)
	if err != nil {
		t.Fatal(err)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}

	fm := NewFocusManager(assignments, nil)
	if fm.Focused() != 1 {
		t.Fatalf("expected initial focus on A(1), got %d", fm.Focused())
	}

	fm.Move(NavRight)
	if fm.Focused() != 2 {
		t.Fatalf("expected focus on B(2) after PaneRight, got %d", fm.Focused())
	}

	fm.Move(NavRight)
	if fm.Focused() != 3 {
		t.Fatalf("expected focus on C(3) after second PaneRight, got %d", fm.Focused())
	}

	fm.Move(NavLeft)
	fm.Move(NavLeft)
	if fm.Focused() != 1 {
		t.Fatalf("expected focus back on A(1) after two PaneLeft, got %d", fm.Focused())
	}

	before := fm.Focused()
	fm.Move(NavUp)
	if fm.Focused() != before {
		t.Fatalf("expected PaneUp from A to be a no-op, got focus %d", fm.Focused())
	}
}

func TestValidateRequiresExactlyOneTabContent(t *testing.T) {
	global := Leaf(Pane{Kind: PaneHeader, ID: 1})
	if err := Validate(global, nil); err == nil {
		t.Fatal("expected error for missing TabContent pane")
	}

	global = Leaf(Pane{Kind: PaneTabContent, ID: 1})
	if err := Validate(global, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsSharedPaneKind(t *testing.T) {
	global := Split(Horizontal,
		Child{Size: pct(50), Node: Leaf(Pane{Kind: PaneTabContent, ID: 1})},
		Child{Size: pct(50), Node: Leaf(Pane{Kind: PaneHeader, ID: 2})},
	)
	tab := Leaf(Pane{Kind: PaneHeader, ID: 3})

	if err := Validate(global, []*Node{tab}); err == nil {
		t.Fatal("expected error for a pane kind shared between global frame and a tab")
	}
}
