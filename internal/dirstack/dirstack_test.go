package dirstack

import (
	"strings"
	"testing"
	"time"
)

type testItem struct {
	path    string
	isDir   bool
	modTime time.Time
}

func (t testItem) Path() string { return t.path }
func (t testItem) Matches(filter string) bool {
	return strings.Contains(strings.ToLower(t.path), strings.ToLower(filter))
}

func TestPushPopIndistinguishable(t *testing.T) {
	// §8 invariant: pop() followed by push(x) leaves the remaining stack
	// indistinguishable from one where only push(x) happened.
	s := New([]testItem{{path: "root"}})
	s.Push([]testItem{{path: "a"}})
	s.Current().Selected = 0

	baseline := New([]testItem{{path: "root"}})

	s.Pop()
	s.Push([]testItem{{path: "x"}})

	baseline.Push([]testItem{{path: "x"}})

	if s.Depth() != baseline.Depth() {
		t.Fatalf("depth mismatch: %d vs %d", s.Depth(), baseline.Depth())
	}
	if s.Current().Items[0].Path() != baseline.Current().Items[0].Path() {
		t.Fatalf("top frame mismatch")
	}
}

func TestPopNeverEmptiesRoot(t *testing.T) {
	s := New([]testItem{{path: "root"}})
	if s.Pop() {
		t.Fatal("expected pop on root-only stack to fail")
	}
	if s.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", s.Depth())
	}
}

func TestSortGroupDirectoriesFirst(t *testing.T) {
	d := newDir([]testItem{
		{path: "song-b", isDir: false},
		{path: "dir-a", isDir: true},
		{path: "song-a", isDir: false},
		{path: "dir-b", isDir: true},
	})
	isDir := func(t testItem) bool { return t.isDir }
	less := func(a, b testItem) bool { return a.path < b.path }

	d.Sort(SortOptions{Mode: SortFormat, GroupDirectoriesFirst: true}, isDir, less)
	for i, it := range d.Items {
		if !it.isDir && i < 2 {
			t.Fatalf("song found before all dirs: %+v", d.Items)
		}
	}

	d.Sort(SortOptions{Mode: SortFormat, GroupDirectoriesFirst: true, Reverse: true}, isDir, less)
	for i, it := range d.Items {
		if it.isDir && i < 2 {
			t.Fatalf("dir found before all songs under reverse: %+v", d.Items)
		}
	}
}

func TestSortModifiedTimeStability(t *testing.T) {
	// §8 scenario 5: sort stability under mtime.
	t1 := time.Unix(1, 0)
	t2 := time.Unix(2, 0)
	t3 := time.Unix(3, 0)
	t4 := time.Unix(4, 0)
	d := newDir([]testItem{
		{path: "a", modTime: t1},
		{path: "b", modTime: t2},
		{path: "c", modTime: t3},
		{path: "d", modTime: t4},
	})
	isDir := func(testItem) bool { return false }
	less := func(a, b testItem) bool { return a.modTime.Before(b.modTime) }

	d.Sort(SortOptions{Mode: SortModifiedTime}, isDir, less)
	want := []string{"a", "b", "c", "d"}
	assertOrder(t, d.Items, want)

	d.Sort(SortOptions{Mode: SortModifiedTime, Reverse: true}, isDir, less)
	want = []string{"d", "c", "b", "a"}
	assertOrder(t, d.Items, want)
}

func assertOrder(t *testing.T, items []testItem, want []string) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].path != w {
			t.Fatalf("at %d: got %s, want %s (full: %+v)", i, items[i].path, w, items)
		}
	}
}

func TestEmptyFrameNavigationIsNoOp(t *testing.T) {
	s := New([]testItem{})
	d := s.Current()
	d.Next(0, false)
	d.Prev(0, false)
	d.First()
	d.Last()
	if d.Selected != 0 {
		t.Fatalf("selected moved on empty frame: %d", d.Selected)
	}
}

func TestMarking(t *testing.T) {
	d := newDir([]testItem{{path: "a"}, {path: "b"}})
	d.Selected = 1
	d.ToggleMarkSelected()
	if _, ok := d.Marked[1]; !ok {
		t.Fatal("expected index 1 marked")
	}
	d.ToggleMarkSelected()
	if _, ok := d.Marked[1]; ok {
		t.Fatal("expected index 1 unmarked")
	}
}

func TestFilterSearch(t *testing.T) {
	d := newDir([]testItem{{path: "alpha"}, {path: "beta"}, {path: "alphabet"}})
	d.EnterSearch("alph")
	if d.Selected != 0 {
		t.Fatalf("expected first match at 0, got %d", d.Selected)
	}
	d.NextResult()
	if d.Items[d.Selected].path != "alphabet" {
		t.Fatalf("expected next match alphabet, got %s", d.Items[d.Selected].path)
	}
	d.NextResult()
	if d.Items[d.Selected].path != "alpha" {
		t.Fatalf("expected wrap back to alpha, got %s", d.Items[d.Selected].path)
	}
}
