// Package dirstack implements the generic navigation/selection backbone
// shared by the Directories, Artists, Albums, Album Artists, and
// Playlists browser panes.
package dirstack

import "sort"

// Item is the capability set every DirStack element type must provide:
// a stable path for identity/sort, and a filter-match predicate.
type Item interface {
	Path() string
	Matches(filter string) bool
}

// Dir is one pushed frame: the items at that directory level, the current
// selection/scroll state, an optional active filter, and marked indices.
type Dir[T Item] struct {
	Items    []T
	Selected int
	Offset   int
	Filter   *string
	Marked   map[int]struct{}
}

func newDir[T Item](items []T) *Dir[T] {
	return &Dir[T]{Items: items, Selected: 0, Offset: 0, Marked: map[int]struct{}{}}
}

// filtered returns the indices of Items that pass the active filter, or
// all indices if no filter is set.
func (d *Dir[T]) filtered() []int {
	if d.Filter == nil {
		idx := make([]int, len(d.Items))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	var idx []int
	for i, it := range d.Items {
		if it.Matches(*d.Filter) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Current returns the item under the selection cursor, if any.
func (d *Dir[T]) Current() (T, bool) {
	var zero T
	if d.Selected < 0 || d.Selected >= len(d.Items) {
		return zero, false
	}
	return d.Items[d.Selected], true
}

// ToggleMarkSelected flips the marked state of the current selection.
func (d *Dir[T]) ToggleMarkSelected() {
	if d.Selected < 0 || d.Selected >= len(d.Items) {
		return
	}
	if _, ok := d.Marked[d.Selected]; ok {
		delete(d.Marked, d.Selected)
	} else {
		d.Marked[d.Selected] = struct{}{}
	}
}

// SortMode selects how a frame's items are ordered.
type SortMode int

const (
	SortFormat SortMode = iota
	SortModifiedTime
)

// SortOptions configures Dir.Sort.
type SortOptions struct {
	Mode                  SortMode
	GroupDirectoriesFirst bool
	Reverse               bool
}

// Sort orders Items in place per §4.6's rules: directories-first grouping
// (unless disabled, with the group order itself flipping under reverse so
// the "no Song precedes any Dir unless reversed" invariant holds), then
// either lexicographic-by-property or modified-time comparison (the
// caller supplies `less` for whichever SortMode is active), with reverse
// applied to the within-group order too. The sort is stable, so items
// that compare equal keep their original relative order.
func (d *Dir[T]) Sort(opts SortOptions, isDir func(T) bool, less func(a, b T) bool) {
	items := d.Items
	sort.SliceStable(items, func(i, j int) bool {
		if opts.GroupDirectoriesFirst {
			ri, rj := groupRank(isDir(items[i]), opts.Reverse), groupRank(isDir(items[j]), opts.Reverse)
			if ri != rj {
				return ri < rj
			}
		}
		if opts.Reverse {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func groupRank(isDirFlag, reverse bool) int {
	if isDirFlag != reverse {
		return 0
	}
	return 1
}

// Stack is the ordered sequence of pushed Dir frames; index 0 is always
// the root and the stack is never empty.
type Stack[T Item] struct {
	frames  []*Dir[T]
	preview []T
}

// New creates a Stack with a root frame holding the given items.
func New[T Item](rootItems []T) *Stack[T] {
	return &Stack[T]{frames: []*Dir[T]{newDir(rootItems)}}
}

// Push appends a new frame on top of the stack and clears the preview.
func (s *Stack[T]) Push(items []T) {
	s.frames = append(s.frames, newDir(items))
	s.preview = nil
}

// Pop drops the top frame. It is a no-op if only the root remains,
// matching the "never empty" invariant; it reports whether it popped.
func (s *Stack[T]) Pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.preview = nil
	return true
}

// Current returns the top frame.
func (s *Stack[T]) Current() *Dir[T] {
	return s.frames[len(s.frames)-1]
}

// Previous returns the frame below the top, used for the breadcrumb
// column; nil at the root.
func (s *Stack[T]) Previous() *Dir[T] {
	if len(s.frames) < 2 {
		return nil
	}
	return s.frames[len(s.frames)-2]
}

// Depth reports how many frames are pushed (root counts as 1).
func (s *Stack[T]) Depth() int { return len(s.frames) }

// SetPreview replaces the lazily computed preview of the current
// selection.
func (s *Stack[T]) SetPreview(items []T) { s.preview = items }

// ClearPreview drops the preview.
func (s *Stack[T]) ClearPreview() { s.preview = nil }

// Preview returns the current preview contents, if any.
func (s *Stack[T]) Preview() []T { return s.preview }
