package layout

import "time"

// PaneData tracks per-leaf layout and activity bookkeeping the focus
// manager needs: its resolved area, whether it can receive focus, and
// when it was last active (used to break navigation ties).
type PaneData struct {
	ID         int
	Area       Geometry
	Focusable  bool
	LastActive time.Time
}

// FocusManager implements directional pane navigation (§4.5) and mouse
// hit-testing over a resolved set of leaf assignments.
type FocusManager struct {
	panes    map[int]*PaneData
	order    []int
	focused  int
	clock    func() time.Time
}

// NewFocusManager builds a manager from resolved assignments. Panes whose
// kind is not focusable (header, tabs, progress bar, logs, frame count)
// are tracked for hit-testing but never receive focus.
func NewFocusManager(assignments []Assignment, now func() time.Time) *FocusManager {
	if now == nil {
		now = time.Now
	}
	fm := &FocusManager{panes: map[int]*PaneData{}, clock: now}
	for _, a := range assignments {
		fm.panes[a.Pane.ID] = &PaneData{
			ID:        a.Pane.ID,
			Area:      a.Area,
			Focusable: isFocusable(a.Pane.Kind),
		}
		fm.order = append(fm.order, a.Pane.ID)
	}
	if len(fm.order) > 0 {
		for _, id := range fm.order {
			if fm.panes[id].Focusable {
				fm.focused = id
				break
			}
		}
	}
	fm.touch(fm.focused)
	return fm
}

func (fm *FocusManager) touch(id int) {
	if p, ok := fm.panes[id]; ok {
		p.LastActive = fm.clock()
	}
}

// Focused returns the id of the currently focused pane.
func (fm *FocusManager) Focused() int { return fm.focused }

// SetFocus explicitly focuses a pane id if it is focusable.
func (fm *FocusManager) SetFocus(id int) {
	if p, ok := fm.panes[id]; ok && p.Focusable {
		fm.focused = id
		fm.touch(id)
	}
}

// HitTest returns the id of the focusable pane containing the point, for
// mouse click dispatch, and whether one was found.
func (fm *FocusManager) HitTest(pt Point) (int, bool) {
	for _, id := range fm.order {
		p := fm.panes[id]
		if !p.Focusable {
			continue
		}
		if pt.X >= p.Area.X && pt.X < p.Area.X+p.Area.Width &&
			pt.Y >= p.Area.Y && pt.Y < p.Area.Y+p.Area.Height {
			return id, true
		}
	}
	return 0, false
}

// Move implements directional navigation: (1) panes directly adjacent in
// the given direction sharing an edge, (2) else the closest non-adjacent
// pane in that direction, (3) ties broken by most recently active.
func (fm *FocusManager) Move(dir NavDirection) {
	cur, ok := fm.panes[fm.focused]
	if !ok {
		return
	}

	var adjacent []*PaneData
	var distant []*PaneData
	for _, id := range fm.order {
		p := fm.panes[id]
		if !p.Focusable || p.ID == cur.ID {
			continue
		}
		if directlyAdjacent(cur.Area, p.Area, dir) {
			adjacent = append(adjacent, p)
			continue
		}
		if inDirection(cur.Area, p.Area, dir) {
			distant = append(distant, p)
		}
	}

	candidates := adjacent
	if len(candidates) == 0 {
		candidates = distant
	}
	if len(candidates) == 0 {
		return // no pane in that direction: focus unchanged
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.LastActive.After(best.LastActive) {
			best = c
		}
	}
	fm.focused = best.ID
	fm.touch(best.ID)
}

// NavDirection is the four-way focus movement direction.
type NavDirection int

const (
	NavUp NavDirection = iota
	NavDown
	NavLeft
	NavRight
)

func directlyAdjacent(from, to Geometry, dir NavDirection) bool {
	switch dir {
	case NavUp:
		return from.IsDirectlyAbove(to)
	case NavDown:
		return from.IsDirectlyBelow(to)
	case NavLeft:
		return from.IsDirectlyLeft(to)
	default:
		return from.IsDirectlyRight(to)
	}
}

func inDirection(from, to Geometry, dir NavDirection) bool {
	switch dir {
	case NavUp:
		return to.Y+to.Height <= from.Y && overlaps1D(from.X, from.Width, to.X, to.Width)
	case NavDown:
		return to.Y >= from.Y+from.Height && overlaps1D(from.X, from.Width, to.X, to.Width)
	case NavLeft:
		return to.X+to.Width <= from.X && overlaps1D(from.Y, from.Height, to.Y, to.Height)
	default:
		return to.X >= from.X+from.Width && overlaps1D(from.Y, from.Height, to.Y, to.Height)
	}
}
