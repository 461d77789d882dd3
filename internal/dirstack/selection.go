package dirstack

// Next moves the selection one row down, applying scrolloff and optional
// wraparound. A no-op on an empty frame.
func (d *Dir[T]) Next(scrolloff int, wrap bool) {
	n := len(d.filtered())
	if n == 0 {
		return
	}
	if d.Selected+1 >= n {
		if wrap {
			d.Selected = 0
		}
	} else {
		d.Selected++
	}
	d.adjustOffset(scrolloff)
}

// Prev moves the selection one row up, mirroring Next.
func (d *Dir[T]) Prev(scrolloff int, wrap bool) {
	n := len(d.filtered())
	if n == 0 {
		return
	}
	if d.Selected == 0 {
		if wrap {
			d.Selected = n - 1
		}
	} else {
		d.Selected--
	}
	d.adjustOffset(scrolloff)
}

// First selects the first row.
func (d *Dir[T]) First() {
	if len(d.Items) == 0 {
		return
	}
	d.Selected = 0
	d.Offset = 0
}

// Last selects the final row.
func (d *Dir[T]) Last() {
	n := len(d.filtered())
	if n == 0 {
		return
	}
	d.Selected = n - 1
}

// SelectIdx jumps the selection to an explicit index, clamped to range.
// A no-op on an empty frame.
func (d *Dir[T]) SelectIdx(idx, scrolloff int) {
	n := len(d.filtered())
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	d.Selected = idx
	d.adjustOffset(scrolloff)
}

// NextViewport advances the selection by a full viewport height.
func (d *Dir[T]) NextViewport(viewport, scrolloff int) {
	d.SelectIdx(d.Selected+viewport, scrolloff)
}

// NextHalfViewport advances the selection by half a viewport height.
func (d *Dir[T]) NextHalfViewport(viewport, scrolloff int) {
	d.SelectIdx(d.Selected+viewport/2, scrolloff)
}

// PrevViewport retreats the selection by a full viewport height.
func (d *Dir[T]) PrevViewport(viewport, scrolloff int) {
	d.SelectIdx(d.Selected-viewport, scrolloff)
}

// ScrollDown moves the visible offset down without moving the selection,
// clamped to keep at least one row visible.
func (d *Dir[T]) ScrollDown(amount int) {
	max := len(d.filtered()) - 1
	if max < 0 {
		max = 0
	}
	d.Offset += amount
	if d.Offset > max {
		d.Offset = max
	}
}

// ScrollUp is the inverse of ScrollDown.
func (d *Dir[T]) ScrollUp(amount int) {
	d.Offset -= amount
	if d.Offset < 0 {
		d.Offset = 0
	}
}

func (d *Dir[T]) adjustOffset(scrolloff int) {
	if d.Selected < d.Offset+scrolloff {
		d.Offset = d.Selected - scrolloff
	}
	if d.Offset < 0 {
		d.Offset = 0
	}
}

// EnterSearch sets the active filter, resetting the selection onto the
// first matching row.
func (d *Dir[T]) EnterSearch(filter string) {
	d.Filter = &filter
	d.FirstResult()
}

// ExitSearch clears the active filter.
func (d *Dir[T]) ExitSearch() {
	d.Filter = nil
}

// FirstResult selects the first row passing the active filter.
func (d *Dir[T]) FirstResult() {
	idx := d.filtered()
	if len(idx) == 0 {
		return
	}
	d.Selected = idx[0]
}

// NextResult selects the next row (by original index) passing the active
// filter, wrapping to the first match.
func (d *Dir[T]) NextResult() {
	idx := d.filtered()
	if len(idx) == 0 {
		return
	}
	for _, i := range idx {
		if i > d.Selected {
			d.Selected = i
			return
		}
	}
	d.Selected = idx[0]
}

// PreviousResult selects the previous row passing the active filter,
// wrapping to the last match.
func (d *Dir[T]) PreviousResult() {
	idx := d.filtered()
	if len(idx) == 0 {
		return
	}
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i] < d.Selected {
			d.Selected = idx[i]
			return
		}
	}
	d.Selected = idx[len(idx)-1]
}
