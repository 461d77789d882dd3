package layout

import "testing"

func TestTakeChunkHorizSequence(t *testing.T) {
	g := NewGeometry(0, 0, 100, 100)

	c1 := g.TakeChunk(Horizontal, 20)
	if c1.X != 0 || c1.Width != 20 {
		t.Fatalf("chunk1 = %+v", c1)
	}
	c2 := g.TakeChunk(Horizontal, 20)
	if c2.X != 20 || c2.Width != 20 {
		t.Fatalf("chunk2 = %+v", c2)
	}
	c3 := g.TakeChunk(Horizontal, 35)
	if c3.X != 40 || c3.Width != 35 {
		t.Fatalf("chunk3 = %+v", c3)
	}
	rem := g.TakeRemainder(Horizontal)
	if rem.X != 75 || rem.Width != 25 {
		t.Fatalf("remainder = %+v", rem)
	}
	total := c1.Width + c2.Width + c3.Width + rem.Width
	if total != 100 {
		t.Fatalf("chunks don't tile the full width: %d", total)
	}
}

func TestTakeChunkVertSequence(t *testing.T) {
	g := NewGeometry(0, 0, 100, 100)
	c1 := g.TakeChunk(Vertical, 50)
	if c1.Y != 0 || c1.Height != 50 {
		t.Fatalf("chunk1 = %+v", c1)
	}
	rem := g.TakeRemainder(Vertical)
	if rem.Y != 50 || rem.Height != 50 {
		t.Fatalf("remainder = %+v", rem)
	}
}

func TestDirectAdjacency(t *testing.T) {
	center := NewGeometry(25, 25, 50, 50)

	cases := []struct {
		name  string
		other Geometry
		above bool
		below bool
		left  bool
		right bool
	}{
		{"directly right, full overlap", NewGeometry(75, 25, 50, 50), false, false, false, true},
		{"directly left, full overlap", NewGeometry(0, 25, 25, 50), false, false, true, false},
		{"directly above, full overlap", NewGeometry(25, 0, 50, 25), true, false, false, false},
		{"directly below, full overlap", NewGeometry(25, 75, 50, 50), false, true, false, false},
		{"right but partial vertical overlap", NewGeometry(75, 60, 50, 50), false, false, false, true},
		{"right but no vertical overlap", NewGeometry(75, 100, 50, 50), false, false, false, false},
		{"same rect is not adjacent to itself", NewGeometry(25, 25, 50, 50), false, false, false, false},
		{"diagonal neighbor is not directly adjacent", NewGeometry(75, 75, 50, 50), false, false, false, false},
	}

	for _, c := range cases {
		if got := center.IsDirectlyAbove(c.other); got != c.above {
			t.Errorf("%s: IsDirectlyAbove = %v, want %v", c.name, got, c.above)
		}
		if got := center.IsDirectlyBelow(c.other); got != c.below {
			t.Errorf("%s: IsDirectlyBelow = %v, want %v", c.name, got, c.below)
		}
		if got := center.IsDirectlyLeft(c.other); got != c.left {
			t.Errorf("%s: IsDirectlyLeft = %v, want %v", c.name, got, c.left)
		}
		if got := center.IsDirectlyRight(c.other); got != c.right {
			t.Errorf("%s: IsDirectlyRight = %v, want %v", c.name, got, c.right)
		}
	}
}

func TestTakeChunkOneByOneRect(t *testing.T) {
	// §8 boundary behavior: a 1x1 Rect must not panic when carved.
	g := NewGeometry(0, 0, 1, 1)
	chunk := g.TakeChunk(Horizontal, 100)
	if chunk.Width != 1 {
		t.Fatalf("chunk = %+v", chunk)
	}
}
