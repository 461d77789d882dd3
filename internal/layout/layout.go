package layout

import "fmt"

// PaneKind enumerates the leaf widget types a Pane can host.
type PaneKind int

const (
	PaneQueue PaneKind = iota
	PaneDirectories
	PaneArtists
	PaneAlbumArtists
	PaneAlbums
	PanePlaylists
	PaneSearch
	PaneAlbumArt
	PaneLyrics
	PaneProgressBar
	PaneHeader
	PaneTabs
	PaneTabContent
	PaneLogs
	PaneFrameCount
)

// Border is one of the four edges a Pane may render a border on.
type Border int

const (
	BorderTop Border = iota
	BorderBottom
	BorderLeft
	BorderRight
)

// Pane is a single leaf in the layout tree.
type Pane struct {
	Kind    PaneKind
	Borders []Border
	ID      int
}

// SizeKind discriminates PercentOrLength's variants.
type SizeKind int

const (
	SizePercent SizeKind = iota
	SizeLength
	SizeRatio
)

// Size is the PercentOrLength union: a percentage of the parent extent,
// an exact cell count, or a ratio of the parent extent.
type Size struct {
	Kind    SizeKind
	Percent uint16
	Length  uint16
	Ratio   float64
}

// Child is one entry of a Split: its size spec and its subtree.
type Child struct {
	Size Size
	Node *Node
}

// Node is the recursive SizedPaneOrSplit: either a leaf Pane or a Split of
// further Nodes.
type Node struct {
	Pane      *Pane
	Direction Direction
	Children  []Child
}

// Leaf builds a leaf node wrapping a Pane.
func Leaf(p Pane) *Node { return &Node{Pane: &p} }

// Split builds an internal node with the given direction and children.
func Split(dir Direction, children ...Child) *Node {
	return &Node{Direction: dir, Children: children}
}

// BorderType controls how adjacent children in a Split share borders.
type BorderType int

const (
	BorderFull BorderType = iota
	BorderSingle
	BorderNone
)

// Assignment is one resolved (Pane, Rect) pairing produced by Resolve.
type Assignment struct {
	Pane    *Pane
	Area    Geometry
	Borders []Border
}

// Resolve performs the depth-first partition of area per each child's
// Size, returning a flat list of leaf assignments in tree order.
func Resolve(root *Node, area Geometry, borderType BorderType) ([]Assignment, error) {
	var out []Assignment
	if err := resolve(root, area, borderType, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func resolve(n *Node, area Geometry, bt BorderType, out *[]Assignment) error {
	if n.Pane != nil {
		*out = append(*out, Assignment{Pane: n.Pane, Area: area})
		return nil
	}

	g := area
	for i, child := range n.Children {
		childArea := takeChildArea(&g, n.Direction, child.Size, i == len(n.Children)-1)
		childArea, borders := applyBorder(childArea, bt, n.Direction, i, len(n.Children))
		if child.Node.Pane != nil {
			*out = append(*out, Assignment{Pane: child.Node.Pane, Area: childArea, Borders: borders})
			continue
		}
		if err := resolve(child.Node, childArea, bt, out); err != nil {
			return err
		}
	}
	return nil
}

func takeChildArea(g *Geometry, dir Direction, size Size, isLast bool) Geometry {
	if isLast {
		return g.TakeRemainder(dir)
	}
	switch size.Kind {
	case SizeLength:
		return g.TakeChunkLength(dir, size.Length)
	case SizeRatio:
		extent := g.Width
		if dir == Vertical {
			extent = g.Height
		}
		length := uint16(size.Ratio*float64(extent) + 0.5)
		return g.TakeChunkLength(dir, length)
	default:
		return g.TakeChunk(dir, size.Percent)
	}
}

func applyBorder(area Geometry, bt BorderType, dir Direction, idx, total int) (Geometry, []Border) {
	switch bt {
	case BorderNone:
		return area, nil
	case BorderFull:
		var b []Border
		if dir == Horizontal {
			b = []Border{BorderTop, BorderBottom, BorderLeft, BorderRight}
		} else {
			b = []Border{BorderTop, BorderBottom, BorderLeft, BorderRight}
		}
		return area, b
	default: // BorderSingle
		isLast := idx == total-1
		if dir == Horizontal {
			if !isLast {
				return area, []Border{BorderRight}
			}
			return area, nil
		}
		if !isLast {
			return area, []Border{BorderBottom}
		}
		return area, nil
	}
}

// Validate enforces §4.5's startup invariants: the global layout must have
// no focusable panes (everything focusable lives inside a tab), exactly
// one TabContent pane, and no pane kind shared between the global frame
// and a tab.
func Validate(global *Node, tabs []*Node) error {
	tabContentCount := 0
	globalKinds := map[PaneKind]bool{}
	var focusableErr error
	countLeaves(global, func(p *Pane) {
		globalKinds[p.Kind] = true
		if p.Kind == PaneTabContent {
			tabContentCount++
		}
		if focusableErr == nil && isFocusable(p.Kind) {
			focusableErr = fmt.Errorf("layout: global layout must not contain focusable pane kind %v", p.Kind)
		}
	})
	if focusableErr != nil {
		return focusableErr
	}
	if tabContentCount != 1 {
		return fmt.Errorf("layout: global layout must contain exactly one TabContent pane, found %d", tabContentCount)
	}

	for _, tab := range tabs {
		var dup error
		countLeaves(tab, func(p *Pane) {
			if globalKinds[p.Kind] && p.Kind != PaneTabContent {
				dup = fmt.Errorf("layout: pane kind %v present in both global layout and a tab", p.Kind)
			}
		})
		if dup != nil {
			return dup
		}
	}
	return nil
}

func isFocusable(k PaneKind) bool {
	switch k {
	case PaneHeader, PaneTabs, PaneProgressBar, PaneLogs, PaneFrameCount, PaneTabContent:
		return false
	default:
		return true
	}
}

func countLeaves(n *Node, fn func(*Pane)) {
	if n == nil {
		return
	}
	if n.Pane != nil {
		fn(n.Pane)
		return
	}
	for _, c := range n.Children {
		countLeaves(c.Node, fn)
	}
}
