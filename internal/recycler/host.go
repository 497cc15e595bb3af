package recycler

import "github.com/Akashdeep-Patra/pooled-list/internal/window"

// Node is a child of the scrollable content: an element or a spacer.
type Node interface {
	// Extent is the node's size along the scroll axis.
	Extent() float64
}

// Element is a reusable view instance that displays one record.
type Element[T comparable] interface {
	Node
	Data() T
	SetData(v T)
}

// Activator is implemented by elements that track visibility. Pooled
// elements are deactivated on release and activated on reuse.
type Activator interface {
	SetActive(active bool)
}

// Resetter is implemented by elements that carry transient state, such as
// a local offset, which must be cleared before reuse.
type Resetter interface {
	Reset()
}

// Destroyer is implemented by elements that hold resources beyond memory.
type Destroyer interface {
	Destroy()
}

// Content is the host's ordered list of content children. Display order is
// the order of this list.
type Content interface {
	// Attach inserts n at index, clamped to the current length.
	Attach(n Node, index int)
	// Detach removes n. Detaching a node that is not attached is a no-op.
	Detach(n Node)
	// Move removes n and reinserts it at index, clamped to the new length.
	Move(n Node, index int)
	// IndexOf returns the display index of n, or -1.
	IndexOf(n Node) int
	// SetExtent is the hint for the full virtual content size.
	SetExtent(extent float64)
}

// Viewport is the host's scrollable viewport.
type Viewport interface {
	Axis() window.Axis
	// Extent is the visible size along the scroll axis.
	Extent() float64
	// ScrollFraction is the raw scroll position in [0,1] in the host's own
	// convention (see window.NormalizePosition).
	ScrollFraction() float64
	SetScrollFraction(f float64)
	// OnScroll registers fn to run synchronously whenever the scroll
	// position changes. The returned func deregisters it.
	OnScroll(fn func()) (cancel func())
}

// ExtentSource reports a viewport extent. It lets a list size its window
// against a viewport other than the one it scrolls in.
type ExtentSource interface {
	Extent() float64
}

// LayoutMetadata describes how the host lays out content children.
type LayoutMetadata struct {
	Spacing      float64
	PaddingStart float64
	PaddingEnd   float64
	// ConstraintCount is the number of cells per line in grid mode.
	ConstraintCount int
}

// Mode selects the layout strategy.
type Mode int

const (
	// Linear lays elements out one per line.
	Linear Mode = iota
	// Grid lays elements out ConstraintCount per line.
	Grid
)

func (m Mode) String() string {
	if m == Grid {
		return "grid"
	}
	return "linear"
}
