// Package window computes which contiguous slice of a long sequence is
// visible in a fixed-size viewport. Everything here is pure arithmetic over
// a geometry snapshot; no state is kept between calls.
package window

import "math"

// Axis is the single scroll axis of a list.
type Axis int

const (
	// Vertical hosts report a raw scroll fraction of 1 at the top edge.
	Vertical Axis = iota
	// Horizontal hosts report a raw scroll fraction of 0 at the left edge.
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	default:
		return "vertical"
	}
}

// Geometry is a read-only snapshot of the sizes that drive the window.
// Extents are measured along the scroll axis in host units.
type Geometry struct {
	ViewportExtent float64
	// ElementExtent is the element size plus the inter-element spacing.
	ElementExtent float64
	Spacing       float64
	PaddingStart  float64
	PaddingEnd    float64
	// ConstraintCount is the number of elements per line; 1 for linear lists.
	ConstraintCount int
}

// Columns returns the constraint count, treating values below 1 as 1.
func (g Geometry) Columns() int {
	if g.ConstraintCount < 1 {
		return 1
	}
	return g.ConstraintCount
}

// Window is the result of Calculate.
type Window struct {
	// CulledAbove is the index of the first record backed by an element.
	CulledAbove int
	// Size is the number of elements the window needs.
	Size int
	// VisibleCapacity is the number of elements that fit in the viewport.
	VisibleCapacity int
	// MaxCulled is the largest CulledAbove that keeps the window full.
	MaxCulled int
}

// Calculate maps (n, geometry, normalized position) to the visible window.
// p is expected in [0,1] and is clamped.
func Calculate(n int, g Geometry, p float64) Window {
	if n <= 0 {
		return Window{}
	}
	k := g.Columns()
	p = clamp01(p)

	capacity := VisibleCapacity(g)
	maxCulled := max(n-(capacity+k), 0)

	culled := int(math.Floor(p * float64(n-capacity)))
	culled = min(max(culled, 0), maxCulled)

	// Lines start on a line boundary; the final line is exempt so the window
	// can end exactly at n.
	if k > 1 && culled != maxCulled {
		culled -= culled % k
	}

	return Window{
		CulledAbove:     culled,
		Size:            min(capacity+k, n),
		VisibleCapacity: capacity,
		MaxCulled:       maxCulled,
	}
}

// VisibleCapacity returns how many elements fit in the viewport, rounded up
// to whole lines. Degenerate geometry yields 0.
func VisibleCapacity(g Geometry) int {
	if g.ElementExtent <= 0 || g.ViewportExtent <= 0 {
		return 0
	}
	lines := int(math.Ceil(g.ViewportExtent / g.ElementExtent))
	return lines * g.Columns()
}

// Lines returns the number of lines n elements occupy at k per line.
func Lines(n, k int) int {
	if n <= 0 {
		return 0
	}
	if k < 1 {
		k = 1
	}
	return (n + k - 1) / k
}

// ContentExtent is the full virtual extent of n elements, including padding.
// It is the size hint hosts need so scrollbars reflect culled content.
func ContentExtent(n int, g Geometry) float64 {
	extent := g.PaddingStart + g.PaddingEnd
	if lines := Lines(n, g.Columns()); lines > 0 {
		extent += float64(lines)*g.ElementExtent - g.Spacing
	}
	return extent
}

// SpacerExtent is the extent a single leading placeholder needs to stand in
// for culled elements. A non-positive result means no placeholder is needed.
func SpacerExtent(culled int, g Geometry) float64 {
	return float64(culled)*g.ElementExtent - g.Spacing
}

// NormalizePosition converts a host's raw scroll fraction into the
// start-relative position used by Calculate.
func NormalizePosition(axis Axis, raw float64) float64 {
	if axis == Vertical {
		raw = 1 - raw
	}
	return clamp01(raw)
}

// StartFraction is the raw fraction a host reports at the start edge.
func StartFraction(axis Axis) float64 {
	if axis == Vertical {
		return 1
	}
	return 0
}

// Offset returns the position of element index along the scroll axis,
// relative to the start of the content.
func Offset(index int, g Geometry) float64 {
	return g.PaddingStart + float64(index/g.Columns())*g.ElementExtent
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
