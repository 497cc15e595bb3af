package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// It shows a thumb (filled block) proportional to the visible portion,
// positioned according to the scroll position.
//
// Returns an empty string if all content fits (no scrolling needed).
//
//	Parameters:
//	  styles    – application styles (for theming)
//	  height    – total height of the scrollbar track (rows)
//	  total     – virtual content extent, culled content included
//	  visible   – extent visible at once
//	  position  – start-relative scroll position as 0.0–1.0
func RenderScrollbar(styles ui.Styles, height, total, visible int, position float64) string {
	return renderTrack(styles, height, total, visible, 0, position, "█", "░", "\n")
}

// RenderHScrollbar is RenderScrollbar laid out as a single row.
func RenderHScrollbar(styles ui.Styles, width, total, visible int, position float64) string {
	return renderTrack(styles, width, total, visible, 0, position, "▀", "─", "")
}

// RenderSpacerScrollbar is RenderScrollbar with the first culled units of
// the track drawn in the spacer colour.
func RenderSpacerScrollbar(styles ui.Styles, axis window.Axis, length, total, visible, culled int, position float64) string {
	if axis == window.Horizontal {
		return renderTrack(styles, length, total, visible, culled, position, "▀", "─", "")
	}
	return renderTrack(styles, length, total, visible, culled, position, "█", "░", "\n")
}

func renderTrack(styles ui.Styles, length, total, visible, culled int, position float64, thumb, track, sep string) string {
	if total <= visible || length < 1 {
		return ""
	}
	start, size := thumbSpan(length, total, visible, position)
	marked := length * culled / total

	t := styles.Theme
	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)
	spacerStyle := lipgloss.NewStyle().Foreground(t.Spacer)

	var b strings.Builder
	b.Grow(length * 4)
	for i := 0; i < length; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		switch {
		case i >= start && i < start+size:
			b.WriteString(thumbStyle.Render(thumb))
		case i < marked:
			b.WriteString(spacerStyle.Render(track))
		default:
			b.WriteString(trackStyle.Render(track))
		}
	}
	return b.String()
}

// thumbSpan returns the thumb's first cell and size on a track of length
// cells. The thumb is at least one cell.
func thumbSpan(length, total, visible int, position float64) (start, size int) {
	size = int(float64(length) * float64(visible) / float64(total))
	size = min(max(size, 1), length)

	maxOffset := length - size
	start = int(position * float64(maxOffset))
	start = min(max(start, 0), maxOffset)
	return start, size
}
