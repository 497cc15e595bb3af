package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// Renderer is implemented by content children that draw themselves into a
// w×h cell block.
type Renderer interface {
	Render(w, h int) string
}

// ScrollView is a terminal scroll host. It is the Viewport and the Content
// of a recycler.List: the list attaches, moves and detaches children, and
// ScrollView lays them out along its axis and draws the visible part.
//
// Offsets are whole cells measured from the start edge. Like most native
// scroll hosts, a vertical ScrollView reports a raw fraction of 1 at the
// top.
type ScrollView struct {
	*recycler.DisplayList

	styles ui.Styles
	axis   window.Axis
	layout recycler.LayoutMetadata

	width  int
	height int
	offset int

	// ShowSpacers marks the extent held by spacer nodes on the scrollbar.
	ShowSpacers bool

	listeners map[int]func()
	nextID    int
}

// Compile-time checks.
var (
	_ recycler.Viewport = (*ScrollView)(nil)
	_ recycler.Content  = (*ScrollView)(nil)
)

// NewScrollView creates an empty scroll host. layout must match the layout
// metadata given to the list.
func NewScrollView(styles ui.Styles, axis window.Axis, layout recycler.LayoutMetadata) *ScrollView {
	if layout.ConstraintCount < 1 {
		layout.ConstraintCount = 1
	}
	return &ScrollView{
		DisplayList: recycler.NewDisplayList(),
		styles:      styles,
		axis:        axis,
		layout:      layout,
		listeners:   make(map[int]func()),
	}
}

// SetSize sets the outer size, scrollbar included. The caller refreshes the
// list afterwards.
func (s *ScrollView) SetSize(w, h int) {
	s.width = max(w, 0)
	s.height = max(h, 0)
	s.clamp()
}

func (s *ScrollView) Axis() window.Axis { return s.axis }

// Extent is the visible length along the scroll axis.
func (s *ScrollView) Extent() float64 { return float64(s.length()) }

// SetExtent records the virtual content size and keeps the offset in range.
// It never notifies: the list calls it in the middle of a recompute.
func (s *ScrollView) SetExtent(extent float64) {
	s.DisplayList.SetExtent(extent)
	s.clamp()
}

// ScrollFraction returns the raw scroll position.
func (s *ScrollView) ScrollFraction() float64 {
	r := s.scrollRange()
	if r == 0 {
		return window.StartFraction(s.axis)
	}
	p := float64(s.offset) / float64(r)
	if s.axis == window.Vertical {
		return 1 - p
	}
	return p
}

// SetScrollFraction moves to a raw scroll position and notifies listeners
// when the offset changed.
func (s *ScrollView) SetScrollFraction(f float64) {
	p := window.NormalizePosition(s.axis, f)
	s.scrollTo(int(math.Round(p * float64(s.scrollRange()))))
}

// OnScroll registers fn for scroll notifications.
func (s *ScrollView) OnScroll(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// ScrollBy moves delta cells toward the end (negative toward the start).
func (s *ScrollView) ScrollBy(delta int) { s.scrollTo(s.offset + delta) }

// ScrollToStart moves to the start edge.
func (s *ScrollView) ScrollToStart() { s.scrollTo(0) }

// ScrollToEnd moves to the end edge.
func (s *ScrollView) ScrollToEnd() { s.scrollTo(s.scrollRange()) }

// Offset returns the scroll offset in cells from the start edge.
func (s *ScrollView) Offset() int { return s.offset }

// Position returns the start-relative scroll position in [0,1].
func (s *ScrollView) Position() float64 {
	return window.NormalizePosition(s.axis, s.ScrollFraction())
}

func (s *ScrollView) scrollTo(offset int) {
	offset = min(max(offset, 0), s.scrollRange())
	if offset == s.offset {
		return
	}
	s.offset = offset
	for _, fn := range s.listeners {
		fn()
	}
}

func (s *ScrollView) clamp() {
	s.offset = min(max(s.offset, 0), s.scrollRange())
}

func (s *ScrollView) contentExtent() int {
	return int(math.Round(s.DisplayList.Extent()))
}

func (s *ScrollView) scrollRange() int {
	return max(s.contentExtent()-s.length(), 0)
}

// length is the visible size along the axis; cross is the size across it.
// One column (or row) is reserved for the scrollbar.
func (s *ScrollView) length() int {
	if s.axis == window.Horizontal {
		return s.width
	}
	return s.height
}

func (s *ScrollView) cross() int {
	if s.axis == window.Horizontal {
		return max(s.height-1, 0)
	}
	return max(s.width-1, 0)
}

// band is one laid-out line of content: a single node in linear layouts or
// up to ConstraintCount cells in a grid.
type band struct {
	start  int
	extent int
	cells  []recycler.Node
}

// bands lays out the children in display order. Ignored spacers take no
// space, including the spacing that would follow them.
func (s *ScrollView) bands() []band {
	spacing := int(math.Round(s.layout.Spacing))
	cursor := int(math.Round(s.layout.PaddingStart))
	k := s.layout.ConstraintCount

	var cells []recycler.Node
	for _, n := range s.Nodes() {
		if sp, ok := n.(*recycler.Spacer); ok && sp.Ignored() {
			continue
		}
		cells = append(cells, n)
	}

	var out []band
	for i := 0; i < len(cells); {
		line := cells[i:min(i+k, len(cells))]
		ext := 0
		for _, c := range line {
			ext = max(ext, int(math.Round(c.Extent())))
		}
		out = append(out, band{start: cursor, extent: ext, cells: line})
		cursor += ext + spacing
		i += len(line)
	}
	return out
}

// SpacerExtent returns the laid-out extent from the start edge to the end
// of the last band made only of spacers.
func (s *ScrollView) SpacerExtent() int {
	end := 0
	for _, b := range s.bands() {
		for _, c := range b.cells {
			if _, ok := c.(*recycler.Spacer); !ok {
				return end
			}
		}
		end = b.start + b.extent
	}
	return end
}

// View renders the visible part of the content plus a scrollbar.
func (s *ScrollView) View() string {
	length, cross := s.length(), s.cross()
	if length <= 0 || cross <= 0 {
		return ""
	}

	var visible []band
	for _, b := range s.bands() {
		if b.start+b.extent > s.offset && b.start < s.offset+length {
			visible = append(visible, b)
		}
	}

	culled := 0
	if s.ShowSpacers {
		culled = s.SpacerExtent()
	}
	bar := RenderSpacerScrollbar(s.styles, s.axis, length, s.contentExtent(), length, culled, s.Position())

	if s.axis == window.Horizontal {
		body := s.renderHorizontal(visible, length, cross)
		if bar == "" {
			return body
		}
		return body + "\n" + bar
	}
	body := s.renderVertical(visible, length, cross)
	if bar == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

func (s *ScrollView) renderVertical(visible []band, length, cross int) string {
	blank := strings.Repeat(" ", cross)
	rows := make([]string, length)
	for i := range rows {
		rows[i] = blank
	}
	for _, b := range visible {
		lines := strings.Split(s.renderBand(b, cross), "\n")
		for i := 0; i < b.extent && i < len(lines); i++ {
			if r := b.start + i - s.offset; r >= 0 && r < length {
				rows[r] = lines[i]
			}
		}
	}
	return strings.Join(rows, "\n")
}

func (s *ScrollView) renderHorizontal(visible []band, length, cross int) string {
	blocks := make([][]string, len(visible))
	for i, b := range visible {
		blocks[i] = strings.Split(s.renderBand(b, cross), "\n")
	}

	rows := make([]string, cross)
	var row strings.Builder
	for y := range rows {
		row.Reset()
		x := s.offset
		for i, b := range visible {
			from := max(s.offset, b.start)
			if from > x {
				row.WriteString(strings.Repeat(" ", from-x))
			}
			to := min(s.offset+length, b.start+b.extent)
			line := ""
			if y < len(blocks[i]) {
				line = blocks[i][y]
			}
			cut := ansi.Cut(line, from-b.start, to-b.start)
			row.WriteString(cut)
			if w := ansi.StringWidth(cut); w < to-from {
				row.WriteString(strings.Repeat(" ", to-from-w))
			}
			x = to
		}
		if end := s.offset + length; x < end {
			row.WriteString(strings.Repeat(" ", end-x))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// renderBand draws one band at full size: extent along the axis, cross
// across it, cells separated by the layout spacing.
func (s *ScrollView) renderBand(b band, cross int) string {
	k := s.layout.ConstraintCount
	gap := int(math.Round(s.layout.Spacing))
	if k == 1 {
		gap = 0
	}
	cell := max((cross-gap*(k-1))/k, 1)

	parts := make([]string, 0, 2*len(b.cells))
	for i, n := range b.cells {
		if i > 0 && gap > 0 {
			parts = append(parts, s.block(nil, gap, b.extent))
		}
		parts = append(parts, s.block(n, cell, b.extent))
	}
	if s.axis == window.Horizontal {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// block renders node n with the given cross and along-axis size.
func (s *ScrollView) block(n recycler.Node, cross, along int) string {
	w, h := cross, along
	if s.axis == window.Horizontal {
		w, h = along, cross
	}
	style := lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h)

	if r, ok := n.(Renderer); ok {
		return r.Render(w, h)
	}
	return style.Render("")
}
