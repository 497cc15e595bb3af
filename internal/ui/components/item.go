package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// ItemView is the pooled element that displays one data.Item as a coloured
// block with its number.
type ItemView struct {
	styles ui.Styles
	extent int

	item   *data.Item
	active bool
	// binds counts SetData calls since the view was last reset.
	binds int
}

// Compile-time checks.
var (
	_ recycler.Element[*data.Item] = (*ItemView)(nil)
	_ recycler.Activator           = (*ItemView)(nil)
	_ recycler.Resetter            = (*ItemView)(nil)
	_ Renderer                     = (*ItemView)(nil)
)

// NewItemView creates a view extent cells long along the scroll axis.
func NewItemView(styles ui.Styles, extent int) *ItemView {
	return &ItemView{styles: styles, extent: max(extent, 1)}
}

func (v *ItemView) Extent() float64 { return float64(v.extent) }

func (v *ItemView) Data() *data.Item { return v.item }

func (v *ItemView) SetData(it *data.Item) {
	v.item = it
	v.binds++
}

func (v *ItemView) SetActive(active bool) { v.active = active }

// Active reports whether the view is checked out of the pool.
func (v *ItemView) Active() bool { return v.active }

// Binds returns how often the view was rebound since it left the pool.
func (v *ItemView) Binds() int { return v.binds }

// Reset clears the binding before the view returns to the pool.
func (v *ItemView) Reset() {
	v.item = nil
	v.binds = 0
}

// Render draws the item centred in a w×h block.
func (v *ItemView) Render(w, h int) string {
	style := lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h)
	if v.item == nil || !v.active {
		return style.Render("")
	}

	t := v.styles.Theme
	label := fmt.Sprintf("#%d", v.item.Number)
	if h >= 3 && w >= 12 {
		label += "\n" + v.item.Color
	}
	return style.
		Background(lipgloss.Color(v.item.Color)).
		Foreground(t.TextInverse).
		Bold(true).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}
