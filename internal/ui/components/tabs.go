package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// TabBarRows is the height of the tab bar: one label row and one underline.
const TabBarRows = 2

// TabInfo describes a single tab for rendering.
type TabInfo struct {
	Name   string
	Icon   string
	Detail string // shown after the name when there is room, e.g. "4 cols"
	Active bool
}

// TabZone is the column span [Start, End) a tab occupies on the label row.
type TabZone struct {
	Index int
	Start int
	End   int
}

// tabLabel returns the label for tab, dropping the detail and then the
// name when the bar gets too narrow.
func tabLabel(tab TabInfo, level int) string {
	switch level {
	case 0:
		if tab.Detail != "" {
			return tab.Icon + " " + tab.Name + " · " + tab.Detail
		}
		return tab.Icon + " " + tab.Name
	case 1:
		return tab.Icon + " " + tab.Name
	default:
		return tab.Icon
	}
}

// RenderTabs renders a one-row tab bar with an accent underline beneath the
// active tab and returns the hit zones of the rendered labels.
func RenderTabs(styles ui.Styles, tabs []TabInfo, width int) (string, []TabZone) {
	t := styles.Theme

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	level := 0
	for ; level < 2; level++ {
		w := 1
		for _, tab := range tabs {
			w += lipgloss.Width(tabLabel(tab, level)) + 2
		}
		if w <= width {
			break
		}
	}

	var row strings.Builder
	row.WriteByte(' ') // left padding
	col := 1
	zones := make([]TabZone, 0, len(tabs))
	activeStart, activeEnd := -1, -1

	for i, tab := range tabs {
		label := tabLabel(tab, level)
		var styled string
		if tab.Active {
			styled = " " + activeStyle.Render(label) + " "
		} else {
			styled = " " + inactiveStyle.Render(label) + " "
		}
		w := lipgloss.Width(styled)
		if tab.Active {
			activeStart, activeEnd = col, col+w
		}
		zones = append(zones, TabZone{Index: i, Start: col, End: col + w})
		row.WriteString(styled)
		col += w
	}

	labels := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(t.Bg).
		Render(row.String())

	borderStyle := lipgloss.NewStyle().Foreground(t.Border)
	accentStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	underline := buildUnderline(width, activeStart, activeEnd, borderStyle, accentStyle, "─", "━")

	// Overlay a right-side hint.
	hint := lipgloss.NewStyle().Foreground(t.TextSubtle).Faint(true).Render("tab  ?help")
	if hintW := lipgloss.Width(hint); hintW+4 < width && activeEnd < width-hintW-1 {
		hintStart := width - hintW - 1
		underline = buildUnderline(hintStart, activeStart, activeEnd, borderStyle, accentStyle, "─", "━") + " " + hint
	}

	return lipgloss.JoinVertical(lipgloss.Left, labels, lipgloss.NewStyle().Width(width).Render(underline)), zones
}

// TabAt returns the index of the tab under column x, or -1.
func TabAt(zones []TabZone, x int) int {
	for _, z := range zones {
		if x >= z.Start && x < z.End {
			return z.Index
		}
	}
	return -1
}

// buildUnderline builds a width-wide underline string with a bold accent
// segment between activeStart..activeEnd and thin segments elsewhere.
func buildUnderline(width, activeStart, activeEnd int, borderSt, accentSt lipgloss.Style, thin, bold string) string {
	if activeStart < 0 || activeEnd < 0 {
		return borderSt.Render(strings.Repeat(thin, width))
	}
	activeEnd = min(activeEnd, width)
	activeStart = min(activeStart, width)

	var b strings.Builder
	b.Grow(width * 4)
	if activeStart > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, activeStart)))
	}
	if seg := activeEnd - activeStart; seg > 0 {
		b.WriteString(accentSt.Render(strings.Repeat(bold, seg)))
	}
	if rem := width - activeEnd; rem > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, rem)))
	}
	return b.String()
}
