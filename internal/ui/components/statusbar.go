package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Mode   string
	Axis   string
	Items  int
	Culled int
	Window int
	Stats  recycler.Stats
	Source string
	// Message is a transient info or error message.
	Message string
	IsError bool
}

// RenderStatusBar renders the bottom status bar with clear visual sections
// separated by dim vertical bars.
//
// Wide (>= 80):   GRID │ 100 items │ window 12..24 │ pool 13/15 ↻42     random
// Medium (50-79): GRID │ 100 items │ window 12..24 │ pool 13/15 ↻42
// Narrow (< 50):  GRID │ 100 items │ window 12..24
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	badge := lipgloss.NewStyle().
		Foreground(t.TextInverse).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(data.Mode))
	if data.Axis != "" {
		badge += " " + lipgloss.NewStyle().Foreground(t.TextMuted).Render(data.Axis)
	}
	left := " " + badge

	left += sep + lipgloss.NewStyle().Foreground(t.Text).Render(fmt.Sprintf("%d items", data.Items))

	windowText := "window empty"
	if data.Window > 0 {
		windowText = fmt.Sprintf("window %d..%d", data.Culled, data.Culled+data.Window-1)
	}
	left += sep + lipgloss.NewStyle().Foreground(t.Secondary).Render(windowText)

	if width >= 50 {
		p := data.Stats.Pool
		poolText := fmt.Sprintf("pool %d/%d ↻%d", p.Active, p.Active+p.Free, data.Stats.Moves)
		left += sep + lipgloss.NewStyle().Foreground(t.Success).Render(poolText)
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 80 && data.Source != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(data.Source) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	// The bar style pads one cell on each side.
	gap := width - 2 - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxWidth(width).MaxHeight(1).Render(content)
}
