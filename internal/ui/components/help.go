package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// helpOrder fixes the section order; map iteration is random.
var helpOrder = []string{"Scrolling", "Tabs", "Linear", "Grid", "General"}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections map[string][]HelpEntry, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(width - 4).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range helpOrder {
		entries, ok := sections[section]
		if !ok || len(entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section) + "\n")
		for _, e := range entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(body.String())

	return ui.PlaceCentre(width, height, overlay)
}

// GlobalHelpEntries returns the help entries for global keybindings.
func GlobalHelpEntries() map[string][]HelpEntry {
	return map[string][]HelpEntry{
		"Scrolling": {
			{Key: "j / ↓ / →", Desc: "Scroll toward the end"},
			{Key: "k / ↑ / ←", Desc: "Scroll toward the start"},
			{Key: "pgdn / pgup", Desc: "Scroll one page"},
			{Key: "g / G", Desc: "Jump to start / end"},
			{Key: "wheel", Desc: "Scroll three cells"},
		},
		"Tabs": {
			{Key: "tab", Desc: "Next layout"},
			{Key: "shift+tab", Desc: "Previous layout"},
			{Key: "click", Desc: "Switch layout"},
		},
		"General": {
			{Key: "r", Desc: "Reload items"},
			{Key: "?", Desc: "Toggle this help"},
			{Key: "q / ctrl+c", Desc: "Quit"},
		},
	}
}
