package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// RenderSideBySide places right next to left, separated by a dim rule.
// left is padded to leftW columns; right lines are truncated to the
// remaining width.
func RenderSideBySide(styles ui.Styles, left, right string, leftW, totalW int) string {
	rightW := totalW - leftW - 3 // 3 for separator
	if rightW < 8 {
		return left
	}

	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	// Pad to same length.
	for len(leftLines) < len(rightLines) {
		leftLines = append(leftLines, "")
	}
	for len(rightLines) < len(leftLines) {
		rightLines = append(rightLines, "")
	}

	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" │ ")

	var b strings.Builder
	for i := range leftLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ui.PadRight(leftLines[i], leftW) + sep + truncateTo(rightLines[i], rightW))
	}
	return b.String()
}

// truncateTo cuts s to maxW columns, keeping ANSI styling intact.
func truncateTo(s string, maxW int) string {
	return ansi.Truncate(s, maxW, "…")
}
