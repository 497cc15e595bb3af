// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// RenderKeyValue renders a "key: value" pair with styles.
func RenderKeyValue(styles Styles, key, value string) string {
	return styles.KeyDesc.Render(key) + " " + styles.StatValue.Render(value)
}

// RenderHints renders a one-line key hint bar from key/description pairs.
func RenderHints(styles Styles, width int, pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.KeyBind.Render(pairs[i])+" "+styles.KeyDesc.Render(pairs[i+1]))
	}
	return styles.HelpBar.MaxWidth(width).Render(JoinHorizontal("  ", parts...))
}

// JoinHorizontal joins items horizontally with a separator.
func JoinHorizontal(sep string, items ...string) string {
	var filtered []string
	for _, item := range items {
		if item != "" {
			filtered = append(filtered, item)
		}
	}
	return strings.Join(filtered, sep)
}
