package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arise/internal/ui/theme"
)

// ContentWidth clamps a terminal width to the inner width used for cards.
func ContentWidth(termWidth int) int {
	// Leave room for card border (2) + inner padding (4)
	w := termWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Card wraps content in a titled rounded-border card at the given width.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n\n" + content
	}
	return theme.Card.Width(cw + 6).Render(body)
}

// Badge renders a short bold label in the given color.
func Badge(label string, fg color.Color) string {
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render(label)
}
