package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arise/internal/ui/theme"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Hint is a follow-up command suggestion shown under command output.
type Hint struct {
	Command     string
	Description string
}

// RenderHeader renders the application header bar: product name on the
// left, title in the center and the user's total XP on the right.
func RenderHeader(title string, totalXP int, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Arise")

	center := theme.Body.Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d XP", totalXP))

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := max(0, width-4) // account for border padding

	leftGap := max(1, (innerWidth-centerLen)/2-leftLen)
	rightGap := max(1, innerWidth-leftLen-leftGap-centerLen-rightLen)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHints renders follow-up command suggestions on one line.
func RenderHints(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Command)+
				" "+theme.Subtitle.Render(h.Description))
	}
	return "  " + strings.Join(parts, "   ")
}
