package components

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/arise/internal/ui/theme"
)

// Table renders rows under headers with rounded borders. Columns listed in
// numeric are right-aligned.
func Table(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := theme.Body.Padding(0, 1)
			if row == table.HeaderRow {
				s = theme.Title.Padding(0, 1)
			}
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.Render()
}
