package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table renders rows of pre-styled cells in aligned columns.
type table struct {
	headers []string
	rows    [][]string
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) view(styles Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	cell := lipgloss.NewStyle().Padding(0, 1)
	sep := styles.Muted.Render("|")

	for i, h := range t.headers {
		sb.WriteString(cell.Width(widths[i] + 2).Render(styles.Bold.Render(h)))
		if i < len(t.headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	for i, w := range widths {
		sb.WriteString(styles.Muted.Render(strings.Repeat("-", w+2)))
		if i < len(widths)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i := range t.headers {
			var text string
			if i < len(row) {
				text = row[i]
			}
			sb.WriteString(cell.Width(widths[i] + 2).Render(text))
			if i < len(t.headers)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
