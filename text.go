package gridpath

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell symbols used by RenderText.
const (
	StartSymbol = "S"
	EndSymbol   = "E"
	PathSymbol  = "•"
	EmptySymbol = "·"
)

var (
	startStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	endStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderText renders the grid as text, one line per row, with the path cells,
// the start and the end cell marked. Colors are applied only when the output
// supports them.
func RenderText(g Grid, start, end Cell, p Path) string {
	onPath := make(map[Cell]bool, len(p))
	for _, c := range p {
		onPath[c] = true
	}

	rows := make([]string, g.Rows)
	cells := make([]string, g.Cols)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			c := Cell{Row: i, Col: j}
			switch {
			case c == start:
				cells[j] = startStyle.Render(StartSymbol)
			case c == end:
				cells[j] = endStyle.Render(EndSymbol)
			case onPath[c]:
				cells[j] = pathStyle.Render(PathSymbol)
			default:
				cells[j] = emptyStyle.Render(EmptySymbol)
			}
		}
		rows[i] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}
