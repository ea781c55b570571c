package gridpath

import (
	"fmt"
	"strings"
)

// Cell is a 0-indexed (row, col) coordinate on the grid.
type Cell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// String formats the cell as (row,col).
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Reaches reports whether end can be reached from c using only right and down moves.
func (c Cell) Reaches(end Cell) bool {
	return c.Row <= end.Row && c.Col <= end.Col
}

// Path is an ordered sequence of cells where every step moves one cell right or one cell down.
type Path []Cell

// Len returns the number of cells on the path.
func (p Path) Len() int { return len(p) }

// Start returns the first cell of the path.
func (p Path) Start() Cell { return p[0] }

// End returns the last cell of the path.
func (p Path) End() Cell { return p[len(p)-1] }

// Moves returns the path as a sequence of R (right) and D (down) moves.
func (p Path) Moves() string {
	var sb strings.Builder
	for i := 1; i < len(p); i++ {
		if p[i].Col > p[i-1].Col {
			sb.WriteByte('R')
		} else {
			sb.WriteByte('D')
		}
	}
	return sb.String()
}

// IsMonotone reports whether each step advances exactly one coordinate by one.
func (p Path) IsMonotone() bool {
	for i := 1; i < len(p); i++ {
		dr, dc := p[i].Row-p[i-1].Row, p[i].Col-p[i-1].Col
		if !(dr == 0 && dc == 1) && !(dr == 1 && dc == 0) {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	cells := make([]string, len(p))
	for i, c := range p {
		cells[i] = c.String()
	}
	return strings.Join(cells, " → ")
}

// Grid holds the grid dimensions.
type Grid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// InBounds reports whether the cell lies within the grid boundaries.
func (g Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Enumerate returns the first limit monotone paths from start to end on the grid.
func (g Grid) Enumerate(start, end Cell, limit int) []Path {
	return Enumerate(start, end, g.Rows, g.Cols, limit)
}

// Validate checks the grid dimensions and that both endpoints lie inside the grid.
// An end cell which cannot be reached from start is not an error.
func (g Grid) Validate(start, end Cell) error {
	if g.Rows < 1 || g.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Rows, g.Cols)
	}
	if !g.InBounds(start) {
		return fmt.Errorf("start cell %v: %w", start, ErrCellOutOfBounds)
	}
	if !g.InBounds(end) {
		return fmt.Errorf("end cell %v: %w", end, ErrCellOutOfBounds)
	}
	return nil
}

// ValidateLimit rejects negative path limits.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLimit, limit)
	}
	return nil
}
