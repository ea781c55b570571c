package gridpath

import "math/big"

// walker holds the state of a single enumeration.
type walker struct {
	rows, cols int
	end        Cell
	limit      int
	buf        Path
	paths      []Path
}

// Enumerate returns the monotone paths from start to end on a rows×cols grid,
// in the order a depth-first search finds them when it tries the right
// neighbor before the down neighbor. The search stops as soon as limit
// paths have been collected, so the result holds at most limit paths.
//
// If end cannot be reached from start with right and down moves only,
// or limit is not positive, the result is empty. Inputs are otherwise
// assumed to be valid; see Grid.Validate.
func Enumerate(start, end Cell, rows, cols, limit int) []Path {
	if limit <= 0 || !start.Reaches(end) {
		return nil
	}
	w := &walker{
		rows:  rows,
		cols:  cols,
		end:   end,
		limit: limit,
		buf:   make(Path, 0, (end.Row-start.Row)+(end.Col-start.Col)+1),
	}
	w.backtrack(start.Row, start.Col)

	return w.paths
}

// backtrack extends the current path with (i, j) and explores its neighbors.
func (w *walker) backtrack(i, j int) {
	if len(w.paths) >= w.limit {
		return
	}
	// Monotone moves never come back, so overshooting end on either axis is a dead branch.
	if i < 0 || j < 0 || i >= w.rows || j >= w.cols || i > w.end.Row || j > w.end.Col {
		return
	}
	w.buf = append(w.buf, Cell{Row: i, Col: j})

	if i == w.end.Row && j == w.end.Col {
		path := make(Path, len(w.buf))
		copy(path, w.buf)
		w.paths = append(w.paths, path)
	} else {
		w.backtrack(i, j+1)
		w.backtrack(i+1, j)
	}
	w.buf = w.buf[:len(w.buf)-1]
}

// CountPaths returns the total number of monotone paths from start to end,
// regardless of any limit. It is zero when end is unreachable.
func CountPaths(start, end Cell) *big.Int {
	if !start.Reaches(end) {
		return big.NewInt(0)
	}
	dr, dc := end.Row-start.Row, end.Col-start.Col

	return new(big.Int).Binomial(int64(dr+dc), int64(dr))
}
