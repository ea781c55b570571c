package gridpath

import "errors"

var (
	// ErrInvalidGrid indicates a grid with no rows or no columns.
	ErrInvalidGrid = errors.New("gridpath: grid must have at least one row and one column")
	// ErrCellOutOfBounds indicates a start or end cell outside the grid.
	ErrCellOutOfBounds = errors.New("gridpath: cell out of grid bounds")
	// ErrNegativeLimit indicates a negative path limit.
	ErrNegativeLimit = errors.New("gridpath: path limit must not be negative")
	// ErrUnsupportedFormat indicates a frame file extension with no encoder.
	ErrUnsupportedFormat = errors.New("gridpath: unsupported image format")
)
