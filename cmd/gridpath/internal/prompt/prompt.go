package prompt

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/esimov/gridpath"
)

// Grid size range offered by the interactive form.
const (
	minGridSize = 2
	maxGridSize = 10
)

// gridForm holds the raw form values.
type gridForm struct {
	rows, cols         string
	startRow, startCol string
	endRow, endCol     string
	limit              string
}

// Run prompts for the grid size, the endpoints and the path limit,
// and stores the answers in proc.
func Run(proc *gridpath.Processor) error {
	v := &gridForm{
		rows:     strconv.Itoa(proc.Rows),
		cols:     strconv.Itoa(proc.Cols),
		startRow: strconv.Itoa(proc.Start.Row),
		startCol: strconv.Itoa(proc.Start.Col),
		endRow:   strconv.Itoa(proc.End.Row),
		endCol:   strconv.Itoa(proc.End.Col),
		limit:    strconv.Itoa(proc.Limit),
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Grid rows").Value(&v.rows).
				Validate(intInRange(minGridSize, maxGridSize)),
			huh.NewInput().Title("Grid columns").Value(&v.cols).
				Validate(intInRange(minGridSize, maxGridSize)),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start row").Value(&v.startRow).Validate(v.withinRows),
			huh.NewInput().Title("Start column").Value(&v.startCol).Validate(v.withinCols),
			huh.NewInput().Title("End row").Value(&v.endRow).Validate(v.withinRows),
			huh.NewInput().Title("End column").Value(&v.endCol).Validate(v.withinCols),
			huh.NewInput().Title("Maximum number of paths").Value(&v.limit).
				Validate(intInRange(0, 1<<20)),
		),
	).Run()
	if err != nil {
		return err
	}

	return v.apply(proc)
}

// withinRows validates a row index against the rows answer.
func (v *gridForm) withinRows(s string) error {
	n, err := strconv.Atoi(v.rows)
	if err != nil {
		return err
	}
	return intInRange(0, n-1)(s)
}

// withinCols validates a column index against the columns answer.
func (v *gridForm) withinCols(s string) error {
	n, err := strconv.Atoi(v.cols)
	if err != nil {
		return err
	}
	return intInRange(0, n-1)(s)
}

// apply copies the validated answers into the processor.
func (v *gridForm) apply(proc *gridpath.Processor) error {
	fields := []struct {
		s   string
		dst *int
	}{
		{v.rows, &proc.Rows},
		{v.cols, &proc.Cols},
		{v.startRow, &proc.Start.Row},
		{v.startCol, &proc.Start.Col},
		{v.endRow, &proc.End.Row},
		{v.endCol, &proc.End.Col},
		{v.limit, &proc.Limit},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(f.s)
		if err != nil {
			return err
		}
		*f.dst = n
	}
	return nil
}

// intInRange returns a validator accepting integers in the [lo, hi] interval.
func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
