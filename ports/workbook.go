package ports

// MergedRange is one merged cell region, 1-indexed and inclusive on both
// ends, matching spreadsheet conventions.
type MergedRange struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Area returns the number of cells covered by the range, 0 for a
// malformed (inverted) range.
func (r MergedRange) Area() int {
	rows := r.MaxRow - r.MinRow + 1
	cols := r.MaxCol - r.MinCol + 1
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return rows * cols
}

// Contains reports whether the 1-indexed cell lies inside the range.
func (r MergedRange) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// Sheet is the narrow capability surface the extraction core needs from a
// concrete spreadsheet library. Rows and columns are 1-indexed. Cell
// returns "" for empty or out-of-range cells; formula cells return their
// formula text verbatim.
type Sheet interface {
	Name() string
	Cell(row, col int) string
	MaxRow() int
	MaxCol() int
	MergedRanges() []MergedRange
}

// Workbook enumerates sheets of one already-loaded, in-memory workbook.
// Implementations are assumed validated: corruption and encryption are the
// loader's problem, not the core's.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Sheet, bool)
}
