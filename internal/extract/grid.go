package extract

import "schedparse/ports"

// Grid is a dense in-memory snapshot of a sheet with merged regions
// already filled in. Coordinates are 1-indexed like the source sheet;
// out-of-range reads return "".
type Grid struct {
	name   string
	cells  [][]string
	maxRow int
	maxCol int
}

// NewGrid builds an empty grid of the given dimensions.
func NewGrid(name string, maxRow, maxCol int) *Grid {
	if maxRow < 0 {
		maxRow = 0
	}
	if maxCol < 0 {
		maxCol = 0
	}
	cells := make([][]string, maxRow)
	for i := range cells {
		cells[i] = make([]string, maxCol)
	}
	return &Grid{name: name, cells: cells, maxRow: maxRow, maxCol: maxCol}
}

func (g *Grid) Name() string { return g.name }
func (g *Grid) MaxRow() int  { return g.maxRow }
func (g *Grid) MaxCol() int  { return g.maxCol }

// Cell returns the value at 1-indexed (row, col), "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if row < 1 || row > g.maxRow || col < 1 || col > g.maxCol {
		return ""
	}
	return g.cells[row-1][col-1]
}

// Set writes a value at 1-indexed (row, col). Out-of-range writes are
// dropped.
func (g *Grid) Set(row, col int, value string) {
	if row < 1 || row > g.maxRow || col < 1 || col > g.maxCol {
		return
	}
	g.cells[row-1][col-1] = value
}

// MergedRanges satisfies ports.Sheet; a grid has none left.
func (g *Grid) MergedRanges() []ports.MergedRange { return nil }

var _ ports.Sheet = (*Grid)(nil)
