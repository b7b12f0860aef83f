package testkit

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"schedparse/internal/extract"
	"schedparse/ports"
)

// SheetBuilder accumulates cells for one synthetic schedule sheet.
type SheetBuilder struct {
	name   string
	cells  map[[2]int]string
	maxRow int
	maxCol int
}

// NewSheet starts a builder for a named sheet.
func NewSheet(name string) *SheetBuilder {
	return &SheetBuilder{name: name, cells: make(map[[2]int]string)}
}

// Cell sets one 1-indexed cell and returns the builder for chaining.
func (b *SheetBuilder) Cell(row, col int, value string) *SheetBuilder {
	b.cells[[2]int{row, col}] = value
	if row > b.maxRow {
		b.maxRow = row
	}
	if col > b.maxCol {
		b.maxCol = col
	}
	return b
}

// Row fills a row left to right starting at column 1. Empty strings leave
// gaps.
func (b *SheetBuilder) Row(row int, values ...string) *SheetBuilder {
	for i, v := range values {
		if v == "" {
			continue
		}
		b.Cell(row, i+1, v)
	}
	return b
}

// Build snapshots the cells into a sheet implementing ports.Sheet.
func (b *SheetBuilder) Build() ports.Sheet {
	g := extract.NewGrid(b.name, b.maxRow, b.maxCol)
	for pos, v := range b.cells {
		g.Set(pos[0], pos[1], v)
	}
	return g
}

type memoryWorkbook struct {
	sheets []ports.Sheet
}

func (w *memoryWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name()
	}
	return names
}

func (w *memoryWorkbook) Sheet(name string) (ports.Sheet, bool) {
	for _, s := range w.sheets {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Workbook wraps built sheets into a ports.Workbook.
func Workbook(sheets ...ports.Sheet) ports.Workbook {
	return &memoryWorkbook{sheets: sheets}
}

// XLSXBytes renders the builders into a real xlsx file so adapter-level
// code paths get exercised against genuine workbook bytes.
func XLSXBytes(t *testing.T, sheets ...*SheetBuilder) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sb := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sb.name); err != nil {
				t.Fatalf("add sheet: %v", err)
			}
		}
		for pos, value := range sb.cells {
			cell, err := excelize.CoordinatesToCellName(pos[1], pos[0])
			if err != nil {
				t.Fatalf("cell name for %v: %v", pos, err)
			}
			if err := f.SetCellValue(sb.name, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
