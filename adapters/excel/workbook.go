package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"schedparse/ports"
)

// Workbook adapts an opened excelize file to the ports.Workbook shape the
// extraction core consumes. Sheets are materialized on first access so the
// core sees plain string cells with stable bounds.
type Workbook struct {
	file   *excelize.File
	sheets map[string]*Sheet
}

// NewWorkbook wraps an excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{file: f, sheets: make(map[string]*Sheet)}
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet materializes one sheet by name.
func (w *Workbook) Sheet(name string) (ports.Sheet, bool) {
	if s, ok := w.sheets[name]; ok {
		return s, true
	}
	found := false
	for _, candidate := range w.file.GetSheetList() {
		if candidate == name {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	s, err := materializeSheet(w.file, name)
	if err != nil {
		return nil, false
	}
	w.sheets[name] = s
	return s, true
}

// Sheet is a dense snapshot of one worksheet.
type Sheet struct {
	name   string
	rows   [][]string
	maxCol int
	merged []ports.MergedRange
}

func materializeSheet(f *excelize.File, name string) (*Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	s := &Sheet{name: name, rows: rows, maxCol: maxCol}

	cells, err := f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("read merged cells of %q: %w", name, err)
	}
	for _, mc := range cells {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		s.merged = append(s.merged, ports.MergedRange{
			MinRow: startRow, MinCol: startCol,
			MaxRow: endRow, MaxCol: endCol,
		})
		if endRow > len(s.rows) {
			// merged ranges may extend past the last populated row
			for len(s.rows) < endRow {
				s.rows = append(s.rows, nil)
			}
		}
		if endCol > s.maxCol {
			s.maxCol = endCol
		}
	}
	return s, nil
}

func (s *Sheet) Name() string { return s.name }
func (s *Sheet) MaxRow() int  { return len(s.rows) }
func (s *Sheet) MaxCol() int  { return s.maxCol }

// Cell returns the value at 1-indexed (row, col), "" when out of range.
func (s *Sheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) || col < 1 {
		return ""
	}
	r := s.rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

// MergedRanges returns the declared merged regions.
func (s *Sheet) MergedRanges() []ports.MergedRange { return s.merged }

var _ ports.Workbook = (*Workbook)(nil)
var _ ports.Sheet = (*Sheet)(nil)
