package extract

import (
	"regexp"
	"strings"

	"schedparse/domain/schedule"
)

var skipRowRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^delivery$`),
	regexp.MustCompile(`(?i)^shipping$`),
	regexp.MustCompile(`(?i)^freight$`),
	regexp.MustCompile(`(?i)^total[s]?$`),
	regexp.MustCompile(`(?i)^sub\s*total$`),
	regexp.MustCompile(`(?i)^grand\s*total$`),
	regexp.MustCompile(`(?i)^gst$`),
	regexp.MustCompile(`(?i)^tax$`),
}

var (
	anyDigitRe     = regexp.MustCompile(`\d`)
	codePrefixRe   = regexp.MustCompile(`^[A-Z]{1,3}-`)
	emptyScanWidth = 20
	sectionScanHi  = 7
	skipScanWidth  = 4
)

// rowIter walks data rows below the header, classifying each and grouping
// detail rows under item rows. It is a two-state machine: idle, or
// accumulating one pending product row.
type rowIter struct {
	p       *Parser
	g       *Grid
	cols    schedule.HeaderMapping
	layout  schedule.Layout
	section string
	pending *schedule.RawRow
}

// IterateRows classifies every row below the header and returns the raw
// per-product rows in sheet order.
func (p *Parser) IterateRows(g *Grid, headerRow int, cols schedule.HeaderMapping, layout schedule.Layout) []schedule.RawRow {
	it := &rowIter{p: p, g: g, cols: cols, layout: layout}
	var out []schedule.RawRow
	for row := headerRow + 1; row <= g.MaxRow(); row++ {
		out = append(out, it.step(row)...)
	}
	return append(out, it.flush()...)
}

// step applies the row classification checks in fixed order and returns
// any rows completed by this transition.
func (it *rowIter) step(row int) []schedule.RawRow {
	if it.isEmptyRow(row) {
		return nil
	}
	if section, ok := it.sectionHeader(row); ok {
		flushed := it.flush()
		it.section = section
		return flushed
	}
	if it.isSkipRow(row) {
		return nil
	}
	if it.layout == schedule.LayoutGrouped {
		if itemName, ok := it.itemKey(row); ok {
			flushed := it.flush()
			next := it.extractRowData(row)
			next.ItemName = itemName
			it.pending = &next
			return flushed
		}
		if key, value, ok := it.detailKey(row); ok {
			if it.pending != nil {
				it.pending.Details = append(it.pending.Details, schedule.DetailRow{
					Row: row, Key: key, Value: value,
				})
			}
			return nil
		}
		return nil
	}
	if it.cellByName(row, schedule.ColDocCode) == "" &&
		it.cellByName(row, schedule.ColItemLocation) == "" {
		return nil
	}
	r := it.extractRowData(row)
	return []schedule.RawRow{r}
}

// flush completes any pending accumulated product.
func (it *rowIter) flush() []schedule.RawRow {
	if it.pending == nil {
		return nil
	}
	r := *it.pending
	it.pending = nil
	return []schedule.RawRow{r}
}

func (it *rowIter) cellByName(row int, canonical string) string {
	col, ok := it.cols[canonical]
	if !ok {
		return ""
	}
	return strings.TrimSpace(it.g.Cell(row, col))
}

func (it *rowIter) isEmptyRow(row int) bool {
	for _, col := range it.cols {
		if strings.TrimSpace(it.g.Cell(row, col)) != "" {
			return false
		}
	}
	for col := 1; col <= min(emptyScanWidth, it.g.MaxCol()); col++ {
		if strings.TrimSpace(it.g.Cell(row, col)) != "" {
			return false
		}
	}
	return true
}

// sectionHeader recognizes category rows: either a former merged banner
// (same value filled across several leading columns) or a short all-caps
// label with the other key columns empty.
func (it *rowIter) sectionHeader(row int) (string, bool) {
	first := strings.TrimSpace(it.g.Cell(row, 1))
	if first == "" {
		return "", false
	}
	same := 0
	for col := 1; col <= min(sectionScanHi, it.g.MaxCol()); col++ {
		if strings.TrimSpace(it.g.Cell(row, col)) == first {
			same++
		}
	}
	if same >= 3 {
		return first, true
	}
	if first == strings.ToUpper(first) && first != strings.ToLower(first) && len(first) < 50 {
		emptyOrSame := func(canonical string) bool {
			v := it.cellByName(row, canonical)
			return v == "" || v == first
		}
		if emptyOrSame(schedule.ColSpecs) &&
			emptyOrSame(schedule.ColManufacturer) &&
			emptyOrSame(schedule.ColItemLocation) {
			// doc codes look like "FCA-01"; section labels never do
			if !anyDigitRe.MatchString(first) && !codePrefixRe.MatchString(first) {
				return first, true
			}
		}
	}
	return "", false
}

func (it *rowIter) isSkipRow(row int) bool {
	for col := 1; col <= min(skipScanWidth, it.g.MaxCol()); col++ {
		text := normalizeCell(it.g.Cell(row, col))
		if text == "" {
			continue
		}
		for _, re := range skipRowRes {
			if re.MatchString(text) {
				return true
			}
		}
	}
	if normalizeCell(it.cellByName(row, schedule.ColImage)) == "delivery" {
		return true
	}
	return false
}

// itemKey finds the item marker with a non-empty adjacent value inside the
// detail window.
func (it *rowIter) itemKey(row int) (string, bool) {
	for col := detailWindowLo; col <= min(detailWindowHi, it.g.MaxCol()); col++ {
		if normalizeCell(it.g.Cell(row, col)) != itemMarker {
			continue
		}
		name := strings.TrimSpace(it.g.Cell(row, col+1))
		if name != "" {
			return name, true
		}
	}
	return "", false
}

// detailKey finds a short colon-terminated key with a non-empty adjacent
// value inside the detail window. The item marker never counts.
func (it *rowIter) detailKey(row int) (key, value string, ok bool) {
	for col := detailWindowLo; col <= min(detailWindowHi, it.g.MaxCol()); col++ {
		text := normalizeCell(it.g.Cell(row, col))
		if text == "" {
			continue
		}
		if text == itemMarker {
			return "", "", false
		}
		if !looksLikeDetailKey(text) {
			continue
		}
		adjacent := strings.TrimSpace(it.g.Cell(row, col+1))
		if adjacent == "" {
			continue
		}
		key = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(it.g.Cell(row, col)), ":"))
		return key, adjacent, true
	}
	return "", "", false
}

// looksLikeDetailKey accepts a single-line colon-terminated label of
// plausible key length.
func looksLikeDetailKey(text string) bool {
	if !strings.HasSuffix(text, ":") {
		return false
	}
	key := strings.TrimSpace(strings.TrimSuffix(text, ":"))
	if len(key) < 2 || len(key) > 25 {
		return false
	}
	if strings.ContainsAny(key, "\n:") {
		return false
	}
	return true
}

// extractRowData snapshots every mapped column value and the current
// section into a RawRow.
func (it *rowIter) extractRowData(row int) schedule.RawRow {
	r := schedule.RawRow{
		Row:     row,
		Values:  make(map[string]string, len(it.cols)),
		Section: it.section,
	}
	for canonical, col := range it.cols {
		if v := strings.TrimSpace(it.g.Cell(row, col)); v != "" {
			r.Values[canonical] = v
		}
	}
	return r
}
