package extract

import (
	"strings"

	"schedparse/domain/schedule"
)

// itemMarker starts a new product in grouped layout.
const itemMarker = "item:"

// detailKeyVocab is the fixed vocabulary used only for layout
// classification. Row-level detail detection accepts any short
// colon-terminated key; classification stays conservative so that one
// stray "Notes:" line in a single-layout sheet does not flip the whole
// sheet to grouped.
var detailKeyVocab = map[string]bool{
	"maker:":        true,
	"name:":         true,
	"finish:":       true,
	"size:":         true,
	"lead time:":    true,
	"leadtime:":     true,
	"notes:":        true,
	"material:":     true,
	"colour:":       true,
	"color:":        true,
	"brand:":        true,
	"supplier:":     true,
	"manufacturer:": true,
	"dimensions:":   true,
	"dim:":          true,
	"width:":        true,
	"height:":       true,
	"length:":       true,
	"depth:":        true,
	itemMarker:      true,
}

// detail keys and item markers live in a narrow window of columns next to
// the descriptive columns
const (
	detailWindowLo = 3
	detailWindowHi = 6
)

// DetectLayout samples rows below the header and decides between
// single-row-per-product and grouped item/detail layout.
func (p *Parser) DetectLayout(g *Grid, headerRow int) schedule.Layout {
	itemCount, detailCount := 0, 0
	endRow := headerRow + p.opts.LayoutSampleRows
	if g.MaxRow() < endRow {
		endRow = g.MaxRow()
	}
	for row := headerRow + 1; row <= endRow; row++ {
		for col := detailWindowLo; col <= min(detailWindowHi, g.MaxCol()); col++ {
			text := normalizeCell(g.Cell(row, col))
			if text == "" {
				continue
			}
			if text == itemMarker {
				if strings.TrimSpace(g.Cell(row, col+1)) != "" {
					itemCount++
				}
				break
			}
			if detailKeyVocab[text] {
				detailCount++
				break
			}
		}
	}
	if itemCount > 0 && detailCount > 0 {
		return schedule.LayoutGrouped
	}
	if detailCount >= p.opts.DetailKeyThreshold {
		return schedule.LayoutGrouped
	}
	return schedule.LayoutSingle
}

// normalizeCell lowercases and trims a cell value for marker comparison.
func normalizeCell(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
