package extract

import (
	"log"
	"strings"

	"schedparse/domain/schedule"
	"schedparse/ports"
)

// Parser runs the heuristic extraction pipeline over in-memory workbooks.
// A Parser is immutable after construction and safe for concurrent use;
// all per-invocation state lives on the stack of each call.
type Parser struct {
	tables *Tables
	opts   Options
}

// NewParser builds a parser with the given options. Zero-valued options
// fall back to defaults.
func NewParser(tables *Tables, opts Options) *Parser {
	if tables == nil {
		tables = NewTables()
	}
	return &Parser{tables: tables, opts: opts.withDefaults()}
}

// ParseWorkbook extracts products from every schedule-like sheet, in
// sheet order. A fault while processing one sheet abandons that sheet
// only; the remaining sheets still contribute.
func (p *Parser) ParseWorkbook(wb ports.Workbook) []schedule.Extraction {
	var out []schedule.Extraction
	for _, name := range wb.SheetNames() {
		sheet, ok := wb.Sheet(name)
		if !ok {
			continue
		}
		out = append(out, p.parseSheetIsolated(sheet)...)
	}
	return out
}

func (p *Parser) parseSheetIsolated(sheet ports.Sheet) (extractions []schedule.Extraction) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Parser] sheet %q abandoned after fault: %v", sheet.Name(), r)
			extractions = nil
		}
	}()
	return p.ParseSheet(sheet)
}

// ParseSheet runs the full pipeline over one sheet. Sheets without a
// recognizable header, or whose header lacks both identity and supporting
// columns, yield nothing.
func (p *Parser) ParseSheet(sheet ports.Sheet) []schedule.Extraction {
	g := NormalizeMerged(sheet)

	headerRow, ok := p.FindHeaderRow(g)
	if !ok {
		return nil
	}
	cols := p.MapColumns(g, headerRow)
	if !p.scheduleLike(cols) {
		return nil
	}
	layout := p.DetectLayout(g, headerRow)

	var out []schedule.Extraction
	for _, raw := range p.IterateRows(g, headerRow, cols, layout) {
		if p.looksLikeRepeatedHeader(raw) {
			continue
		}
		product := p.ExtractFields(raw)
		if !product.HasMeaningfulData() {
			continue
		}
		out = append(out, schedule.Extraction{
			Product: product,
			RawText: buildRawText(raw),
			Sheet:   sheet.Name(),
			Row:     raw.Row,
			Section: raw.Section,
		})
	}
	return out
}

// scheduleLike requires an identity column plus at least one supporting
// column before a mapped sheet is trusted.
func (p *Parser) scheduleLike(cols schedule.HeaderMapping) bool {
	_, hasCode := cols[schedule.ColDocCode]
	_, hasName := cols[schedule.ColProductName]
	if !hasCode && !hasName {
		return false
	}
	for canonical := range cols {
		if sheetSupportingColumns[canonical] {
			return true
		}
	}
	return false
}

// looksLikeRepeatedHeader catches header rows repeated mid-sheet after
// page breaks: the doc_code cell holds a known header spelling and at
// least two other mapped cells do too.
func (p *Parser) looksLikeRepeatedHeader(raw schedule.RawRow) bool {
	code := normalizeHeader(raw.Values[schedule.ColDocCode], true)
	if code == "" {
		return false
	}
	if canonical, ok := p.tables.Columns.Exact(code); !ok || canonical != schedule.ColDocCode {
		return false
	}
	headerLike := 0
	for canonical, value := range raw.Values {
		if canonical == schedule.ColDocCode {
			continue
		}
		normalized := normalizeHeader(value, true)
		if normalized == "" {
			continue
		}
		if mapped, ok := p.tables.Columns.Exact(normalized); ok && mapped == canonical {
			headerLike++
		}
	}
	return headerLike >= 2
}

// rawTextColumns feed the enhancement layer with the row's useful text.
var rawTextColumns = []string{
	schedule.ColItemLocation,
	schedule.ColSpecs,
	schedule.ColManufacturer,
	schedule.ColNotes,
	schedule.ColProductName,
}

func buildRawText(raw schedule.RawRow) string {
	var parts []string
	for _, canonical := range rawTextColumns {
		if v := strings.TrimSpace(raw.Values[canonical]); v != "" {
			parts = append(parts, v)
		}
	}
	for _, d := range raw.Details {
		parts = append(parts, d.Key+": "+d.Value)
	}
	return strings.Join(parts, " | ")
}
