package extract

// headerCandidate is one scored row from the header scan.
type headerCandidate struct {
	row      int
	matched  map[string]bool
	score    int
	required bool
}

// FindHeaderRow scans the top of the sheet for the row that best resembles
// a schedule header. Returns (0, false) when no row qualifies, meaning the
// sheet is not schedule-like and should be skipped.
func (p *Parser) FindHeaderRow(g *Grid) (int, bool) {
	limit := p.opts.HeaderScanRows
	if g.MaxRow() < limit {
		limit = g.MaxRow()
	}
	var best *headerCandidate
	for row := 1; row <= limit; row++ {
		c := p.scoreHeaderRow(g, row)
		if c == nil {
			continue
		}
		if best == nil || c.score > best.score ||
			(c.score == best.score && c.required && !best.required) {
			best = c
		}
	}
	if best == nil {
		return 0, false
	}
	if !best.required && countIn(best.matched, supportingColumns) < 2 {
		return 0, false
	}
	return best.row, true
}

// scoreHeaderRow counts distinct canonical columns matched on one row and
// weights the result. Rows matching fewer than two canonical columns never
// qualify.
func (p *Parser) scoreHeaderRow(g *Grid, row int) *headerCandidate {
	cols := p.opts.HeaderScanCols
	if g.MaxCol() < cols {
		cols = g.MaxCol()
	}
	matched := make(map[string]bool)
	for col := 1; col <= cols; col++ {
		normalized := normalizeHeader(g.Cell(row, col), true)
		if normalized == "" {
			continue
		}
		if canonical, ok := p.tables.Header.Exact(normalized); ok {
			matched[canonical] = true
		}
	}
	if len(matched) < 2 {
		return nil
	}
	c := &headerCandidate{row: row, matched: matched, score: len(matched)}
	if hasAny(matched, requiredColumns) {
		c.required = true
		c.score += 2
	}
	if hasAny(matched, supportingColumns) {
		c.score++
	}
	return c
}

func hasAny(matched map[string]bool, set map[string]bool) bool {
	for name := range set {
		if matched[name] {
			return true
		}
	}
	return false
}

func countIn(matched map[string]bool, set map[string]bool) int {
	n := 0
	for name := range set {
		if matched[name] {
			n++
		}
	}
	return n
}
