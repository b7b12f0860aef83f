package extract

import "schedparse/ports"

// NormalizeMerged copies a sheet into a Grid with every merged region
// replaced by its top-left value in all covered cells. Formatting-driven
// merges (banner rows, grouped labels) otherwise leave every cell but the
// anchor empty, which starves the row heuristics downstream.
//
// Malformed ranges (zero area) are skipped; ranges extending past the
// sheet bounds are clamped. Runs in time linear in sheet size plus total
// merged area.
func NormalizeMerged(s ports.Sheet) *Grid {
	maxRow, maxCol := s.MaxRow(), s.MaxCol()
	g := NewGrid(s.Name(), maxRow, maxCol)
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			g.Set(row, col, s.Cell(row, col))
		}
	}
	for _, r := range s.MergedRanges() {
		if r.Area() == 0 {
			continue
		}
		minRow, minCol := clampLow(r.MinRow), clampLow(r.MinCol)
		maxR, maxC := r.MaxRow, r.MaxCol
		if maxR > maxRow {
			maxR = maxRow
		}
		if maxC > maxCol {
			maxC = maxCol
		}
		anchor := g.Cell(minRow, minCol)
		if anchor == "" {
			continue
		}
		for row := minRow; row <= maxR; row++ {
			for col := minCol; col <= maxC; col++ {
				g.Set(row, col, anchor)
			}
		}
	}
	return g
}

func clampLow(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
