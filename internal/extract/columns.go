package extract

import (
	"strings"
	"unicode"

	"schedparse/domain/schedule"
)

// MapColumns resolves each header cell on the given row to a canonical
// column name. The first column claiming a canonical name wins; later
// duplicates are ignored.
func (p *Parser) MapColumns(g *Grid, headerRow int) schedule.HeaderMapping {
	cols := p.opts.MapScanCols
	if g.MaxCol() < cols {
		cols = g.MaxCol()
	}
	mapping := make(schedule.HeaderMapping)
	for col := 1; col <= cols; col++ {
		normalized := normalizeHeader(g.Cell(headerRow, col), false)
		if normalized == "" {
			continue
		}
		canonical, ok := p.matchColumn(normalized)
		if !ok {
			continue
		}
		if _, claimed := mapping[canonical]; claimed {
			continue
		}
		mapping[canonical] = col
	}
	return mapping
}

// matchColumn resolves one normalized header cell through three tiers:
// exact lookup, partial match, then fuzzy similarity.
func (p *Parser) matchColumn(normalized string) (string, bool) {
	t := p.tables.Columns
	if canonical, ok := t.Exact(normalized); ok {
		return canonical, true
	}
	if canonical, ok := partialMatch(t, normalized); ok {
		return canonical, true
	}
	if !p.opts.DisableFuzzy {
		if canonical, ok := fuzzyMatch(t, normalized, p.opts.FuzzyThreshold); ok {
			return canonical, true
		}
	}
	return "", false
}

// partialMatch tries synonyms longest-first, accepting a word-boundary
// prefix or whole-word containment. Synonyms shorter than 3 characters are
// skipped here: "w" or "id" inside arbitrary header text is noise.
func partialMatch(t *SynonymTable, text string) (string, bool) {
	for _, e := range t.entries {
		if len(e.synonym) < 3 {
			continue
		}
		if strings.HasPrefix(text, e.synonym) {
			if len(text) == len(e.synonym) || !isWordChar(rune(text[len(e.synonym)])) {
				return e.canonical, true
			}
		}
		if e.wordRe.MatchString(text) {
			return e.canonical, true
		}
	}
	return "", false
}

// fuzzyMatch picks the most similar synonym, accepting it only above the
// threshold.
func fuzzyMatch(t *SynonymTable, text string, threshold float64) (string, bool) {
	bestRatio := 0.0
	bestCanonical := ""
	for _, e := range t.entries {
		if len(e.synonym) < 3 {
			continue
		}
		if r := similarityRatio(text, e.synonym); r > bestRatio {
			bestRatio = r
			bestCanonical = e.canonical
		}
	}
	if bestRatio >= threshold {
		return bestCanonical, true
	}
	return "", false
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
