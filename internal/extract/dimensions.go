package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimensions holds parsed millimetre values; nil means not found.
type Dimensions struct {
	Width  *int
	Length *int
	Height *int
}

const unitRe = `mm|millimet(?:er|re)s?|cm|centimet(?:er|re)s?|m|met(?:er|re)s?|in|inch(?:es)?|"`

var (
	explicitDimRe = regexp.MustCompile(
		`(?i)\b(WIDTH|LENGTH|HEIGHT|DEPTH|THICKNESS)\b\s*[:=\-]?\s*([0-9]+(?:[.,][0-9]+)?\s*(?:` + unitRe + `)?)`)
	labeledDimRe = regexp.MustCompile(
		`(?i)(\d+(?:[.,]\d+)?)\s*\(?\s*([WLHDT])\s*\)?\s*X\s*(\d+(?:[.,]\d+)?)\s*\(?\s*([WLHDT])\s*\)?(?:\s*X\s*(\d+(?:[.,]\d+)?)\s*\(?\s*([WLHDT])\s*\)?)?\s*(` + unitRe + `)?`)
	unlabeledDimRe = regexp.MustCompile(
		`(?i)(\d+(?:[.,]\d+)?)\s*X\s*(\d+(?:[.,]\d+)?)(?:\s*X\s*(\d+(?:[.,]\d+)?))?\s*(` + unitRe + `)\b`)
	gluedNumUnitRe = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)(mm|cm|m|in)$`)
	numUnitRe      = regexp.MustCompile(
		`(?i)^(\d+(?:[.,]\d+)?)\s*(` + unitRe + `)?$`)
	innerNumUnitRe = regexp.MustCompile(
		`(?i)(\d+(?:[.,]\d+)?)\s*(` + unitRe + `)\b`)
	innerNumRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

// toMM converts a numeric token plus optional unit into integer
// millimetres. A missing unit means the value is already millimetres.
// Unknown units and negative values yield nil.
func toMM(value, unit string) *int {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || number < 0 {
		return nil
	}
	switch normalizeUnit(unit) {
	case "", "mm":
		// already mm
	case "cm":
		number *= 10
	case "m":
		number *= 1000
	case "in":
		number *= 25.4
	default:
		return nil
	}
	mm := int(math.Round(number))
	return &mm
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "":
		return ""
	case "mm", "millimeter", "millimeters", "millimetre", "millimetres":
		return "mm"
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return "cm"
	case "m", "meter", "meters", "metre", "metres":
		return "m"
	case "in", "inch", "inches", `"`:
		return "in"
	}
	return "?"
}

// parseLengthValue extracts a single millimetre value from text that is
// expected to hold one measurement, salvaging a number+unit from larger
// strings when the whole text does not match.
func parseLengthValue(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if m := gluedNumUnitRe.FindStringSubmatch(text); m != nil {
		return toMM(m[1], m[2])
	}
	if m := numUnitRe.FindStringSubmatch(text); m != nil {
		return toMM(m[1], m[2])
	}
	if m := innerNumUnitRe.FindStringSubmatch(text); m != nil {
		return toMM(m[1], m[2])
	}
	if m := innerNumRe.FindStringSubmatch(text); m != nil {
		return toMM(m[1], "")
	}
	return nil
}

// ParseDimensions parses free text into width/length/height millimetres
// using a fixed-priority cascade; earlier matches are never overwritten.
func ParseDimensions(text string) Dimensions {
	var d Dimensions
	if strings.TrimSpace(text) == "" {
		return d
	}
	normalized := strings.ReplaceAll(text, "×", "X")

	parseExplicitDims(normalized, &d)
	parseLabeledDims(normalized, &d)
	parseUnlabeledDims(normalized, &d)
	parseStandaloneDim(normalized, &d)
	return d
}

// parseExplicitDims handles "WIDTH: 3.66 METRES" style keyed values.
// DEPTH and THICKNESS only ever fill height, and only when HEIGHT itself
// is absent.
func parseExplicitDims(text string, d *Dimensions) {
	found := make(map[string]*int)
	for _, m := range explicitDimRe.FindAllStringSubmatch(text, -1) {
		key := strings.ToUpper(m[1])
		if _, seen := found[key]; seen {
			continue
		}
		if mm := parseLengthValue(m[2]); mm != nil {
			found[key] = mm
		}
	}
	if d.Width == nil {
		d.Width = found["WIDTH"]
	}
	if d.Length == nil {
		d.Length = found["LENGTH"]
	}
	if d.Height == nil {
		switch {
		case found["HEIGHT"] != nil:
			d.Height = found["HEIGHT"]
		case found["DEPTH"] != nil:
			d.Height = found["DEPTH"]
		case found["THICKNESS"] != nil:
			d.Height = found["THICKNESS"]
		}
	}
}

// parseLabeledDims handles compact labeled blocks like "600 W X 600 H MM"
// and the parenthesized form "1200 (W) x 800 (D) x 330 (H) mm". Within
// one block, D fills length when an H label is also present (furniture
// width x depth x height triples), otherwise D and T fall back to height.
func parseLabeledDims(text string, d *Dimensions) {
	m := labeledDimRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	unit := m[7]
	type part struct{ num, label string }
	parts := []part{{m[1], strings.ToUpper(m[2])}, {m[3], strings.ToUpper(m[4])}}
	if m[5] != "" {
		parts = append(parts, part{m[5], strings.ToUpper(m[6])})
	}
	hasH := false
	for _, p := range parts {
		if p.label == "H" {
			hasH = true
		}
	}
	for _, p := range parts {
		mm := toMM(p.num, unit)
		if mm == nil {
			continue
		}
		switch p.label {
		case "W":
			if d.Width == nil {
				d.Width = mm
			}
		case "L":
			if d.Length == nil {
				d.Length = mm
			}
		case "D":
			if hasH {
				if d.Length == nil {
					d.Length = mm
				}
			} else if d.Height == nil {
				d.Height = mm
			}
		case "H", "T":
			if d.Height == nil {
				d.Height = mm
			}
		}
	}
}

// parseUnlabeledDims handles "A X B (X C) UNIT". Three parts are
// width x length x height. Two equal parts are a square item, width and
// height; two unequal parts are width and length.
func parseUnlabeledDims(text string, d *Dimensions) {
	if d.Width != nil && d.Length != nil && d.Height != nil {
		return
	}
	m := unlabeledDimRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	unit := m[4]
	a := toMM(m[1], unit)
	b := toMM(m[2], unit)
	var c *int
	if m[3] != "" {
		c = toMM(m[3], unit)
	}
	if c != nil {
		if d.Width == nil {
			d.Width = a
		}
		if d.Length == nil {
			d.Length = b
		}
		if d.Height == nil {
			d.Height = c
		}
		return
	}
	if a != nil && b != nil && *a == *b {
		if d.Width == nil {
			d.Width = a
		}
		if d.Height == nil {
			d.Height = b
		}
		return
	}
	if d.Width == nil {
		d.Width = a
	}
	if d.Length == nil {
		d.Length = b
	}
}

// parseStandaloneDim assigns a bare "NUMBER UNIT" token to width, only
// when nothing else matched at all.
func parseStandaloneDim(text string, d *Dimensions) {
	if d.Width != nil || d.Length != nil || d.Height != nil {
		return
	}
	m := innerNumUnitRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	d.Width = toMM(m[1], m[2])
}
