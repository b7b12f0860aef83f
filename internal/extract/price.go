package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	pricePlaceholderRe = regexp.MustCompile(`(?i)^\s*(?:tbc|tba|poa|n/?a|na|nil|-+\s*)\s*$`)
	// explicit currency marker: "$45.50", "$25+GST", "$ 1,200 PER SQM"
	dollarAmountRe = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)`)
	// amount near a price context word when "$" is absent
	contextAmountRe = regexp.MustCompile(`(?i)\b(?:rrp|price|cost|unit\s*cost|rate)\b[^\d$]{0,20}(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)`)
)

// ParsePrice extracts a unit price from messy free text. Placeholder
// tokens (TBC, POA, N/A, a bare dash) and text with neither a dollar sign
// nor a price context word yield nil. The dollar form always wins over
// the context form.
func ParsePrice(text string) *float64 {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}
	if pricePlaceholderRe.MatchString(raw) {
		return nil
	}
	m := dollarAmountRe.FindStringSubmatch(raw)
	if m == nil {
		m = contextAmountRe.FindStringSubmatch(raw)
	}
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
