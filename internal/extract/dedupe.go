package extract

import (
	"strings"

	"schedparse/domain/schedule"
)

// DedupeByDocCode removes repeat products sharing a trimmed doc_code,
// keeping the first occurrence in order. Products without a doc_code are
// always retained.
func DedupeByDocCode(products []schedule.Product) []schedule.Product {
	seen := make(map[string]bool)
	out := make([]schedule.Product, 0, len(products))
	for _, p := range products {
		key := ""
		if p.DocCode != nil {
			key = strings.TrimSpace(*p.DocCode)
		}
		if key == "" {
			out = append(out, p)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
