package extract

import (
	"regexp"
	"strings"

	"schedparse/domain/schedule"
)

// kvPatterns detect the separator grammars found in free-text spec cells.
// Order matters: colon is the most common, the two dash styles come before
// equals. Each captured key is validated (length, not digit-led) before
// the line is accepted; a rejected key falls through to the next grammar.
var kvPatterns = []*regexp.Regexp{
	// COLOUR: SILVER SHADOW / COLOUR:SILVER SHADOW
	regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9\s/&\-]*?)\s*:\s*(.+)$`),
	// FINISH - MATT
	regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9\s/&]*?)\s+-\s+(.+)$`),
	// FINISH- MATT
	regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9\s/&]*?)-\s+(.+)$`),
	// COLOR = Charcoal
	regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9\s/&\-]*?)\s*=\s*(.+)$`),
}

const maxKVKeyLen = 30

// parseKVLine matches one line against the KV grammars, returning the
// normalized key and trimmed value.
func (t *Tables) parseKVLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}
	for _, re := range kvPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rawKey := strings.TrimSpace(m[1])
		if len(rawKey) > maxKVKeyLen {
			continue
		}
		return t.NormalizeKey(rawKey), strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

// ParseKVBlock parses a multi-line free-text cell into an ordered block of
// KEY: VALUE pairs. Keys are normalized and aliased; the first occurrence
// of a key wins; lines matching no grammar are dropped.
func (t *Tables) ParseKVBlock(text string) *schedule.KeyValueBlock {
	block := schedule.NewKeyValueBlock()
	for _, line := range strings.Split(text, "\n") {
		if key, value, ok := t.parseKVLine(line); ok && key != "" && value != "" {
			block.Set(key, value)
		}
	}
	return block
}

// ParseKVMultiValue collects every value seen per key instead of only the
// first, preserving key first-seen order in the returned key list.
func (t *Tables) ParseKVMultiValue(text string) (keys []string, values map[string][]string) {
	values = make(map[string][]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := t.parseKVLine(line)
		if !ok || key == "" || value == "" {
			continue
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = append(values[key], value)
	}
	return keys, values
}

// NonKVLines returns the non-blank lines of a cell that matched no KV
// grammar, for callers that want the free-form remainder.
func (t *Tables) NonKVLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, _, ok := t.parseKVLine(line); !ok {
			out = append(out, line)
		}
	}
	return out
}
