package extract

import (
	"regexp"
	"sort"
	"strings"

	"schedparse/domain/schedule"
)

// headerSynonyms is the conservative synonym set used when locating the
// header row. Column mapping uses the wider columnSynonyms set below; the
// locator stays narrow so that noisy cover sheets do not score as headers.
var headerSynonyms = map[string][]string{
	schedule.ColDocCode: {
		"spec code", "code", "ref", "reference", "item code",
		"product code", "sku", "id",
	},
	schedule.ColImage: {
		"image", "photo", "indicative image", "picture", "item image",
		"img", "thumbnail",
	},
	schedule.ColItemLocation: {
		"location", "description", "item & location", "item and location",
		"area", "room", "space",
	},
	schedule.ColProductName: {
		"product name", "item name",
	},
	schedule.ColSpecs: {
		"specification", "specifications", "specs", "notes/comments",
		"details", "spec",
	},
	schedule.ColManufacturer: {
		"manufacturer", "supplier", "brand", "vendor", "maker",
		"manufacturer / supplier", "manufacturer/supplier", "make", "company",
	},
	schedule.ColNotes: {
		"notes", "comments", "remarks", "note", "comment",
	},
	schedule.ColQty: {
		"qty", "quantity", "count", "units", "no.", "number",
	},
	schedule.ColCost: {
		"cost", "rrp", "price", "indicative cost", "cost per unit",
		"total cost", "$", "unit price", "unit cost", "amount", "value",
	},
}

// columnSynonyms extends headerSynonyms with every header spelling seen in
// real schedules. Used by the column mapper once the header row is known.
var columnSynonyms = map[string][]string{
	schedule.ColDocCode: {
		"spec code", "code", "ref", "reference", "item code", "product code",
		"sku", "id", "item ref", "product ref", "item no", "item number",
		"product no", "product number",
	},
	schedule.ColProductName: {
		"product name", "item name", "product", "name", "item",
	},
	schedule.ColImage: {
		"image", "photo", "indicative image", "picture", "item image", "img",
		"thumbnail", "product image", "finish image", "feature image",
	},
	schedule.ColItemLocation: {
		"location", "description", "item & location", "item and location",
		"area", "room", "space", "item/location", "item description",
		"product description",
	},
	schedule.ColSpecs: {
		"specification", "specifications", "specs", "notes/comments",
		"details", "spec", "product details", "product specs",
		"technical specs", "technical specifications",
	},
	schedule.ColManufacturer: {
		"manufacturer", "supplier", "brand", "vendor", "maker",
		"manufacturer / supplier", "manufacturer/supplier", "make", "company",
		"manufacturer & supplier", "manufacturer and supplier",
		"supplier/manufacturer",
	},
	schedule.ColNotes: {
		"notes", "comments", "remarks", "note", "comment",
		"additional notes", "additional comments",
		// handles "notes (supplier/fabric code)"
		"notes (supplier",
	},
	schedule.ColQty: {
		"qty", "quantity", "count", "units", "no.", "number", "amount",
		"pcs", "pieces", "unit qty", "unit quantity",
	},
	schedule.ColCost: {
		"cost", "rrp", "price", "indicative cost", "cost per unit",
		"cost per unit $", "$", "unit price", "unit cost", "value", "rate",
		"unit rate", "each", "per unit",
	},
	schedule.ColTotalCost: {
		// "total" alone is too generic and causes false positives
		"total cost", "total cost $", "total price", "total value",
		"extended cost", "extended price", "line total", "subtotal",
		"sub total",
	},
	schedule.ColFinish: {
		"finish", "surface", "surface finish", "coating", "treatment",
	},
	schedule.ColMaterial: {
		"material", "composition", "species", "substrate", "base material",
	},
	schedule.ColColour: {
		"colour", "color", "col", "shade", "tint",
	},
	schedule.ColWidth: {
		"width", "w", "wide",
	},
	schedule.ColLength: {
		"length", "l", "len", "long", "depth", "d",
	},
	schedule.ColHeight: {
		"height", "h", "ht", "thickness", "thk",
	},
	schedule.ColSize: {
		"size", "dimensions", "dims", "dim", "measurements",
	},
	schedule.ColLeadTime: {
		"lead time", "leadtime", "delivery", "delivery time", "eta",
		"availability",
	},
	schedule.ColDiscount: {
		"customer discount", "client discount", "discount", "disc",
		"disc %", "discount %",
	},
	schedule.ColSignoff: {
		"client initials", "client sign off", "client signoff", "sign off",
		"signoff", "approval", "approved", "initials",
	},
	schedule.ColTradePrice: {
		"trade", "trade $", "trade price", "trade cost", "wholesale",
		"wholesale price",
	},
}

// keyAliases collapses KV-block key variants to canonical uppercase keys.
var keyAliases = map[string]string{
	"PRODUCT": "PRODUCT",
	"NAME":    "NAME",
	"ITEM":    "ITEM",
	"RANGE":   "RANGE",

	"COLOR":       "COLOUR",
	"COLOUR":      "COLOUR",
	"COIR COLOUR": "COLOUR",
	"COIR COLOR":  "COLOUR",

	"FINISH":         "FINISH",
	"SURFACE":        "FINISH",
	"SURFACE FINISH": "FINISH",

	"MATERIAL":    "MATERIAL",
	"COMPOSITION": "MATERIAL",
	"SPECIES":     "MATERIAL",

	"WIDTH":     "WIDTH",
	"W":         "WIDTH",
	"WIDE":      "WIDTH",
	"LENGTH":    "LENGTH",
	"L":         "LENGTH",
	"LEN":       "LENGTH",
	"LONG":      "LENGTH",
	"DEPTH":     "DEPTH",
	"D":         "DEPTH",
	"HEIGHT":    "HEIGHT",
	"H":         "HEIGHT",
	"HT":        "HEIGHT",
	"THICKNESS": "THICKNESS",
	"THK":       "THICKNESS",

	"SIZE":           "SIZE",
	"DIMENSIONS":     "SIZE",
	"DIMS":           "SIZE",
	"DIM":            "SIZE",
	"SHEET SIZE":     "SIZE",
	"SHEET SIZE MAX": "SIZE",

	"MAKER":        "MAKER",
	"BRAND":        "BRAND",
	"MANUFACTURER": "MANUFACTURER",
	"SUPPLIER":     "SUPPLIER",

	"CODE":         "CODE",
	"REF":          "CODE",
	"REFERENCE":    "CODE",
	"PRODUCT CODE": "CODE",
	"ITEM CODE":    "CODE",
	"SKU":          "CODE",

	"STYLE":     "STYLE",
	"LEAD TIME": "LEAD_TIME",
	"LEADTIME":  "LEAD_TIME",
	"NOTES":     "NOTES",
	"NOTE":      "NOTES",
	"COMMENTS":  "NOTES",
	"COMMENT":   "NOTES",

	"CARPET THICKNESS": "CARPET_THICKNESS",
	"PILE HEIGHT":      "PILE_HEIGHT",
	"PILE WEIGHT":      "PILE_WEIGHT",
	"INSTALLATION":     "INSTALLATION",

	"QTY":      "QTY",
	"QUANTITY": "QTY",
}

// requiredColumns must be present for a row to be accepted as a header
// without strong supporting evidence.
var requiredColumns = map[string]bool{
	schedule.ColDocCode: true,
}

// supportingColumns strengthen header detection alongside doc_code.
var supportingColumns = map[string]bool{
	schedule.ColItemLocation: true,
	schedule.ColProductName:  true,
	schedule.ColSpecs:        true,
	schedule.ColManufacturer: true,
	schedule.ColCost:         true,
	schedule.ColQty:          true,
}

// sheetSupportingColumns gate whole-sheet acceptance in the orchestrator.
var sheetSupportingColumns = map[string]bool{
	schedule.ColItemLocation: true,
	schedule.ColSpecs:        true,
	schedule.ColManufacturer: true,
	schedule.ColNotes:        true,
	schedule.ColQty:          true,
	schedule.ColCost:         true,
	schedule.ColProductName:  true,
}

type synonymEntry struct {
	synonym   string
	canonical string
	wordRe    *regexp.Regexp
}

// SynonymTable is an immutable reverse lookup from normalized header
// spellings to canonical column names. Built once at startup and shared;
// never mutated afterwards.
type SynonymTable struct {
	lookup map[string]string
	// entries sorted longest synonym first, for partial matching
	entries []synonymEntry
}

func newSynonymTable(synonyms map[string][]string, firstLineOnly bool) *SynonymTable {
	t := &SynonymTable{lookup: make(map[string]string)}
	for canonical, variants := range synonyms {
		for _, v := range variants {
			normalized := normalizeHeader(v, firstLineOnly)
			if normalized == "" {
				continue
			}
			if _, ok := t.lookup[normalized]; ok {
				continue
			}
			t.lookup[normalized] = canonical
			t.entries = append(t.entries, synonymEntry{
				synonym:   normalized,
				canonical: canonical,
				wordRe:    regexp.MustCompile(`\b` + regexp.QuoteMeta(normalized) + `\b`),
			})
		}
	}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return len(t.entries[i].synonym) > len(t.entries[j].synonym)
	})
	return t
}

// Exact returns the canonical name for an exactly matching normalized
// header spelling.
func (t *SynonymTable) Exact(normalized string) (string, bool) {
	c, ok := t.lookup[normalized]
	return c, ok
}

// Tables bundles the immutable lookup tables the pipeline needs. Construct
// once at process start and inject; concurrent parses share one instance.
type Tables struct {
	Header  *SynonymTable // header locator set, first-line normalization
	Columns *SynonymTable // column mapper set, joined-line normalization
	Aliases map[string]string
}

// NewTables builds the synonym and alias tables.
func NewTables() *Tables {
	return &Tables{
		Header:  newSynonymTable(headerSynonyms, true),
		Columns: newSynonymTable(columnSynonyms, false),
		Aliases: keyAliases,
	}
}

// NormalizeKey uppercases, trims and alias-resolves a KV key.
func (t *Tables) NormalizeKey(key string) string {
	normalized := strings.ToUpper(strings.TrimSpace(key))
	if normalized == "" {
		return ""
	}
	if canonical, ok := t.Aliases[normalized]; ok {
		return canonical
	}
	return normalized
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeHeader prepares header text for synonym lookup: lowercase,
// collapsed whitespace, trailing ":.-" stripped. firstLineOnly keeps only
// the first line of multi-line headers; otherwise lines are joined.
func normalizeHeader(text string, firstLineOnly bool) string {
	if firstLineOnly {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
	}
	text = strings.ToLower(strings.TrimSpace(text))
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimRight(text, ":.- ")
	return text
}
