package schedule

// Canonical column names recognized across schedule variants.
const (
	ColDocCode      = "doc_code"
	ColProductName  = "product_name"
	ColImage        = "image"
	ColItemLocation = "item_location"
	ColSpecs        = "specs"
	ColManufacturer = "manufacturer"
	ColNotes        = "notes"
	ColQty          = "qty"
	ColCost         = "cost"
	ColTotalCost    = "total_cost"
	ColFinish       = "finish"
	ColMaterial     = "material"
	ColColour       = "colour"
	ColWidth        = "width"
	ColLength       = "length"
	ColHeight       = "height"
	ColSize         = "size"
	ColLeadTime     = "lead_time"
	ColDiscount     = "client_discount"
	ColSignoff      = "client_signoff"
	ColTradePrice   = "trade_price"
)

// HeaderMapping maps canonical column names to 1-indexed column numbers for
// one sheet. At most one column per canonical name; first occurrence wins.
type HeaderMapping map[string]int

// Layout describes how a sheet arranges its products.
type Layout string

const (
	// LayoutSingle is one row per product.
	LayoutSingle Layout = "single"
	// LayoutGrouped is an item row followed by detail rows per product.
	LayoutGrouped Layout = "grouped"
)

// DetailRow is one key/value pair collected from a detail row in grouped
// layout.
type DetailRow struct {
	Row   int
	Key   string
	Value string
}

// RawRow is the per-product raw data emitted by the row iterator and
// consumed immediately by the field extractor. It is transient: one
// RawRow never outlives the parse of its sheet.
type RawRow struct {
	Row      int
	Values   map[string]string // canonical column -> cell text
	Section  string            // current section label, "" if none
	ItemName string            // grouped layout "Item:" value
	Details  []DetailRow       // non-empty only in grouped layout
}

// Value returns the mapped cell text for a canonical column, "" if absent.
func (r RawRow) Value(canonical string) string {
	return r.Values[canonical]
}

// Extraction pairs an extracted product with the context needed by the
// optional enhancement pass.
type Extraction struct {
	Product Product
	RawText string
	Sheet   string
	Row     int
	Section string
}
