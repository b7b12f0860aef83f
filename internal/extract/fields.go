package extract

import (
	"math"
	"strconv"
	"strings"

	"schedparse/domain/schedule"
)

// kvUse wraps a KeyValueBlock and remembers which entries were consumed
// by a canonical field, so that leftovers can be serialized into
// product_details without repeating consumed values.
type kvUse struct {
	block *schedule.KeyValueBlock
	used  map[string]bool
}

func newKVUse(block *schedule.KeyValueBlock) *kvUse {
	return &kvUse{block: block, used: make(map[string]bool)}
}

// take returns the first present value among keys and marks it consumed.
func (u *kvUse) take(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := u.block.Get(key); ok {
			u.used[key] = true
			return value, true
		}
	}
	return "", false
}

func (u *kvUse) empty() bool { return u.block.Len() == 0 }

// discard marks keys consumed without using their values.
func (u *kvUse) discard(keys ...string) {
	for _, key := range keys {
		if _, ok := u.block.Get(key); ok {
			u.used[key] = true
		}
	}
}

// leftovers returns the unconsumed entries in first-seen order as
// "KEY: VALUE" strings.
func (u *kvUse) leftovers() []string {
	var out []string
	for _, key := range u.block.Keys() {
		if u.used[key] {
			continue
		}
		value, _ := u.block.Get(key)
		out = append(out, key+": "+value)
	}
	return out
}

// ExtractFields resolves one raw row plus its parsed KV blocks into a
// canonical product. Field precedence is fixed: detail rows beat raw
// columns beat specs-KV, and numeric raw columns beat free text for
// dimensions and price.
func (p *Parser) ExtractFields(raw schedule.RawRow) schedule.Product {
	specs := newKVUse(p.tables.ParseKVBlock(raw.Values[schedule.ColSpecs]))
	manu := newKVUse(p.tables.ParseKVBlock(raw.Values[schedule.ColManufacturer]))
	detail := newKVUse(p.detailBlock(raw.Details))

	var product schedule.Product
	product.DocCode = optional(raw.Values[schedule.ColDocCode])
	product.ProductName = p.resolveProductName(raw, detail, specs)
	product.Brand = p.resolveBrand(raw, detail, manu, specs)
	product.Colour = resolveTextField(schedule.ColColour, "COLOUR", raw, detail, specs, manu)
	product.Finish = resolveTextField(schedule.ColFinish, "FINISH", raw, detail, specs, manu)
	product.Material = resolveTextField(schedule.ColMaterial, "MATERIAL", raw, detail, specs, nil)
	p.resolveDimensions(&product, raw, detail, specs)
	product.Qty = resolveQty(raw, detail, specs)
	product.RRP = resolveRRP(raw)
	product.ProductDescription = resolveDescription(raw)
	product.ProductDetails = resolveDetails(specs, manu, detail)
	return product
}

// detailBlock folds grouped-layout detail rows into an ordered KV block
// with normalized keys.
func (p *Parser) detailBlock(details []schedule.DetailRow) *schedule.KeyValueBlock {
	block := schedule.NewKeyValueBlock()
	for _, d := range details {
		key := p.tables.NormalizeKey(d.Key)
		value := strings.TrimSpace(d.Value)
		if key != "" && value != "" {
			block.Set(key, value)
		}
	}
	return block
}

func (p *Parser) resolveProductName(raw schedule.RawRow, detail, specs *kvUse) *string {
	if v, ok := detail.take("NAME"); ok {
		return &v
	}
	if v := raw.Values[schedule.ColProductName]; v != "" {
		return &v
	}
	if raw.ItemName != "" {
		name := raw.ItemName
		return &name
	}
	if v, ok := specs.take("PRODUCT", "NAME", "RANGE"); ok {
		return &v
	}
	return nil
}

func (p *Parser) resolveBrand(raw schedule.RawRow, detail, manu, specs *kvUse) *string {
	if v, ok := detail.take("MAKER", "BRAND", "MANUFACTURER", "SUPPLIER"); ok {
		// the manufacturer block's NAME is the same brand, not a detail
		manu.discard("NAME")
		return &v
	}
	if v, ok := manu.take("NAME"); ok {
		return &v
	}
	// a raw manufacturer cell that parsed into KV pairs holds structured
	// data, not a bare brand string
	if manu.empty() {
		if v := raw.Values[schedule.ColManufacturer]; v != "" {
			return &v
		}
	}
	if v, ok := specs.take("MAKER", "BRAND", "MANUFACTURER", "SUPPLIER"); ok {
		return &v
	}
	return nil
}

// resolveTextField applies the common colour/finish/material precedence.
// extra is an optional final fallback block (the manufacturer KV).
func resolveTextField(rawCol, key string, raw schedule.RawRow, detail, specs, extra *kvUse) *string {
	if v, ok := detail.take(key); ok {
		return &v
	}
	if v := raw.Values[rawCol]; v != "" {
		return &v
	}
	if v, ok := specs.take(key); ok {
		return &v
	}
	if extra != nil {
		if v, ok := extra.take(key); ok {
			return &v
		}
	}
	return nil
}

// resolveDimensions fills width/length/height through the cascade:
// numeric raw columns, explicit KV keys, the SIZE entry, the raw size
// column, and finally the full specs text. Earlier values are never
// overwritten.
func (p *Parser) resolveDimensions(product *schedule.Product, raw schedule.RawRow, detail, specs *kvUse) {
	product.Width = parseLengthValue(raw.Values[schedule.ColWidth])
	product.Length = parseLengthValue(raw.Values[schedule.ColLength])
	product.Height = parseLengthValue(raw.Values[schedule.ColHeight])

	takeDim := func(target **int, keys ...string) {
		if *target != nil {
			return
		}
		for _, u := range []*kvUse{detail, specs} {
			for _, key := range keys {
				value, ok := u.block.Get(key)
				if !ok {
					continue
				}
				if mm := parseLengthValue(value); mm != nil {
					u.used[key] = true
					*target = mm
					return
				}
			}
		}
	}
	takeDim(&product.Width, "WIDTH")
	takeDim(&product.Length, "LENGTH")
	takeDim(&product.Height, "HEIGHT")
	takeDim(&product.Height, "DEPTH", "THICKNESS")

	applyDims := func(d Dimensions) bool {
		gained := false
		if product.Width == nil && d.Width != nil {
			product.Width = d.Width
			gained = true
		}
		if product.Length == nil && d.Length != nil {
			product.Length = d.Length
			gained = true
		}
		if product.Height == nil && d.Height != nil {
			product.Height = d.Height
			gained = true
		}
		return gained
	}
	if product.Width == nil || product.Length == nil || product.Height == nil {
		for _, u := range []*kvUse{detail, specs} {
			if size, ok := u.block.Get("SIZE"); ok {
				if applyDims(ParseDimensions(size)) {
					u.used["SIZE"] = true
				}
			}
		}
	}
	if product.Width == nil || product.Length == nil || product.Height == nil {
		applyDims(ParseDimensions(raw.Values[schedule.ColSize]))
	}
	if product.Width == nil || product.Length == nil || product.Height == nil {
		applyDims(ParseDimensions(raw.Values[schedule.ColSpecs]))
	}
}

func resolveQty(raw schedule.RawRow, detail, specs *kvUse) *int {
	if qty := parseQty(raw.Values[schedule.ColQty]); qty != nil {
		return qty
	}
	for _, u := range []*kvUse{detail, specs} {
		if value, ok := u.block.Get("QTY"); ok {
			if qty := parseQty(value); qty != nil {
				u.used["QTY"] = true
				return qty
			}
		}
	}
	return nil
}

func resolveRRP(raw schedule.RawRow) *float64 {
	text := strings.TrimSpace(raw.Values[schedule.ColCost])
	if text == "" {
		return nil
	}
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		if value < 0 {
			return nil
		}
		return &value
	}
	return ParsePrice(text)
}

func resolveDescription(raw schedule.RawRow) *string {
	var parts []string
	if raw.Section != "" {
		parts = append(parts, raw.Section)
	}
	if v := raw.Values[schedule.ColItemLocation]; v != "" {
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " | ")
	return &joined
}

// resolveDetails serializes every KV entry no canonical field consumed,
// in order: leftover specs, leftover manufacturer, leftover detail rows.
func resolveDetails(specs, manu, detail *kvUse) *string {
	var parts []string
	parts = append(parts, specs.leftovers()...)
	parts = append(parts, manu.leftovers()...)
	parts = append(parts, detail.leftovers()...)
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " | ")
	return &joined
}

func parseQty(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n < 0 {
			return nil
		}
		return &n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if f < 0 {
			return nil
		}
		n := int(math.Round(f))
		return &n
	}
	return nil
}

func optional(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}
