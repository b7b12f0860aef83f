package schedule

// Product is a single product record extracted from a design schedule.
// Every field is optional: missing data becomes nil rather than an error,
// so sparse schedules degrade gracefully instead of failing validation.
type Product struct {
	DocCode            *string  `json:"doc_code"`
	ProductName        *string  `json:"product_name"`
	Brand              *string  `json:"brand"`
	Colour             *string  `json:"colour"`
	Finish             *string  `json:"finish"`
	Material           *string  `json:"material"`
	Width              *int     `json:"width"`  // millimetres
	Length             *int     `json:"length"` // millimetres
	Height             *int     `json:"height"` // millimetres
	Qty                *int     `json:"qty"`
	RRP                *float64 `json:"rrp"`
	FeatureImage       *string  `json:"feature_image"`
	ProductDescription *string  `json:"product_description"`
	ProductDetails     *string  `json:"product_details"`
}

// HasMeaningfulData reports whether at least one descriptive field is
// populated. Products failing this check are dropped by the orchestrator.
func (p Product) HasMeaningfulData() bool {
	for _, f := range []*string{
		p.DocCode, p.ProductName, p.Brand, p.Colour,
		p.Finish, p.Material, p.ProductDescription, p.ProductDetails,
	} {
		if f != nil && *f != "" {
			return true
		}
	}
	return false
}

// MissingKeyFieldCount counts nil descriptive fields that identify a
// product. Used by the enhancement layer to decide whether a product is
// sparse enough to be worth a gap-fill call.
func (p Product) MissingKeyFieldCount() int {
	missing := 0
	for _, f := range []*string{p.ProductName, p.Brand, p.Colour, p.Finish, p.Material} {
		if f == nil {
			missing++
		}
	}
	return missing
}

// ParseResult is the caller-visible outcome of parsing one workbook.
type ParseResult struct {
	ScheduleName string    `json:"schedule_name"`
	Products     []Product `json:"products"`
}

// ProductPatch carries partial fields produced by an external enhancement
// pass. Nil fields are absent; a patch never clears an existing value.
type ProductPatch struct {
	ProductName *string  `json:"product_name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Colour      *string  `json:"colour,omitempty"`
	Finish      *string  `json:"finish,omitempty"`
	Material    *string  `json:"material,omitempty"`
	Width       *int     `json:"width,omitempty"`
	Length      *int     `json:"length,omitempty"`
	Height      *int     `json:"height,omitempty"`
	Qty         *int     `json:"qty,omitempty"`
	RRP         *float64 `json:"rrp,omitempty"`
}

// ApplyPatch fills nil fields of the product from the patch. Populated
// fields are never overwritten.
func (p *Product) ApplyPatch(patch ProductPatch) {
	if p.ProductName == nil {
		p.ProductName = patch.ProductName
	}
	if p.Brand == nil {
		p.Brand = patch.Brand
	}
	if p.Colour == nil {
		p.Colour = patch.Colour
	}
	if p.Finish == nil {
		p.Finish = patch.Finish
	}
	if p.Material == nil {
		p.Material = patch.Material
	}
	if p.Width == nil {
		p.Width = patch.Width
	}
	if p.Length == nil {
		p.Length = patch.Length
	}
	if p.Height == nil {
		p.Height = patch.Height
	}
	if p.Qty == nil {
		p.Qty = patch.Qty
	}
	if p.RRP == nil {
		p.RRP = patch.RRP
	}
}
