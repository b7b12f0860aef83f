package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedparse/domain/schedule"
)

// TestExtractFieldsFromSpecsKV tests specs-block precedence on a
// single-layout row
func TestExtractFieldsFromSpecsKV(t *testing.T) {
	p := NewParser(nil, Options{})

	raw := schedule.RawRow{
		Row: 5,
		Values: map[string]string{
			schedule.ColDocCode:      "FCA-01 A",
			schedule.ColItemLocation: "Lounge Floor",
			schedule.ColSpecs:        "PRODUCT: ICONIC\nCOLOUR: SILVER SHADOW\nWIDTH: 3.66 METRES",
		},
	}

	product := p.ExtractFields(raw)

	require.NotNil(t, product.DocCode)
	assert.Equal(t, "FCA-01 A", *product.DocCode)
	require.NotNil(t, product.ProductName)
	assert.Equal(t, "ICONIC", *product.ProductName)
	require.NotNil(t, product.Colour)
	assert.Equal(t, "SILVER SHADOW", *product.Colour)
	require.NotNil(t, product.Width)
	assert.Equal(t, 3660, *product.Width)
	require.NotNil(t, product.ProductDescription)
	assert.Equal(t, "Lounge Floor", *product.ProductDescription)
	assert.Nil(t, product.ProductDetails, "all KV entries were consumed")
}

// TestExtractFieldsGroupedDetails tests detail-row precedence
func TestExtractFieldsGroupedDetails(t *testing.T) {
	p := NewParser(nil, Options{})

	raw := schedule.RawRow{
		Row:      12,
		ItemName: "Coffee Table",
		Values: map[string]string{
			schedule.ColDocCode: "F88",
			schedule.ColQty:     "2",
			schedule.ColCost:    "$450",
		},
		Details: []schedule.DetailRow{
			{Row: 13, Key: "Maker", Value: "Eaglestone"},
			{Row: 14, Key: "Name", Value: "Rectangular plinth coffee table"},
			{Row: 15, Key: "Size", Value: "1200 (W) x 800 (D) x 330 (H) mm"},
		},
	}

	product := p.ExtractFields(raw)

	require.NotNil(t, product.Brand)
	assert.Equal(t, "Eaglestone", *product.Brand)
	require.NotNil(t, product.ProductName)
	assert.Equal(t, "Rectangular plinth coffee table", *product.ProductName)
	require.NotNil(t, product.Width)
	assert.Equal(t, 1200, *product.Width)
	require.NotNil(t, product.Length)
	assert.Equal(t, 800, *product.Length)
	require.NotNil(t, product.Height)
	assert.Equal(t, 330, *product.Height)
	require.NotNil(t, product.Qty)
	assert.Equal(t, 2, *product.Qty)
	require.NotNil(t, product.RRP)
	assert.Equal(t, 450.0, *product.RRP)
}

// TestExtractFieldsBrandPrecedence tests the manufacturer cascade
func TestExtractFieldsBrandPrecedence(t *testing.T) {
	p := NewParser(nil, Options{})

	// structured manufacturer cell: NAME entry supplies the brand
	structured := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{
			schedule.ColDocCode:      "A1",
			schedule.ColManufacturer: "NAME - VICTORIA CARPETS\nPHONE - 1300 000 000",
		},
	})
	require.NotNil(t, structured.Brand)
	assert.Equal(t, "VICTORIA CARPETS", *structured.Brand)

	// bare manufacturer cell: the raw value is the brand
	bare := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{
			schedule.ColDocCode:      "A2",
			schedule.ColManufacturer: "Eaglestone",
		},
	})
	require.NotNil(t, bare.Brand)
	assert.Equal(t, "Eaglestone", *bare.Brand)
}

// TestExtractFieldsBrandFromDetailExcludesManufacturerName tests that a
// detail-row brand keeps the manufacturer NAME entry out of leftovers
func TestExtractFieldsBrandFromDetailExcludesManufacturerName(t *testing.T) {
	p := NewParser(nil, Options{})

	product := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{
			schedule.ColDocCode:      "A3",
			schedule.ColManufacturer: "NAME - VICTORIA CARPETS\nPHONE - 1300 000 000",
		},
		Details: []schedule.DetailRow{
			{Row: 9, Key: "Maker", Value: "Victoria Carpets"},
		},
	})

	require.NotNil(t, product.Brand)
	assert.Equal(t, "Victoria Carpets", *product.Brand)
	require.NotNil(t, product.ProductDetails)
	assert.Equal(t, "PHONE: 1300 000 000", *product.ProductDetails)
}

// TestExtractFieldsLeftoverDetails tests product_details serialization
func TestExtractFieldsLeftoverDetails(t *testing.T) {
	p := NewParser(nil, Options{})

	product := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{
			schedule.ColDocCode: "B1",
			schedule.ColSpecs:   "PRODUCT: ICONIC\nSTYLE: TWIST\nPILE HEIGHT: 12mm",
		},
	})

	require.NotNil(t, product.ProductDetails)
	assert.Equal(t, "STYLE: TWIST | PILE_HEIGHT: 12mm", *product.ProductDetails)
}

// TestExtractFieldsNumericRawColumnsWin tests dimension and qty column
// priority over free text
func TestExtractFieldsNumericRawColumnsWin(t *testing.T) {
	p := NewParser(nil, Options{})

	product := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{
			schedule.ColDocCode: "C1",
			schedule.ColWidth:   "600",
			schedule.ColQty:     "3",
			schedule.ColSpecs:   "WIDTH: 900MM\nQTY: 7",
		},
	})

	require.NotNil(t, product.Width)
	assert.Equal(t, 600, *product.Width)
	require.NotNil(t, product.Qty)
	assert.Equal(t, 3, *product.Qty)
}

// TestExtractFieldsSectionInDescription tests the description join
func TestExtractFieldsSectionInDescription(t *testing.T) {
	p := NewParser(nil, Options{})

	product := p.ExtractFields(schedule.RawRow{
		Section: "FLOORING",
		Values: map[string]string{
			schedule.ColDocCode:      "D1",
			schedule.ColItemLocation: "Hallway",
		},
	})

	require.NotNil(t, product.ProductDescription)
	assert.Equal(t, "FLOORING | Hallway", *product.ProductDescription)
}

// TestHasMeaningfulData tests the empty-product filter input
func TestHasMeaningfulData(t *testing.T) {
	p := NewParser(nil, Options{})

	empty := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{schedule.ColQty: "4"},
	})
	assert.False(t, empty.HasMeaningfulData(), "qty alone is not meaningful")

	named := p.ExtractFields(schedule.RawRow{
		Values: map[string]string{schedule.ColProductName: "Pendant Light"},
	})
	assert.True(t, named.HasMeaningfulData())
}
