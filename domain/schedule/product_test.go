package schedule

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func floatPtr(f float64) *float64 {
	return &f
}

// TestHasMeaningfulData tests the keep-or-discard rule for extracted rows.
func TestHasMeaningfulData(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"empty", Product{}, false},
		{"doc code only", Product{DocCode: strPtr("FCA-01")}, true},
		{"name only", Product{ProductName: strPtr("Iconic Carpet")}, true},
		{"brand only", Product{Brand: strPtr("Victoria Carpets")}, true},
		{"qty only", Product{Qty: intPtr(3)}, false},
		{"price only", Product{RRP: floatPtr(120)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.HasMeaningfulData(); got != tt.want {
				t.Errorf("HasMeaningfulData() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMissingKeyFieldCount tests the sparseness measure.
func TestMissingKeyFieldCount(t *testing.T) {
	empty := Product{}
	if got := empty.MissingKeyFieldCount(); got != 5 {
		t.Errorf("empty product: got %d, want 5", got)
	}

	full := Product{
		ProductName: strPtr("Iconic"),
		Brand:       strPtr("Victoria"),
		Colour:      strPtr("Silver"),
		Finish:      strPtr("Matt"),
		Material:    strPtr("Wool"),
	}
	if got := full.MissingKeyFieldCount(); got != 0 {
		t.Errorf("full product: got %d, want 0", got)
	}

	partial := Product{ProductName: strPtr("Iconic"), DocCode: strPtr("FCA-01")}
	if got := partial.MissingKeyFieldCount(); got != 4 {
		t.Errorf("partial product: got %d, want 4", got)
	}
}

// TestApplyPatch tests that patches fill gaps without overwriting.
func TestApplyPatch(t *testing.T) {
	product := Product{
		ProductName: strPtr("Iconic"),
		Width:       intPtr(3660),
	}
	product.ApplyPatch(ProductPatch{
		ProductName: strPtr("Something Else"),
		Brand:       strPtr("Victoria"),
		Width:       intPtr(100),
		Height:      intPtr(12),
	})

	if *product.ProductName != "Iconic" {
		t.Errorf("name overwritten: %q", *product.ProductName)
	}
	if *product.Width != 3660 {
		t.Errorf("width overwritten: %d", *product.Width)
	}
	if product.Brand == nil || *product.Brand != "Victoria" {
		t.Errorf("brand not filled: %v", product.Brand)
	}
	if product.Height == nil || *product.Height != 12 {
		t.Errorf("height not filled: %v", product.Height)
	}
}
