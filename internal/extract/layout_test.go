package extract

import (
	"testing"

	"schedparse/domain/schedule"
)

// TestDetectLayoutGrouped tests item/detail marker recognition
func TestDetectLayoutGrouped(t *testing.T) {
	p := NewParser(nil, Options{})

	g := NewGrid("Sheet1", 6, 6)
	g.Set(2, 3, "Item:")
	g.Set(2, 4, "Coffee Table")
	g.Set(3, 3, "Maker:")
	g.Set(3, 4, "Eaglestone")
	g.Set(4, 3, "Size:")
	g.Set(4, 4, "1200 x 800 mm")

	if got := p.DetectLayout(g, 1); got != schedule.LayoutGrouped {
		t.Errorf("expected grouped layout, got %s", got)
	}
}

// TestDetectLayoutSingle tests ordinary one-row-per-product sheets
func TestDetectLayoutSingle(t *testing.T) {
	p := NewParser(nil, Options{})

	g := NewGrid("Sheet1", 5, 6)
	g.Set(2, 1, "FT-01")
	g.Set(2, 3, "PRODUCT: ICONIC\nCOLOUR: GREY")
	g.Set(3, 1, "FT-02")
	g.Set(3, 3, "PRODUCT: BLINK")

	if got := p.DetectLayout(g, 1); got != schedule.LayoutSingle {
		t.Errorf("expected single layout, got %s", got)
	}
}

// TestDetectLayoutDetailThreshold tests grouped detection without an
// item marker once enough detail keys accumulate
func TestDetectLayoutDetailThreshold(t *testing.T) {
	p := NewParser(nil, Options{DetailKeyThreshold: 3})

	g := NewGrid("Sheet1", 6, 6)
	g.Set(2, 3, "Maker:")
	g.Set(2, 4, "A")
	g.Set(3, 3, "Finish:")
	g.Set(3, 4, "B")
	g.Set(4, 3, "Colour:")
	g.Set(4, 4, "C")

	if got := p.DetectLayout(g, 1); got != schedule.LayoutGrouped {
		t.Errorf("expected grouped layout at threshold, got %s", got)
	}

	// default threshold is higher; the same sheet reads as single
	strict := NewParser(nil, Options{})
	if got := strict.DetectLayout(g, 1); got != schedule.LayoutSingle {
		t.Errorf("expected single layout below threshold, got %s", got)
	}
}

// TestDetectLayoutItemMarkerNeedsValue tests the adjacent-value rule
func TestDetectLayoutItemMarkerNeedsValue(t *testing.T) {
	p := NewParser(nil, Options{})

	g := NewGrid("Sheet1", 4, 6)
	g.Set(2, 3, "Item:")
	// no adjacent value; one stray detail key
	g.Set(3, 3, "Finish:")
	g.Set(3, 4, "Matt")

	if got := p.DetectLayout(g, 1); got != schedule.LayoutSingle {
		t.Errorf("a bare item marker should not flip the layout, got %s", got)
	}

	// a whitespace-only adjacent cell counts as bare too
	g.Set(2, 4, "   ")
	if got := p.DetectLayout(g, 1); got != schedule.LayoutSingle {
		t.Errorf("a blank-valued item marker should not flip the layout, got %s", got)
	}
}
