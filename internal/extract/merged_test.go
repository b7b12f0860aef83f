package extract

import (
	"testing"

	"schedparse/ports"
)

// fakeSheet wraps a Grid with declared merged ranges for normalizer tests.
type fakeSheet struct {
	*Grid
	merged []ports.MergedRange
}

func (f *fakeSheet) MergedRanges() []ports.MergedRange { return f.merged }

// TestNormalizeMergedFillsRanges tests top-left propagation
func TestNormalizeMergedFillsRanges(t *testing.T) {
	base := NewGrid("Sheet1", 4, 4)
	base.Set(1, 1, "FLOORING")
	base.Set(3, 2, "kept")

	s := &fakeSheet{Grid: base, merged: []ports.MergedRange{
		{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 4},
	}}

	g := NormalizeMerged(s)

	for col := 1; col <= 4; col++ {
		if g.Cell(1, col) != "FLOORING" {
			t.Errorf("cell (1,%d) = %q, expected FLOORING", col, g.Cell(1, col))
		}
	}
	if g.Cell(3, 2) != "kept" {
		t.Error("cells outside merged ranges must be untouched")
	}
}

// TestNormalizeMergedSkipsMalformed tests zero-area and inverted ranges
func TestNormalizeMergedSkipsMalformed(t *testing.T) {
	base := NewGrid("Sheet1", 3, 3)
	base.Set(1, 1, "A")
	base.Set(2, 2, "B")

	s := &fakeSheet{Grid: base, merged: []ports.MergedRange{
		{MinRow: 2, MinCol: 2, MaxRow: 1, MaxCol: 1}, // inverted
		{},                                           // zero value
	}}

	g := NormalizeMerged(s)

	if g.Cell(1, 1) != "A" || g.Cell(2, 2) != "B" || g.Cell(1, 2) != "" {
		t.Error("malformed ranges must leave the sheet unchanged")
	}
}

// TestNormalizeMergedClampsBounds tests ranges past the sheet edge
func TestNormalizeMergedClampsBounds(t *testing.T) {
	base := NewGrid("Sheet1", 2, 2)
	base.Set(1, 1, "X")

	s := &fakeSheet{Grid: base, merged: []ports.MergedRange{
		{MinRow: 1, MinCol: 1, MaxRow: 10, MaxCol: 10},
	}}

	g := NormalizeMerged(s)

	if g.Cell(2, 2) != "X" {
		t.Error("in-bounds portion of the range should be filled")
	}
	if g.Cell(3, 3) != "" {
		t.Error("reads past the sheet must stay empty")
	}
}

// TestNormalizeMergedEmptyAnchor tests ranges whose top-left is blank
func TestNormalizeMergedEmptyAnchor(t *testing.T) {
	base := NewGrid("Sheet1", 2, 2)
	base.Set(2, 2, "corner")

	s := &fakeSheet{Grid: base, merged: []ports.MergedRange{
		{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2},
	}}

	g := NormalizeMerged(s)

	if g.Cell(2, 2) != "corner" {
		t.Error("an empty anchor must not erase existing values")
	}
}
