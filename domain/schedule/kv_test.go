package schedule

import (
	"reflect"
	"testing"
)

// TestKeyValueBlockFirstWins tests that duplicate keys keep the first value.
func TestKeyValueBlockFirstWins(t *testing.T) {
	b := NewKeyValueBlock()
	b.Set("COLOUR", "OATMEAL")
	b.Set("COLOUR", "GREY")
	b.Set("MATERIAL", "WOOL")

	if v, _ := b.Get("COLOUR"); v != "OATMEAL" {
		t.Errorf("expected OATMEAL, got %q", v)
	}
	if !reflect.DeepEqual(b.Keys(), []string{"COLOUR", "MATERIAL"}) {
		t.Errorf("unexpected key order: %v", b.Keys())
	}
}

// TestKeyValueBlockFirst tests lookup across alternative keys.
func TestKeyValueBlockFirst(t *testing.T) {
	b := NewKeyValueBlock()
	b.Set("MAKER", "Eaglestone")

	v, ok := b.First("BRAND", "MAKER", "SUPPLIER")
	if !ok || v != "Eaglestone" {
		t.Errorf("expected Eaglestone, got %q (%v)", v, ok)
	}
	if _, ok := b.First("FINISH"); ok {
		t.Error("expected no match for FINISH")
	}
}

// TestMerge tests cross-block precedence.
func TestMerge(t *testing.T) {
	a := NewKeyValueBlock()
	a.Set("COLOUR", "OATMEAL")
	b := NewKeyValueBlock()
	b.Set("COLOUR", "GREY")
	b.Set("QTY", "2")

	merged := Merge(a, nil, b)
	if v, _ := merged.Get("COLOUR"); v != "OATMEAL" {
		t.Errorf("expected first block to win, got %q", v)
	}
	if merged.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", merged.Len())
	}
}

// TestNilBlockLen tests that a nil block reports empty.
func TestNilBlockLen(t *testing.T) {
	var b *KeyValueBlock
	if b.Len() != 0 {
		t.Errorf("expected 0, got %d", b.Len())
	}
}
