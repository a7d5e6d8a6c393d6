package env

import "testing"

func TestEmptyIsTopLevel(t *testing.T) {
	if !Empty.IsTopLevel() {
		t.Error("expected the empty environment to be top level")
	}
	if Empty.Len() != 0 {
		t.Errorf("expected length 0, got %d", Empty.Len())
	}
}

func TestExtendOrdersLastVarAtIndexZero(t *testing.T) {
	e := Empty.Extend("a", "b", "c")
	if e.LexicalIndex("c") != 0 {
		t.Errorf("expected c at index 0, got %d", e.LexicalIndex("c"))
	}
	if e.LexicalIndex("b") != 1 {
		t.Errorf("expected b at index 1, got %d", e.LexicalIndex("b"))
	}
	if e.LexicalIndex("a") != 2 {
		t.Errorf("expected a at index 2, got %d", e.LexicalIndex("a"))
	}
}

func TestExtendIsNotTopLevelEvenWithZeroVars(t *testing.T) {
	e := Empty.Extend()
	if e.IsTopLevel() {
		t.Error("expected a zero-var frame to still not be top level")
	}
}

func TestIsFreeForUnboundName(t *testing.T) {
	e := Empty.Extend("a")
	if !e.IsFree("b") {
		t.Error("expected b to be free")
	}
	if e.IsFree("a") {
		t.Error("expected a to not be free")
	}
}

func TestExtendShadowsOuterBinding(t *testing.T) {
	outer := Empty.Extend("a")
	inner := outer.Extend("a")
	if inner.LexicalIndex("a") != 0 {
		t.Errorf("expected shadowed a at index 0, got %d", inner.LexicalIndex("a"))
	}
	if inner.Len() != 2 {
		t.Errorf("expected combined length 2, got %d", inner.Len())
	}
}
