package ir

import "testing"

func TestTagNameAndTagForRoundTrip(t *testing.T) {
	for k := Kind(0); k < Kind(numKinds); k++ {
		name := TagName(k)
		if name == "" {
			t.Errorf("kind %d has no tag name", k)
		}
		got, ok := TagFor(name)
		if !ok || got != k {
			t.Errorf("TagFor(%q) = %v, %v; want %v, true", name, got, ok, k)
		}
	}
}

func TestTagForUnknownName(t *testing.T) {
	if _, ok := TagFor("not-a-real-tag"); ok {
		t.Error("expected an unknown tag name to report ok=false")
	}
}

func TestIsNode(t *testing.T) {
	if !IsNode(&Quote{Datum: 1}) {
		t.Error("expected *Quote to satisfy IsNode")
	}
	if IsNode(42) {
		t.Error("expected a plain int to not satisfy IsNode")
	}
}

func TestTypecodeAndData(t *testing.T) {
	q := &Quote{Datum: "x"}
	if Typecode(q) != KindQuote {
		t.Errorf("expected KindQuote, got %v", Typecode(q))
	}
	if Data(q) != Node(q) {
		t.Errorf("expected Data to return the node itself")
	}
}
