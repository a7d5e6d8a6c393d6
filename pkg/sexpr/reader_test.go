package sexpr

import "testing"

func readOne(t *testing.T, src string) Datum {
	t.Helper()
	forms, err := NewReader(src, "test").ReadAll()
	if err != nil {
		t.Fatalf("reading %q: %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected exactly one form in %q, got %d", src, len(forms))
	}
	return forms[0]
}

func TestReadSimpleList(t *testing.T) {
	d := readOne(t, `(a b c)`)
	items, ok := ToSlice(d)
	if !ok {
		t.Fatalf("expected a proper list, got %#v", d)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if sym, ok := IsSymbol(items[i]); !ok || string(sym) != want {
			t.Errorf("item %d: expected symbol %s, got %#v", i, want, items[i])
		}
	}
}

func TestReadDottedPair(t *testing.T) {
	d := readOne(t, `(a . b)`)
	p, ok := IsPair(d)
	if !ok {
		t.Fatalf("expected a pair, got %#v", d)
	}
	if sym, ok := IsSymbol(p.Cdr); !ok || sym != "b" {
		t.Errorf("expected improper tail b, got %#v", p.Cdr)
	}
}

func TestReadBooleansAndKeyword(t *testing.T) {
	if readOne(t, `#t`) != true {
		t.Error("expected #t to read as true")
	}
	if readOne(t, `#f`) != false {
		t.Error("expected #f to read as false")
	}
	if kw, ok := readOne(t, `#:optional`).(Keyword); !ok || kw != "optional" {
		t.Errorf("expected keyword optional, got %#v", readOne(t, `#:optional`))
	}
}

func TestReadQuoteSugar(t *testing.T) {
	d := readOne(t, `'foo`)
	items, ok := ToSlice(d)
	if !ok || len(items) != 2 {
		t.Fatalf("expected (quote foo), got %#v", d)
	}
	if sym, ok := IsSymbol(items[0]); !ok || sym != "quote" {
		t.Errorf("expected leading quote symbol, got %#v", items[0])
	}
}

func TestWriteRoundTripsSimpleForms(t *testing.T) {
	cases := []string{
		`(a b c)`,
		`(a . b)`,
		`42`,
		`"hello"`,
	}
	for _, src := range cases {
		d := readOne(t, src)
		got := Write(d)
		if got != src {
			t.Errorf("Write(%q) = %q, want %q", src, got, src)
		}
	}
}

func TestProperListLengthRejectsImproperList(t *testing.T) {
	d := readOne(t, `(a . b)`)
	if _, ok := ProperListLength(d); ok {
		t.Error("expected an improper list to report ok=false")
	}
}
