package unmemoize

import (
	"testing"

	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/memoize"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

func memoizeSrc(t *testing.T, src string) sexpr.Datum {
	t.Helper()
	forms, err := sexpr.NewReader(src, "test").ReadAll()
	if err != nil || len(forms) != 1 {
		t.Fatalf("reading %q: %v", src, err)
	}
	reg := module.NewRegistry("g")
	m := memoize.New(reg, memoize.Options{})
	n, err := m.Memoize(forms[0], env.Empty)
	if err != nil {
		t.Fatalf("memoizing %q: %v", src, err)
	}
	return Unmemoize(n)
}

func TestUnmemoizeLexicalRefUsesIndexConvention(t *testing.T) {
	got := sexpr.Write(memoizeSrc(t, `(lambda (a b) a)`))
	want := `(lambda (_0 _1) <1>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnmemoizeLetUsesPlaceholderName(t *testing.T) {
	got := sexpr.Write(memoizeSrc(t, `(let ((a 1)) a)`))
	want := `(let ((_ (quote 1))) <0>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnmemoizeIfDropsUnspecifiedElse(t *testing.T) {
	got := sexpr.Write(memoizeSrc(t, `(if #t 1)`))
	want := `(if (quote #t) (quote 1))`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
