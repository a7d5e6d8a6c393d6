package unmemoize

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/memoize"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// fixtures is a small corpus of Scheme forms chosen to exercise every
// node kind the memoizer can produce, in the teacher's own
// TestDWScriptFixtures-style table-of-sources-to-snapshots shape.
var fixtures = []struct {
	name string
	src  string
}{
	{"quote", `(quote foo)`},
	{"self-evaluating", `42`},
	{"if-two-arm", `(if #t 1 2)`},
	{"if-one-arm", `(if #t 1)`},
	{"begin", `(begin 1 2 3)`},
	{"lambda-fixed", `(lambda (a b) a)`},
	{"lambda-rest", `(lambda (a . rest) rest)`},
	{"lambda-star", `(lambda* (a #:optional (b 1) #:rest r #:key (c 2)) a)`},
	{"case-lambda", `(case-lambda (() 0) ((a) a))`},
	{"let", `(let ((a 1) (b 2)) b)`},
	{"named-let", `(let loop ((i 0)) (loop i))`},
	{"letrec", `(letrec ((even? (lambda (n) n)) (odd? (lambda (n) n))) (even? 1))`},
	{"let-star", `(let* ((a 1) (b a)) b)`},
	{"define-value", `(define x 1)`},
	{"define-lambda-sugar", `(define (f a) a)`},
	{"set-lexical", `(lambda (a) (set! a 2))`},
	{"set-toplevel", `(set! x 2)`},
	{"module-ref-public", `(@ (scheme base) car)`},
	{"module-set", `(set! (@ (scheme base) car) cons)`},
	{"call", `(f 1 2)`},
	{"with-fluids", `(with-fluids ((f 1)) f)`},
	{"apply", `(@apply f args)`},
	{"call-cc", `(@call-with-current-continuation f)`},
	{"call-with-values", `(@call-with-values producer consumer)`},
	{"dynamic-wind", `(@dynamic-wind before thunk after)`},
	{"prompt", `(@prompt tag thunk handler)`},
	{"and", `(and 1 2 3)`},
	{"or", `(or 1 2)`},
	{"cond", `(cond (#f 1) (2 => (lambda (x) x)) (else 3))`},
}

// TestUnmemoizeFixtures memoizes each fixture from the empty
// environment, un-memoizes the result, and snapshot-tests the printed
// S-expression. Together the fixtures reach every one of the nineteen
// node kinds at least once.
func TestUnmemoizeFixtures(t *testing.T) {
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			reg := module.NewRegistry("g")
			m := memoize.New(reg, memoize.Options{})
			forms, err := sexpr.NewReader(fx.src, "test").ReadAll()
			if err != nil {
				t.Fatalf("reading %q: %v", fx.src, err)
			}
			if len(forms) != 1 {
				t.Fatalf("expected exactly one form in %q, got %d", fx.src, len(forms))
			}
			node, err := m.Memoize(forms[0], env.Empty)
			if err != nil {
				t.Fatalf("memoizing %q: %v", fx.src, err)
			}
			printed := sexpr.Write(Unmemoize(node))
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_unmemoized", fx.name), printed)
		})
	}
}
