package memoize

import (
	"testing"

	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

func read(t *testing.T, src string) sexpr.Datum {
	t.Helper()
	forms, err := sexpr.NewReader(src, "test").ReadAll()
	if err != nil {
		t.Fatalf("reading %q: %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected exactly one form in %q, got %d", src, len(forms))
	}
	return forms[0]
}

func newMemoizer() *Memoizer {
	reg := module.NewRegistry("g")
	return New(reg, Options{})
}

func memoizeSrc(t *testing.T, src string) ir.Node {
	t.Helper()
	m := newMemoizer()
	n, err := m.Memoize(read(t, src), env.Empty)
	if err != nil {
		t.Fatalf("memoizing %q: %v", src, err)
	}
	return n
}

func TestMemoizeQuote(t *testing.T) {
	n := memoizeSrc(t, `(quote foo)`)
	q, ok := n.(*ir.Quote)
	if !ok {
		t.Fatalf("expected *ir.Quote, got %T", n)
	}
	if sym, ok := sexpr.IsSymbol(q.Datum); !ok || sym != "foo" {
		t.Errorf("expected quoted symbol foo, got %v", q.Datum)
	}
}

func TestMemoizeSelfEvaluating(t *testing.T) {
	n := memoizeSrc(t, `42`)
	q, ok := n.(*ir.Quote)
	if !ok {
		t.Fatalf("expected *ir.Quote, got %T", n)
	}
	if q.Datum != int64(42) {
		t.Errorf("expected 42, got %v (%T)", q.Datum, q.Datum)
	}
}

func TestMemoizeIfWithoutElse(t *testing.T) {
	n := memoizeSrc(t, `(if #t 1)`)
	ifNode, ok := n.(*ir.If)
	if !ok {
		t.Fatalf("expected *ir.If, got %T", n)
	}
	elseQuote, ok := ifNode.Else.(*ir.Quote)
	if !ok || !sexpr.IsUnspecified(elseQuote.Datum) {
		t.Errorf("expected unspecified else-branch, got %#v", ifNode.Else)
	}
}

func TestMemoizeLambdaFixedArity(t *testing.T) {
	n := memoizeSrc(t, `(lambda (a b) a)`)
	lam, ok := n.(*ir.Lambda)
	if !ok {
		t.Fatalf("expected *ir.Lambda, got %T", n)
	}
	if lam.Arity.Shape != ir.ArityFixed || lam.Arity.Nreq != 2 {
		t.Errorf("expected fixed arity 2, got %#v", lam.Arity)
	}
	ref, ok := lam.Body.(*ir.LexicalRef)
	if !ok {
		t.Fatalf("expected body *ir.LexicalRef, got %T", lam.Body)
	}
	// (a b) extended: b is index 0, a is index 1.
	if ref.Index != 1 {
		t.Errorf("expected a at index 1, got %d", ref.Index)
	}
}

func TestMemoizeLambdaRestArity(t *testing.T) {
	n := memoizeSrc(t, `(lambda (a . rest) rest)`)
	lam, ok := n.(*ir.Lambda)
	if !ok {
		t.Fatalf("expected *ir.Lambda, got %T", n)
	}
	if lam.Arity.Shape != ir.ArityRest || lam.Arity.Nreq != 1 || !lam.Arity.RestFlag {
		t.Errorf("expected rest arity with nreq=1, got %#v", lam.Arity)
	}
}

func TestMemoizeLambdaStarOptionalAndKey(t *testing.T) {
	n := memoizeSrc(t, `(lambda* (a #:optional (b 1) #:key (c 2)) a)`)
	lam, ok := n.(*ir.Lambda)
	if !ok {
		t.Fatalf("expected *ir.Lambda, got %T", n)
	}
	if lam.Arity.Shape != ir.ArityFull || lam.Arity.Nreq != 1 || lam.Arity.Nopt != 1 {
		t.Errorf("expected full arity nreq=1 nopt=1, got %#v", lam.Arity)
	}
	if lam.Arity.Kw == nil || len(lam.Arity.Kw.Keywords) != 1 {
		t.Fatalf("expected one keyword entry, got %#v", lam.Arity.Kw)
	}
	if len(lam.Arity.Inits) != 2 {
		t.Errorf("expected 2 inits (1 optional + 1 keyword), got %d", len(lam.Arity.Inits))
	}
}

func TestMemoizeCaseLambdaChainsAlternate(t *testing.T) {
	n := memoizeSrc(t, `(case-lambda (() 0) ((a) a))`)
	lam, ok := n.(*ir.Lambda)
	if !ok {
		t.Fatalf("expected *ir.Lambda, got %T", n)
	}
	if lam.Arity.Nreq != 0 {
		t.Errorf("expected first clause nreq=0, got %d", lam.Arity.Nreq)
	}
	if lam.Arity.Alternate == nil {
		t.Fatal("expected an alternate clause")
	}
	if lam.Arity.Alternate.Arity.Nreq != 1 {
		t.Errorf("expected second clause nreq=1, got %d", lam.Arity.Alternate.Arity.Nreq)
	}
}

func TestMemoizeLet(t *testing.T) {
	n := memoizeSrc(t, `(let ((a 1) (b 2)) b)`)
	letNode, ok := n.(*ir.Let)
	if !ok {
		t.Fatalf("expected *ir.Let, got %T", n)
	}
	if len(letNode.Inits) != 2 {
		t.Fatalf("expected 2 inits, got %d", len(letNode.Inits))
	}
	ref, ok := letNode.Body.(*ir.LexicalRef)
	if !ok || ref.Index != 0 {
		t.Errorf("expected body referencing index 0 (b), got %#v", letNode.Body)
	}
}

func TestMemoizeNamedLetExpandsToSelfCall(t *testing.T) {
	n := memoizeSrc(t, `(let loop ((i 0)) (loop i))`)
	letNode, ok := n.(*ir.Let)
	if !ok {
		t.Fatalf("expected letrec-shaped *ir.Let, got %T", n)
	}
	begin, ok := letNode.Body.(*ir.Begin)
	if !ok || len(begin.Forms) != 2 {
		t.Fatalf("expected a 2-form begin (set! + call), got %#v", letNode.Body)
	}
	if _, ok := begin.Forms[1].(*ir.Call); !ok {
		t.Errorf("expected final form to be the self-call, got %T", begin.Forms[1])
	}
}

func TestMemoizeLetStarSequentialScope(t *testing.T) {
	n := memoizeSrc(t, `(let* ((a 1) (b a)) b)`)
	outer, ok := n.(*ir.Let)
	if !ok {
		t.Fatalf("expected *ir.Let, got %T", n)
	}
	inner, ok := outer.Body.(*ir.Let)
	if !ok {
		t.Fatalf("expected nested *ir.Let for second binding, got %T", outer.Body)
	}
	ref, ok := inner.Inits[0].(*ir.LexicalRef)
	if !ok || ref.Index != 0 {
		t.Errorf("expected b's init to reference a at index 0, got %#v", inner.Inits[0])
	}
}

func TestMemoizeAndShortCircuitsAsIf(t *testing.T) {
	n := memoizeSrc(t, `(and 1 2)`)
	ifNode, ok := n.(*ir.If)
	if !ok {
		t.Fatalf("expected *ir.If, got %T", n)
	}
	// The last operand passes through unwrapped, so the then-branch is
	// the memoized 2 itself rather than a further If.
	q, ok := ifNode.Then.(*ir.Quote)
	if !ok || q.Datum != int64(2) {
		t.Errorf("expected then-branch Quote(2) for the last and-operand, got %#v", ifNode.Then)
	}
}

func TestMemoizeOrBindsGensym(t *testing.T) {
	n := memoizeSrc(t, `(or 1 2)`)
	letNode, ok := n.(*ir.Let)
	if !ok {
		t.Fatalf("expected *ir.Let wrapping gensym binding, got %T", n)
	}
	if len(letNode.Inits) != 1 {
		t.Fatalf("expected one init, got %d", len(letNode.Inits))
	}
}

func TestMemoizeCondElseOnlyWhenFree(t *testing.T) {
	n := memoizeSrc(t, `(cond (#f 1) (else 2))`)
	ifNode, ok := n.(*ir.If)
	if !ok {
		t.Fatalf("expected *ir.If, got %T", n)
	}
	q, ok := ifNode.Else.(*ir.Quote)
	if !ok || q.Datum != int64(2) {
		t.Errorf("expected else branch to memoize to Quote(2), got %#v", ifNode.Else)
	}
}

func TestMemoizeCondArrowClause(t *testing.T) {
	n := memoizeSrc(t, `(cond (1 => (lambda (x) x)))`)
	letNode, ok := n.(*ir.Let)
	if !ok {
		t.Fatalf("expected *ir.Let wrapping test binding, got %T", n)
	}
	ifNode, ok := letNode.Body.(*ir.If)
	if !ok {
		t.Fatalf("expected *ir.If body, got %T", letNode.Body)
	}
	if _, ok := ifNode.Then.(*ir.Call); !ok {
		t.Errorf("expected => clause's then-branch to be a call, got %T", ifNode.Then)
	}
}

// A single-test clause `(test)` re-memoizes to `(begin)`, which is a
// syntax error (matching the original's scm_m_begin, which rejects an
// empty body) rather than returning the test's own value.
func TestMemoizeCondSingleElementClauseIsBadExpression(t *testing.T) {
	m := newMemoizer()
	_, err := m.Memoize(read(t, `(cond (1))`), env.Empty)
	if err == nil {
		t.Fatal("expected an error for a single-element cond clause")
	}
}

func TestMemoizeDefineAtTopLevel(t *testing.T) {
	n := memoizeSrc(t, `(define x 1)`)
	def, ok := n.(*ir.Define)
	if !ok {
		t.Fatalf("expected *ir.Define, got %T", n)
	}
	if def.Name != "x" {
		t.Errorf("expected name x, got %s", def.Name)
	}
}

func TestMemoizeDefineLambdaSugar(t *testing.T) {
	n := memoizeSrc(t, `(define (f a) a)`)
	def, ok := n.(*ir.Define)
	if !ok {
		t.Fatalf("expected *ir.Define, got %T", n)
	}
	if _, ok := def.Value.(*ir.Lambda); !ok {
		t.Errorf("expected lambda-sugar value, got %T", def.Value)
	}
}

func TestMemoizeZeroArgLambdaBodyIsNotTopLevel(t *testing.T) {
	m := newMemoizer()
	_, err := m.Memoize(read(t, `(lambda () (define x 1))`), env.Empty)
	if err == nil {
		t.Fatal("expected a bad-define-placement error for a zero-arg lambda body")
	}
}

func TestMemoizeSetOnLexical(t *testing.T) {
	n := memoizeSrc(t, `(lambda (a) (set! a 2))`)
	lam := n.(*ir.Lambda)
	set, ok := lam.Body.(*ir.LexicalSet)
	if !ok {
		t.Fatalf("expected *ir.LexicalSet, got %T", lam.Body)
	}
	if set.Index != 0 {
		t.Errorf("expected index 0, got %d", set.Index)
	}
}

func TestMemoizeModuleReferencePublic(t *testing.T) {
	n := memoizeSrc(t, `(@ (scheme base) car)`)
	ref, ok := n.(*ir.ModuleRef)
	if !ok {
		t.Fatalf("expected *ir.ModuleRef, got %T", n)
	}
	b := ref.Load()
	if !b.Public {
		t.Error("expected public reference for @")
	}
	if b.Sym != "car" {
		t.Errorf("expected sym car, got %s", b.Sym)
	}
}

func TestMemoizeCallOrdinary(t *testing.T) {
	n := memoizeSrc(t, `(f 1 2)`)
	call, ok := n.(*ir.Call)
	if !ok {
		t.Fatalf("expected *ir.Call, got %T", n)
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(call.Args))
	}
}

func TestMemoizeWithFluids(t *testing.T) {
	n := memoizeSrc(t, `(with-fluids ((f 1)) f)`)
	wf, ok := n.(*ir.WithFluids)
	if !ok {
		t.Fatalf("expected *ir.WithFluids, got %T", n)
	}
	if len(wf.Fluids) != 1 || len(wf.Vals) != 1 {
		t.Errorf("expected 1 fluid/val pair, got %d/%d", len(wf.Fluids), len(wf.Vals))
	}
}

func TestMemoizeEvalWhenInert(t *testing.T) {
	n := memoizeSrc(t, `(eval-when (compile) (define x 1))`)
	q, ok := n.(*ir.Quote)
	if !ok || !sexpr.IsUnspecified(q.Datum) {
		t.Errorf("expected inert eval-when to memoize to Quote(Unspecified), got %#v", n)
	}
}

func TestMemoizePrimitiveApply(t *testing.T) {
	n := memoizeSrc(t, `(@apply f args)`)
	if _, ok := n.(*ir.Apply); !ok {
		t.Fatalf("expected *ir.Apply, got %T", n)
	}
}

func TestCyclicFormalsIsDetected(t *testing.T) {
	cyclic := sexpr.NewPair(sexpr.Symbol("a"), nil)
	cyclic.Cdr = cyclic
	_, _, err := formalsWalk(cyclic, func(sexpr.Symbol) error { return nil })
	if err != errCircularFormals {
		t.Errorf("expected errCircularFormals, got %v", err)
	}
}

func TestDuplicateFormalsIsRejected(t *testing.T) {
	m := newMemoizer()
	_, err := m.Memoize(read(t, `(lambda (a a) a)`), env.Empty)
	if err == nil {
		t.Fatal("expected a duplicate-formal error")
	}
}
