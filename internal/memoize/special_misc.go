package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// memoizeEvalWhen lowers `(eval-when (situation...) body...)`. This
// memoizer has a single phase — there is no separate compile pass — so
// a situations list naming "eval" or "load" has its body memoized and
// run normally; any other situations list (e.g. only "compile") is
// inert here and lowers to Quote(Unspecified) without even memoizing
// the body, mirroring the one-phase collapse Guile's evaluator itself
// performs outside of a true cross-phase compiler.
func (m *Memoizer) memoizeEvalWhen(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	situations, ok := sexpr.ToSlice(items[0])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
	}
	runsHere := false
	for _, s := range situations {
		if sym, ok := sexpr.IsSymbol(s); ok && (sym == "eval" || sym == "load") {
			runsHere = true
			break
		}
	}
	if !runsHere {
		return &ir.Quote{Datum: sexpr.TheUnspecified}, nil
	}
	return m.memoizeSeq(items[1:], e, form)
}

// memoizeWithFluids lowers `(with-fluids ((fluid val) ...) body...)`.
// Fluid and value expressions are memoized in the surrounding
// environment; the body introduces no new lexical names (fluid
// rebinding is dynamic, not lexical), so it is memoized in the same
// environment too.
func (m *Memoizer) memoizeWithFluids(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	bindings, ok := sexpr.ToSlice(items[0])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadWithFluidsBinding, form, form)
	}
	fluids := make([]ir.Node, len(bindings))
	vals := make([]ir.Node, len(bindings))
	for i, b := range bindings {
		pair, ok := sexpr.IsPair(b)
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadWithFluidsBinding, form, form)
		}
		parts, ok := sexpr.ToSlice(pair)
		if !ok || len(parts) != 2 {
			return nil, scmerr.NewSyntax(scmerr.MsgBadWithFluidsBinding, form, form)
		}
		fluidIR, err := m.Memoize(parts[0], e)
		if err != nil {
			return nil, err
		}
		valIR, err := m.Memoize(parts[1], e)
		if err != nil {
			return nil, err
		}
		fluids[i] = fluidIR
		vals[i] = valIR
	}
	body, err := m.memoizeSeq(items[1:], e, form)
	if err != nil {
		return nil, err
	}
	return &ir.WithFluids{Fluids: fluids, Vals: vals, Body: body}, nil
}
