package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// memoizeAnd lowers `(and e...)`. Zero operands is Quote(#t); one
// operand passes through; otherwise it right-folds into nested Ifs.
func (m *Memoizer) memoizeAnd(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 0, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return m.buildAnd(items, e)
}

func (m *Memoizer) buildAnd(items []sexpr.Datum, e env.Env) (ir.Node, error) {
	if len(items) == 0 {
		return &ir.Quote{Datum: true}, nil
	}
	first, err := m.Memoize(items[0], e)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return first, nil
	}
	rest, err := m.buildAnd(items[1:], e)
	if err != nil {
		return nil, err
	}
	return &ir.If{Test: first, Then: rest, Else: &ir.Quote{Datum: false}}, nil
}

// memoizeOr lowers `(or e...)`. Zero operands is Quote(#f); one
// operand passes through; otherwise each head is bound via a gensym'd
// let so it is evaluated exactly once: `(let ((g e1)) (if g g (or
// e2...)))`.
func (m *Memoizer) memoizeOr(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 0, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return m.buildOr(items, e)
}

func (m *Memoizer) buildOr(items []sexpr.Datum, e env.Env) (ir.Node, error) {
	if len(items) == 0 {
		return &ir.Quote{Datum: false}, nil
	}
	firstIR, err := m.Memoize(items[0], e)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return firstIR, nil
	}
	name := string(m.reg.Gensym())
	innerEnv := e.Extend(name)
	ref := &ir.LexicalRef{Index: innerEnv.LexicalIndex(name)}
	restIR, err := m.buildOr(items[1:], innerEnv)
	if err != nil {
		return nil, err
	}
	return &ir.Let{Inits: []ir.Node{firstIR}, Body: &ir.If{Test: ref, Then: ref, Else: restIR}}, nil
}

// memoizeCond lowers `(cond clause...)`, each clause one of `(test
// expr...)`, `(test)`, `(test => proc)`, or a trailing `(else
// expr...)` — the latter two keywords recognised only while free
// (spec.md §4.3's "recognised by name when not shadowed").
func (m *Memoizer) memoizeCond(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 0, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return m.buildCond(items, e, form)
}

func (m *Memoizer) buildCond(clauses []sexpr.Datum, e env.Env, form *sexpr.Pair) (ir.Node, error) {
	if len(clauses) == 0 {
		return &ir.Quote{Datum: sexpr.TheUnspecified}, nil
	}
	clausePair, ok := sexpr.IsPair(clauses[0])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadCondClause, form, form)
	}
	parts, ok := sexpr.ToSlice(clausePair)
	if !ok || len(parts) == 0 {
		return nil, scmerr.NewSyntax(scmerr.MsgBadCondClause, form, form)
	}

	if sym, ok := sexpr.IsSymbol(parts[0]); ok && sym == "else" && e.IsFree("else") {
		if len(clauses) != 1 {
			return nil, scmerr.NewSyntax(scmerr.MsgMisplacedElseClause, form, form)
		}
		return m.memoizeSeq(parts[1:], e, form)
	}

	testIR, err := m.Memoize(parts[0], e)
	if err != nil {
		return nil, err
	}

	if len(parts) == 1 {
		// The original memoizer re-memoizes `(begin . CDR(clause))` for
		// any clause it doesn't recognize as else or =>, single-test
		// clauses included. For a single-test clause CDR(clause) is
		// `()`, so this is `(begin)`, which scm_m_begin rejects as a bad
		// expression rather than returning the test's own value —
		// preserved here rather than over-corrected into proper
		// return-test-value semantics.
		bodyIR, err := m.memoizeSeq(nil, e, form)
		if err != nil {
			return nil, err
		}
		restIR, err := m.buildCond(clauses[1:], e, form)
		if err != nil {
			return nil, err
		}
		return &ir.If{Test: testIR, Then: bodyIR, Else: restIR}, nil
	}

	if arrow, ok := sexpr.IsSymbol(parts[1]); ok && arrow == "=>" && e.IsFree("=>") {
		if len(parts) != 3 {
			return nil, scmerr.NewSyntax(scmerr.MsgBadCondClause, form, form)
		}
		name := string(m.reg.Gensym())
		innerEnv := e.Extend(name)
		ref := &ir.LexicalRef{Index: innerEnv.LexicalIndex(name)}
		procIR, err := m.Memoize(parts[2], innerEnv)
		if err != nil {
			return nil, err
		}
		restIR, err := m.buildCond(clauses[1:], innerEnv, form)
		if err != nil {
			return nil, err
		}
		return &ir.Let{Inits: []ir.Node{testIR}, Body: &ir.If{Test: ref, Then: ir.NewCall(procIR, ref), Else: restIR}}, nil
	}

	bodyIR, err := m.memoizeSeq(parts[1:], e, form)
	if err != nil {
		return nil, err
	}
	restIR, err := m.buildCond(clauses[1:], e, form)
	if err != nil {
		return nil, err
	}
	return &ir.If{Test: testIR, Then: bodyIR, Else: restIR}, nil
}
