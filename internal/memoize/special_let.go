package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

type letBinding struct {
	Name string
	Init sexpr.Datum
}

// parseBindings parses a `((v1 e1) (v2 e2) ...)` binding list, used by
// let/let*/letrec/letrec*.
func parseBindings(bindingsList sexpr.Datum, form *sexpr.Pair) ([]letBinding, error) {
	items, ok := sexpr.ToSlice(bindingsList)
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadBindings, form, form)
	}
	bindings := make([]letBinding, len(items))
	names := make([]string, len(items))
	for i, item := range items {
		pair, ok := sexpr.IsPair(item)
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadBindings, form, form)
		}
		parts, ok := sexpr.ToSlice(pair)
		if !ok || len(parts) != 2 {
			return nil, scmerr.NewSyntax(scmerr.MsgBadBindings, form, form)
		}
		sym, ok := sexpr.IsSymbol(parts[0])
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadBindings, form, form)
		}
		bindings[i] = letBinding{Name: string(sym), Init: parts[1]}
		names[i] = string(sym)
	}
	if _, dup := hasDuplicateSymbols(names); dup {
		return nil, scmerr.NewSyntax(scmerr.MsgDuplicateBinding, form, form)
	}
	return bindings, nil
}

// memoizeLet lowers plain `(let ((v e) ...) body...)` and named
// `(let name ((v e) ...) body...)`. The named form is expanded into
// an equivalent letrec binding a self-recursive procedure, exactly as
// the teacher's macro layer expands sugar into primitive forms before
// memoizing it.
func (m *Memoizer) memoizeLet(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}

	if nameSym, ok := sexpr.IsSymbol(items[0]); ok {
		if len(items) < 2 {
			return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
		}
		bindings, err := parseBindings(items[1], form)
		if err != nil {
			return nil, err
		}
		bodyForms := items[2:]

		formals := make([]sexpr.Datum, len(bindings))
		inits := make([]sexpr.Datum, len(bindings))
		for i, b := range bindings {
			formals[i] = sexpr.Symbol(b.Name)
			inits[i] = b.Init
		}
		lambdaForm := sexpr.ListAt(form.Pos(),
			append([]sexpr.Datum{sexpr.Symbol("lambda"), sexpr.List(formals...)}, bodyForms...)...)
		bindingForm := sexpr.List(sexpr.Datum(nameSym), lambdaForm)
		callForm := sexpr.ListAt(form.Pos(), append([]sexpr.Datum{sexpr.Datum(nameSym)}, inits...)...)
		letrecForm := sexpr.ListAt(form.Pos(), sexpr.Symbol("letrec"), sexpr.List(bindingForm), callForm)
		return m.Memoize(letrecForm, e)
	}

	bindings, err := parseBindings(items[0], form)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(bindings))
	initIRs := make([]ir.Node, len(bindings))
	for i, b := range bindings {
		names[i] = b.Name
		initIR, err := m.Memoize(b.Init, e)
		if err != nil {
			return nil, err
		}
		initIRs[i] = initIR
	}
	bodyEnv := e.Extend(names...)
	body, err := m.memoizeSeq(items[1:], bodyEnv, form)
	if err != nil {
		return nil, err
	}
	return &ir.Let{Inits: initIRs, Body: body}, nil
}

// memoizeLetrec lowers `(letrec ((v e) ...) body...)` and `(letrec*
// ...)` identically: the frame is extended with every name up front
// (each initially unspecified), then each init is memoized against the
// full extended environment and assigned in source order via a
// LexicalSet, before the body runs. Sequential LexicalSet evaluation
// already gives letrec* its left-to-right initialization order, so a
// single lowering serves both keywords.
func (m *Memoizer) memoizeLetrec(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	bindings, err := parseBindings(items[0], form)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Name
	}
	bodyEnv := e.Extend(names...)

	inits := make([]ir.Node, len(bindings))
	var sets []ir.Node
	for i, b := range bindings {
		inits[i] = &ir.Quote{Datum: sexpr.TheUnspecified}
		valueIR, err := m.Memoize(b.Init, bodyEnv)
		if err != nil {
			return nil, err
		}
		sets = append(sets, &ir.LexicalSet{Index: bodyEnv.LexicalIndex(b.Name), Value: valueIR})
	}

	body, err := m.memoizeSeq(items[1:], bodyEnv, form)
	if err != nil {
		return nil, err
	}
	if len(sets) > 0 {
		body = ir.NewBegin(append(sets, body)...)
	}
	return &ir.Let{Inits: inits, Body: body}, nil
}

// memoizeLetStar lowers `(let* ((v e) ...) body...)` as nested
// single-binding lets, so that each init sees only the bindings
// textually before it.
func (m *Memoizer) memoizeLetStar(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	bindings, err := parseBindings(items[0], form)
	if err != nil {
		return nil, err
	}
	return m.buildLetStarChain(bindings, items[1:], form, e)
}

func (m *Memoizer) buildLetStarChain(bindings []letBinding, bodyForms []sexpr.Datum, form *sexpr.Pair, e env.Env) (ir.Node, error) {
	if len(bindings) == 0 {
		bodyEnv := e.Extend()
		body, err := m.memoizeSeq(bodyForms, bodyEnv, form)
		if err != nil {
			return nil, err
		}
		return &ir.Let{Body: body}, nil
	}
	first := bindings[0]
	initIR, err := m.Memoize(first.Init, e)
	if err != nil {
		return nil, err
	}
	innerEnv := e.Extend(first.Name)
	innerBody, err := m.buildLetStarChain(bindings[1:], bodyForms, form, innerEnv)
	if err != nil {
		return nil, err
	}
	return &ir.Let{Inits: []ir.Node{initIR}, Body: innerBody}, nil
}
