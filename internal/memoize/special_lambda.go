package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// memoizeLambda lowers `(lambda formals body...)`: plain positional
// formals, with an optional trailing rest parameter expressed as an
// improper list tail.
func (m *Memoizer) memoizeLambda(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	var names []string
	restSym, hasRest, werr := formalsWalk(items[0], func(sym sexpr.Symbol) error {
		names = append(names, string(sym))
		return nil
	})
	if werr != nil {
		return nil, scmerr.NewSyntax(werr.Error(), form, form)
	}
	if hasRest {
		names = append(names, string(restSym))
	}
	if dup, ok := hasDuplicateSymbols(names); ok {
		_ = dup
		return nil, scmerr.NewSyntax(scmerr.MsgDuplicateFormal, form, form)
	}

	bodyEnv := e.Extend(names...)
	body, err := m.memoizeSeq(items[1:], bodyEnv, form)
	if err != nil {
		return nil, err
	}

	nreq := len(names)
	if hasRest {
		nreq--
		return &ir.Lambda{Body: body, Arity: ir.Arity{Shape: ir.ArityRest, Nreq: nreq, RestFlag: true}}, nil
	}
	return &ir.Lambda{Body: body, Arity: ir.Arity{Shape: ir.ArityFixed, Nreq: nreq}}, nil
}

type optSpec struct {
	Name string
	Init sexpr.Datum
}

type keySpec struct {
	Name    string
	Init    sexpr.Datum
	Keyword sexpr.Keyword
}

// parseExtendedFormals parses a lambda*/case-lambda* formals list:
// positional symbols, then #:optional entries, then #:key entries,
// then an optional #:rest symbol, then an optional
// #:allow-other-keys marker, in that source order (spec.md §4.3).
func parseExtendedFormals(formalsList sexpr.Datum, form *sexpr.Pair, allowOtherKeysDefault bool) (req []string, opts []optSpec, keys []keySpec, restName string, hasRest, allowOtherKeys bool, err error) {
	items, ok := sexpr.ToSlice(formalsList)
	if !ok {
		return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
	}
	allowOtherKeys = allowOtherKeysDefault

	const (
		phasePositional = iota
		phaseOptional
		phaseKey
		phaseRestMarker
		phaseDone
	)
	phase := phasePositional

	for _, item := range items {
		if kw, ok := item.(sexpr.Keyword); ok {
			switch kw {
			case "optional":
				phase = phaseOptional
			case "key":
				phase = phaseKey
			case "rest":
				phase = phaseRestMarker
			case "allow-other-keys":
				allowOtherKeys = true
			default:
				return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
			}
			continue
		}
		switch phase {
		case phasePositional:
			sym, ok := sexpr.IsSymbol(item)
			if !ok {
				return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
			}
			req = append(req, string(sym))
		case phaseOptional:
			name, init, _, err := parseFormalEntry(item, false)
			if err != nil {
				return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
			}
			opts = append(opts, optSpec{Name: name, Init: init})
		case phaseKey:
			name, init, kw, err := parseFormalEntry(item, true)
			if err != nil {
				return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
			}
			keys = append(keys, keySpec{Name: name, Init: init, Keyword: kw})
		case phaseRestMarker:
			sym, ok := sexpr.IsSymbol(item)
			if !ok {
				return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
			}
			restName = string(sym)
			hasRest = true
			phase = phaseDone
		default:
			return nil, nil, nil, "", false, false, scmerr.NewSyntax(scmerr.MsgBadLambdaStar, form, form)
		}
	}
	return req, opts, keys, restName, hasRest, allowOtherKeys, nil
}

// parseFormalEntry parses one optional/key formal: `sym`, `(sym
// init)`, or (keyOnly) `(sym init keyword)`. The default init is
// Quote(#f), i.e. sexpr `false`.
func parseFormalEntry(item sexpr.Datum, keyed bool) (name string, init sexpr.Datum, keyword sexpr.Keyword, err error) {
	if sym, ok := sexpr.IsSymbol(item); ok {
		name = string(sym)
		init = false
		if keyed {
			keyword = sexpr.Keyword(name)
		}
		return name, init, keyword, nil
	}
	p, ok := sexpr.IsPair(item)
	if !ok {
		return "", nil, "", errBadFormalsShape
	}
	parts, ok := sexpr.ToSlice(p)
	if !ok || len(parts) < 1 || len(parts) > 3 {
		return "", nil, "", errBadFormalsShape
	}
	sym, ok := sexpr.IsSymbol(parts[0])
	if !ok {
		return "", nil, "", errBadFormalsShape
	}
	name = string(sym)
	init = sexpr.Datum(false)
	if len(parts) >= 2 {
		init = parts[1]
	}
	if keyed {
		keyword = sexpr.Keyword(name)
		if len(parts) == 3 {
			kwSym, ok := sexpr.IsSymbol(parts[2])
			if !ok {
				return "", nil, "", errBadFormalsShape
			}
			keyword = sexpr.Keyword(kwSym)
		}
	} else if len(parts) == 3 {
		return "", nil, "", errBadFormalsShape
	}
	return name, init, keyword, nil
}

// memoizeLambdaStar lowers `(lambda* formals body...)`.
func (m *Memoizer) memoizeLambdaStar(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	arity, body, err := m.buildExtendedLambda(items[0], items[1:], form, e)
	if err != nil {
		return nil, err
	}
	return &ir.Lambda{Body: body, Arity: arity}, nil
}

// buildExtendedLambda implements the §4.3 `lambda*` construction: the
// environment is built incrementally — required, then each optional
// (its init sees only earlier parameters), then the rest parameter
// (no init), then each keyword (its init sees required, optionals,
// and rest, plus earlier keywords) — so that the final frame layout
// matches "rest comes before keywords in the env, matching the
// evaluator argument layout" while every init still only sees
// parameters processed earlier than itself.
func (m *Memoizer) buildExtendedLambda(formalsList sexpr.Datum, bodyForms []sexpr.Datum, form *sexpr.Pair, e env.Env) (ir.Arity, ir.Node, error) {
	req, opts, keys, restName, hasRest, allowOtherKeys, err := parseExtendedFormals(formalsList, form, m.opts.AllowOtherKeysDefault)
	if err != nil {
		return ir.Arity{}, nil, err
	}

	var allNames []string
	allNames = append(allNames, req...)
	for _, o := range opts {
		allNames = append(allNames, o.Name)
	}
	if hasRest {
		allNames = append(allNames, restName)
	}
	for _, k := range keys {
		allNames = append(allNames, k.Name)
	}
	if dup, ok := hasDuplicateSymbols(allNames); ok {
		_ = dup
		return ir.Arity{}, nil, scmerr.NewSyntax(scmerr.MsgDuplicateFormal, form, form)
	}

	cur := e.Extend(req...)

	var inits []ir.Node
	for _, o := range opts {
		initIR, err := m.Memoize(o.Init, cur)
		if err != nil {
			return ir.Arity{}, nil, err
		}
		inits = append(inits, initIR)
		cur = cur.Extend(o.Name)
	}
	if hasRest {
		cur = cur.Extend(restName)
	}
	kwBase := len(req) + len(opts)
	if hasRest {
		kwBase++
	}
	var kwEntries []ir.KwEntry
	for i, k := range keys {
		initIR, err := m.Memoize(k.Init, cur)
		if err != nil {
			return ir.Arity{}, nil, err
		}
		inits = append(inits, initIR)
		cur = cur.Extend(k.Name)
		kwEntries = append(kwEntries, ir.KwEntry{Keyword: k.Keyword, Index: kwBase + i})
	}

	var kwSpec *ir.KwSpec
	if len(keys) > 0 || allowOtherKeys {
		kwSpec = &ir.KwSpec{AllowOtherKeys: allowOtherKeys, Keywords: kwEntries}
	}

	body, err := m.memoizeSeq(bodyForms, cur, form)
	if err != nil {
		return ir.Arity{}, nil, err
	}

	arity := ir.Arity{
		Shape:    ir.ArityFull,
		Nreq:     len(req),
		RestFlag: hasRest,
		Nopt:     len(opts),
		Kw:       kwSpec,
		Inits:    inits,
	}
	return arity, body, nil
}

// memoizeCaseLambda lowers `(case-lambda clauses...)`: plain
// (formals body...) clauses, no #:optional/#:key extensions.
func (m *Memoizer) memoizeCaseLambda(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	clauses, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return m.memoizeCaseLambdaClauses(clauses, form, e, false)
}

// memoizeCaseLambdaStar lowers `(case-lambda* clauses...)`, whose
// clauses may use the full lambda* formals syntax.
func (m *Memoizer) memoizeCaseLambdaStar(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	clauses, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return m.memoizeCaseLambdaClauses(clauses, form, e, true)
}

// memoizeCaseLambdaClauses memoizes clauses right-to-left, chaining
// each as the Alternate of the next, so that runtime dispatch tries
// clauses left-to-right (spec.md §4.3).
func (m *Memoizer) memoizeCaseLambdaClauses(clauses []sexpr.Datum, form *sexpr.Pair, e env.Env, extended bool) (ir.Node, error) {
	var chain *ir.Lambda
	for i := len(clauses) - 1; i >= 0; i-- {
		clause, ok := sexpr.IsPair(clauses[i])
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadCaseLambdaClause, form, form)
		}
		bodyForms, ok := sexpr.ToSlice(clause.Cdr)
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadCaseLambdaClause, form, form)
		}
		var arity ir.Arity
		var body ir.Node
		var err error
		if extended {
			arity, body, err = m.buildExtendedLambda(clause.Car, bodyForms, form, e)
		} else {
			arity, body, err = m.buildSimpleLambdaArity(clause.Car, bodyForms, form, e)
		}
		if err != nil {
			return nil, err
		}
		arity.Shape = ir.ArityFull
		arity.Alternate = chain
		chain = &ir.Lambda{Body: body, Arity: arity}
	}
	if chain == nil {
		return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
	}
	return chain, nil
}

// buildSimpleLambdaArity parses plain (possibly dotted) formals for a
// case-lambda clause, returning an arity with Nopt=0 and Kw=nil whose
// Shape is left unset; memoizeCaseLambdaClauses marks every clause
// Full so it can carry Alternate.
func (m *Memoizer) buildSimpleLambdaArity(formalsList sexpr.Datum, bodyForms []sexpr.Datum, form *sexpr.Pair, e env.Env) (ir.Arity, ir.Node, error) {
	var names []string
	restSym, hasRest, werr := formalsWalk(formalsList, func(sym sexpr.Symbol) error {
		names = append(names, string(sym))
		return nil
	})
	if werr != nil {
		return ir.Arity{}, nil, scmerr.NewSyntax(werr.Error(), form, form)
	}
	if hasRest {
		names = append(names, string(restSym))
	}
	if dup, ok := hasDuplicateSymbols(names); ok {
		_ = dup
		return ir.Arity{}, nil, scmerr.NewSyntax(scmerr.MsgDuplicateFormal, form, form)
	}
	bodyEnv := e.Extend(names...)
	body, err := m.memoizeSeq(bodyForms, bodyEnv, form)
	if err != nil {
		return ir.Arity{}, nil, err
	}
	nreq := len(names)
	if hasRest {
		nreq--
	}
	return ir.Arity{Nreq: nreq, RestFlag: hasRest}, body, nil
}
