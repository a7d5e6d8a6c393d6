package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// memoizeQuote lowers `(quote x)`. Exactly one operand.
func (m *Memoizer) memoizeQuote(form *sexpr.Pair, _ env.Env) (ir.Node, error) {
	items, err := requireTailLen(form, 1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	return &ir.Quote{Datum: items[0]}, nil
}

// memoizeIf lowers `(if t a [b])`. 2 or 3 operands; a missing
// else-branch lowers to Quote(Unspecified).
func (m *Memoizer) memoizeIf(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLenRange(form, 2, 3, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	test, err := m.Memoize(items[0], e)
	if err != nil {
		return nil, err
	}
	then, err := m.Memoize(items[1], e)
	if err != nil {
		return nil, err
	}
	var elseNode ir.Node
	if len(items) == 3 {
		elseNode, err = m.Memoize(items[2], e)
		if err != nil {
			return nil, err
		}
	} else {
		elseNode = &ir.Quote{Datum: sexpr.TheUnspecified}
	}
	return &ir.If{Test: test, Then: then, Else: elseNode}, nil
}

// memoizeBeginForm lowers `(begin e ...)` with >= 1 forms. A single
// form passes through unwrapped.
func (m *Memoizer) memoizeBeginForm(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, ok := sexpr.ToSlice(form.Cdr)
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgNotAProperList, form, form)
	}
	return m.memoizeSeq(items, e, form)
}

// memoizeSet lowers `(set! var e)`.
func (m *Memoizer) memoizeSet(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	items, err := requireTailLen(form, 2, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}
	varIR, err := m.Memoize(items[0], e)
	if err != nil {
		return nil, err
	}
	valueIR, err := m.Memoize(items[1], e)
	if err != nil {
		return nil, err
	}
	switch v := varIR.(type) {
	case *ir.LexicalRef:
		return &ir.LexicalSet{Index: v.Index, Value: valueIR}, nil
	case *ir.ToplevelRef:
		b := v.Load()
		return ir.NewToplevelSet(b.Sym, valueIR), nil
	case *ir.ModuleRef:
		b := v.Load()
		return ir.NewModuleSet(b.ModuleName, b.Sym, b.Public, valueIR), nil
	default:
		return nil, scmerr.NewSyntax(scmerr.MsgBadVariable, form, form)
	}
}

// memoizeDefine lowers `(define name e)` or `(define (name
// formals...) body...)`. Valid only at top level.
func (m *Memoizer) memoizeDefine(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	if !e.IsTopLevel() {
		return nil, scmerr.NewSyntax(scmerr.MsgBadDefinePlacement, form, form)
	}
	items, err := requireTailLenRange(form, 1, -1, scmerr.MsgBadExpression)
	if err != nil {
		return nil, err
	}

	// Lambda sugar: (define (name . formals) body...)
	if target, ok := sexpr.IsPair(items[0]); ok {
		nameSym, ok := sexpr.IsSymbol(target.Car)
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
		}
		lambdaForm := sexpr.ListAt(form.Pos(), append([]sexpr.Datum{sexpr.Symbol("lambda"), target.Cdr}, items[1:]...)...)
		valueIR, err := m.Memoize(lambdaForm, e)
		if err != nil {
			return nil, err
		}
		return &ir.Define{Name: nameSym, Value: valueIR}, nil
	}

	nameSym, ok := sexpr.IsSymbol(items[0])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
	}
	if len(items) > 2 {
		return nil, scmerr.NewSyntax(scmerr.MsgBadExpression, form, form)
	}
	var valueIR ir.Node
	if len(items) == 2 {
		valueIR, err = m.Memoize(items[1], e)
		if err != nil {
			return nil, err
		}
	} else {
		valueIR = &ir.Quote{Datum: sexpr.TheUnspecified}
	}
	return &ir.Define{Name: nameSym, Value: valueIR}, nil
}

// memoizeModuleRefPublic lowers `(@ mod sym)`.
func (m *Memoizer) memoizeModuleRefPublic(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	return m.memoizeModuleRef(form, e, true)
}

// memoizeModuleRefPrivate lowers `(@@ mod sym)`.
func (m *Memoizer) memoizeModuleRefPrivate(form *sexpr.Pair, e env.Env) (ir.Node, error) {
	return m.memoizeModuleRef(form, e, false)
}

func (m *Memoizer) memoizeModuleRef(form *sexpr.Pair, _ env.Env, public bool) (ir.Node, error) {
	items, err := requireTailLen(form, 2, scmerr.MsgBadModuleReference)
	if err != nil {
		return nil, err
	}
	modNameItems, ok := sexpr.ToSlice(items[0])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadModuleReference, form, form)
	}
	modName := make([]string, len(modNameItems))
	for i, d := range modNameItems {
		sym, ok := sexpr.IsSymbol(d)
		if !ok {
			return nil, scmerr.NewSyntax(scmerr.MsgBadModuleReference, form, form)
		}
		modName[i] = string(sym)
	}
	sym, ok := sexpr.IsSymbol(items[1])
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgBadModuleReference, form, form)
	}
	return ir.NewModuleRef(modName, sym, public), nil
}
