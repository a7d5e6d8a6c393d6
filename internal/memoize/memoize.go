// Package memoize is the core of the boot memoizer: it lowers reader
// output (sexpr.Datum) into the nineteen-kind IR the evaluator
// consumes (spec.md §4.3).
//
// Memoization is a pure, single-threaded, non-suspending computation
// of its inputs modulo calls into user-supplied syntax transformers,
// which may themselves invoke arbitrary Scheme and reenter Memoize —
// exactly spec.md §5's concurrency model. Nothing here retains state
// across calls except through the *module.Registry passed in, which
// the caller owns.
package memoize

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// Options configures memoizer behavior not fixed by the spec itself.
type Options struct {
	// AllowOtherKeysDefault is consulted by lambda*/case-lambda* formals
	// parsing when a formals list omits #:allow-other-keys explicitly.
	AllowOtherKeysDefault bool
}

// Memoizer lowers S-expressions into IR against a module system.
type Memoizer struct {
	reg  *module.Registry
	opts Options
}

// New creates a Memoizer backed by reg.
func New(reg *module.Registry, opts Options) *Memoizer {
	return &Memoizer{reg: reg, opts: opts}
}

// specialForms maps the fixed surface-syntax keyword spelling to its
// lowering. Built once; looked up by plain string comparison, exactly
// as the original recognises "primitive special forms ... by name
// when not shadowed" (spec.md §4.3).
var specialForms map[sexpr.Symbol]func(m *Memoizer, expr *sexpr.Pair, e env.Env) (ir.Node, error)

func init() {
	specialForms = map[sexpr.Symbol]func(*Memoizer, *sexpr.Pair, env.Env) (ir.Node, error){
		"quote":        (*Memoizer).memoizeQuote,
		"if":           (*Memoizer).memoizeIf,
		"begin":        (*Memoizer).memoizeBeginForm,
		"set!":         (*Memoizer).memoizeSet,
		"define":       (*Memoizer).memoizeDefine,
		"lambda":       (*Memoizer).memoizeLambda,
		"lambda*":      (*Memoizer).memoizeLambdaStar,
		"case-lambda":  (*Memoizer).memoizeCaseLambda,
		"case-lambda*": (*Memoizer).memoizeCaseLambdaStar,
		"let":          (*Memoizer).memoizeLet,
		"letrec":       (*Memoizer).memoizeLetrec,
		"letrec*":      (*Memoizer).memoizeLetrec,
		"let*":         (*Memoizer).memoizeLetStar,
		"and":          (*Memoizer).memoizeAnd,
		"or":           (*Memoizer).memoizeOr,
		"cond":         (*Memoizer).memoizeCond,
		"eval-when":    (*Memoizer).memoizeEvalWhen,
		"with-fluids":  (*Memoizer).memoizeWithFluids,
		"@":            (*Memoizer).memoizeModuleRefPublic,
		"@@":           (*Memoizer).memoizeModuleRefPrivate,
	}
}

// Memoize lowers a single S-expression into an IR node, given the
// lexical environment it appears in (sexpr.TheEmptyList-rooted top
// level callers pass env.Empty).
func (m *Memoizer) Memoize(expr sexpr.Datum, e env.Env) (ir.Node, error) {
	switch v := expr.(type) {
	case sexpr.Symbol:
		return m.memoizeSymbol(v, e), nil
	case *sexpr.Pair:
		return m.memoizePair(v, e)
	default:
		// Atom, non-symbol: emit Quote(expr) (spec.md §4.3).
		return &ir.Quote{Datum: expr}, nil
	}
}

func (m *Memoizer) memoizeSymbol(sym sexpr.Symbol, e env.Env) ir.Node {
	if idx := e.LexicalIndex(string(sym)); idx != -1 {
		return &ir.LexicalRef{Index: idx}
	}
	return ir.NewToplevelRef(sym)
}

func (m *Memoizer) memoizePair(p *sexpr.Pair, e env.Env) (ir.Node, error) {
	if headSym, ok := sexpr.IsSymbol(p.Car); ok && e.IsFree(string(headSym)) {
		if fn, ok := specialForms[headSym]; ok {
			return fn(m, p, e)
		}
		if binding, ok := m.reg.LookupMacro(headSym); ok {
			if binding.IsTransformer() {
				rewritten, err := binding.Transformer(p, e)
				if err != nil {
					return nil, err
				}
				return m.Memoize(rewritten, e)
			}
			if binding.IsPrimitive() {
				tail, ok := sexpr.ToSlice(p.Cdr)
				if !ok {
					return nil, scmerr.NewSyntax(scmerr.MsgNotAProperList, p, p)
				}
				children := make([]ir.Node, len(tail))
				for i, sub := range tail {
					child, err := m.Memoize(sub, e)
					if err != nil {
						return nil, err
					}
					children[i] = child
				}
				node, err := binding.Primitive(children)
				if err != nil {
					return nil, scmerr.NewSyntaxf("%s", p, p, err.Error())
				}
				return node, nil
			}
		}
	}
	return m.memoizeCall(p, e)
}

// memoizeCall lowers an ordinary procedure call: validate tail is a
// proper list, memoize head and each element, emit Call (spec.md
// §4.3 step 2).
func (m *Memoizer) memoizeCall(p *sexpr.Pair, e env.Env) (ir.Node, error) {
	tail, ok := sexpr.ToSlice(p.Cdr)
	if !ok {
		return nil, scmerr.NewSyntax(scmerr.MsgNotAProperList, p, p)
	}
	headIR, err := m.Memoize(p.Car, e)
	if err != nil {
		return nil, err
	}
	args := make([]ir.Node, len(tail))
	for i, a := range tail {
		argIR, err := m.Memoize(a, e)
		if err != nil {
			return nil, err
		}
		args[i] = argIR
	}
	return ir.NewCall(headIR, args...), nil
}

// memoizeSeq memoizes a non-empty ordered sequence of forms into a
// single node: one form passes through unwrapped, more than one forms
// into a Begin (spec.md §4.3's `begin` rule, reused everywhere a body
// sequence is memoized: lambda bodies, let bodies, with-fluids
// bodies, ...).
func (m *Memoizer) memoizeSeq(forms []sexpr.Datum, e env.Env, enclosing sexpr.Datum) (ir.Node, error) {
	if len(forms) == 0 {
		return nil, scmerr.NewSyntax(scmerr.MsgMissingExpressionIn, enclosing, enclosing)
	}
	nodes := make([]ir.Node, len(forms))
	for i, f := range forms {
		n, err := m.Memoize(f, e)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return ir.NewBegin(nodes...), nil
}
