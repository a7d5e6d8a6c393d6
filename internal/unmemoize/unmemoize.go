// Package unmemoize implements the structural inverse of the
// memoizer: turning an IR node back into a printable S-expression
// (spec.md §4.4). The inverse is lossy — original formal-parameter
// names, let-binding names, and the exact surface macro that produced
// a node are gone by the time it reaches IR — so output uses two
// fixed placeholder conventions instead of trying to reconstruct
// names that no longer exist anywhere in the tree:
//
//   - a lexical reference prints as `<N>`, its de Bruijn frame index
//   - a let-introduced binding name prints as `_`
//
// The result is meant for debugging and for snapshot tests, not for
// round-tripping through the reader and getting the same program back.
package unmemoize

import (
	"fmt"

	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// indexSymbol formats a lexical index using the `<N>` convention.
func indexSymbol(i int) sexpr.Symbol {
	return sexpr.Symbol(fmt.Sprintf("<%d>", i))
}

// Unmemoize converts n back into a printable S-expression.
func Unmemoize(n ir.Node) sexpr.Datum {
	switch v := n.(type) {
	case *ir.Quote:
		return sexpr.List(sexpr.Symbol("quote"), v.Datum)
	case *ir.If:
		if q, ok := v.Else.(*ir.Quote); ok && sexpr.IsUnspecified(q.Datum) {
			return sexpr.List(sexpr.Symbol("if"), Unmemoize(v.Test), Unmemoize(v.Then))
		}
		return sexpr.List(sexpr.Symbol("if"), Unmemoize(v.Test), Unmemoize(v.Then), Unmemoize(v.Else))
	case *ir.Begin:
		items := make([]sexpr.Datum, 0, len(v.Forms)+1)
		items = append(items, sexpr.Symbol("begin"))
		for _, f := range v.Forms {
			items = append(items, Unmemoize(f))
		}
		return sexpr.List(items...)
	case *ir.Let:
		bindings := make([]sexpr.Datum, len(v.Inits))
		for i, init := range v.Inits {
			bindings[i] = sexpr.List(sexpr.Symbol("_"), Unmemoize(init))
		}
		items := []sexpr.Datum{sexpr.Symbol("let"), sexpr.List(bindings...)}
		items = append(items, unBody(v.Body)...)
		return sexpr.List(items...)
	case *ir.Dynwind:
		return sexpr.List(sexpr.Symbol("@dynamic-wind"), Unmemoize(v.Pre), Unmemoize(v.Expr), Unmemoize(v.Post))
	case *ir.WithFluids:
		bindings := make([]sexpr.Datum, len(v.Fluids))
		for i := range v.Fluids {
			bindings[i] = sexpr.List(Unmemoize(v.Fluids[i]), Unmemoize(v.Vals[i]))
		}
		items := []sexpr.Datum{sexpr.Symbol("with-fluids"), sexpr.List(bindings...)}
		items = append(items, unBody(v.Body)...)
		return sexpr.List(items...)
	case *ir.Prompt:
		return sexpr.List(sexpr.Symbol("@prompt"), Unmemoize(v.Tag), Unmemoize(v.Expr), Unmemoize(v.Handler))
	case *ir.Apply:
		return sexpr.List(sexpr.Symbol("@apply"), Unmemoize(v.Proc), Unmemoize(v.Args))
	case *ir.Cont:
		return sexpr.List(sexpr.Symbol("@call-with-current-continuation"), Unmemoize(v.Proc))
	case *ir.CallWithValues:
		return sexpr.List(sexpr.Symbol("@call-with-values"), Unmemoize(v.Producer), Unmemoize(v.Consumer))
	case *ir.Call:
		items := make([]sexpr.Datum, 0, len(v.Args)+1)
		items = append(items, Unmemoize(v.Proc))
		for _, a := range v.Args {
			items = append(items, Unmemoize(a))
		}
		return sexpr.List(items...)
	case *ir.LexicalRef:
		return indexSymbol(v.Index)
	case *ir.LexicalSet:
		return sexpr.List(sexpr.Symbol("set!"), indexSymbol(v.Index), Unmemoize(v.Value))
	case *ir.ToplevelRef:
		return toplevelSymbol(v.Load())
	case *ir.ToplevelSet:
		return sexpr.List(sexpr.Symbol("set!"), toplevelSymbol(v.Load()), Unmemoize(v.Value))
	case *ir.ModuleRef:
		return moduleRefForm(v.Load())
	case *ir.ModuleSet:
		return sexpr.List(sexpr.Symbol("set!"), moduleRefForm(v.Load()), Unmemoize(v.Value))
	case *ir.Define:
		return sexpr.List(sexpr.Symbol("define"), v.Name, Unmemoize(v.Value))
	case *ir.Lambda:
		return unLambda(v)
	default:
		scmerr.Invariant("unmemoize: unknown IR node %T", n)
		return nil
	}
}

func unBody(body ir.Node) []sexpr.Datum {
	if b, ok := body.(*ir.Begin); ok {
		items := make([]sexpr.Datum, len(b.Forms))
		for i, f := range b.Forms {
			items[i] = Unmemoize(f)
		}
		return items
	}
	return []sexpr.Datum{Unmemoize(body)}
}

func toplevelSymbol(b *ir.Binding) sexpr.Symbol {
	if b == nil {
		return sexpr.Symbol("<unresolved>")
	}
	return b.Sym
}

func moduleRefForm(b *ir.Binding) sexpr.Datum {
	tag := sexpr.Symbol("@@")
	if b != nil && b.Public {
		tag = sexpr.Symbol("@")
	}
	var sym sexpr.Symbol
	var modName []string
	if b != nil {
		sym = b.Sym
		modName = b.ModuleName
	}
	modItems := make([]sexpr.Datum, len(modName))
	for i, s := range modName {
		modItems[i] = sexpr.Symbol(s)
	}
	return sexpr.List(tag, sexpr.List(modItems...), sym)
}

// unLambda reconstructs a lambda, lambda* or case-lambda form from an
// Arity; a chain of clauses always prints as case-lambda, never
// case-lambda*. Parameter names no longer exist, so positional slots
// print as `_0`, `_1`, ... in frame order.
func unLambda(l *ir.Lambda) sexpr.Datum {
	if l.Arity.Alternate != nil {
		clauses := []sexpr.Datum{sexpr.Symbol("case-lambda")}
		cur := l
		for cur != nil {
			clauses = append(clauses, sexpr.List(append([]sexpr.Datum{unFormals(cur.Arity)}, unBody(cur.Body)...)...))
			cur = cur.Arity.Alternate
		}
		return sexpr.List(clauses...)
	}
	items := []sexpr.Datum{sexpr.Symbol("lambda")}
	if l.Arity.Shape == ir.ArityFull {
		items[0] = sexpr.Symbol("lambda*")
	}
	items = append(items, unFormals(l.Arity))
	items = append(items, unBody(l.Body)...)
	return sexpr.List(items...)
}

func unFormals(a ir.Arity) sexpr.Datum {
	n := 0
	var items []sexpr.Datum
	for i := 0; i < a.Nreq; i++ {
		items = append(items, sexpr.Symbol(fmt.Sprintf("_%d", n)))
		n++
	}
	if a.Shape != ir.ArityFull {
		if a.RestFlag {
			return dottedList(items, sexpr.Symbol(fmt.Sprintf("_%d", n)))
		}
		return sexpr.List(items...)
	}

	initIdx := 0
	for i := 0; i < a.Nopt; i++ {
		if i == 0 {
			items = append(items, sexpr.Keyword("optional"))
		}
		var initDatum sexpr.Datum
		if initIdx < len(a.Inits) {
			initDatum = Unmemoize(a.Inits[initIdx])
		}
		initIdx++
		items = append(items, sexpr.List(sexpr.Symbol(fmt.Sprintf("_%d", n)), initDatum))
		n++
	}
	if a.RestFlag {
		items = append(items, sexpr.Keyword("rest"), sexpr.Symbol(fmt.Sprintf("_%d", n)))
		n++
	}
	if a.Kw != nil {
		for i, kwEntry := range a.Kw.Keywords {
			if i == 0 {
				items = append(items, sexpr.Keyword("key"))
			}
			var initDatum sexpr.Datum
			if initIdx < len(a.Inits) {
				initDatum = Unmemoize(a.Inits[initIdx])
			}
			initIdx++
			items = append(items, sexpr.List(sexpr.Symbol(fmt.Sprintf("_%d", kwEntry.Index)), initDatum, sexpr.Symbol(kwEntry.Keyword)))
		}
		if a.Kw.AllowOtherKeys {
			items = append(items, sexpr.Keyword("allow-other-keys"))
		}
	}
	return sexpr.List(items...)
}

// dottedList builds (items[0] items[1] ... . tail), an improper list.
func dottedList(items []sexpr.Datum, tail sexpr.Datum) sexpr.Datum {
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = sexpr.NewPair(items[i], result)
	}
	return result
}
