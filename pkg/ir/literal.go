package ir

import "github.com/schemeboot/memoize/pkg/sexpr"

// Quote carries an arbitrary Scheme datum through to evaluation
// unchanged. Every atom that is not a symbol, and every explicit
// `(quote x)` form, lowers to one of these.
type Quote struct {
	Datum sexpr.Datum
}

func (*Quote) Kind() Kind { return KindQuote }

// Define binds Name to Value at the top level. The memoizer only ever
// produces Define nodes when memoizing at top level — a `define`
// nested inside a lambda body is a syntax error (spec.md §4.3,
// "Bad define placement").
type Define struct {
	Name  sexpr.Symbol
	Value Node
}

func (*Define) Kind() Kind { return KindDefine }
