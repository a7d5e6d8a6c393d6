package memoize

import (
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// requireTailLen validates that a form's tail (the operands following
// the keyword) is a proper list of exactly n elements, returning it as
// a slice. This backs the many "proper-list-length(=n)" shape checks
// spec.md §4.3 calls for.
func requireTailLen(form *sexpr.Pair, n int, msg string) ([]sexpr.Datum, error) {
	items, ok := sexpr.ToSlice(form.Cdr)
	if !ok || len(items) != n {
		return nil, scmerr.NewSyntax(msg, form, form)
	}
	return items, nil
}

// requireTailLenRange validates a proper list of between min and max
// elements, inclusive. max < 0 means unbounded ("proper-list-length(≥n)").
func requireTailLenRange(form *sexpr.Pair, min, max int, msg string) ([]sexpr.Datum, error) {
	items, ok := sexpr.ToSlice(form.Cdr)
	if !ok || len(items) < min || (max >= 0 && len(items) > max) {
		return nil, scmerr.NewSyntax(msg, form, form)
	}
	return items, nil
}

// formalsWalk walks a (possibly improper) formals list, calling visit
// for each symbol encountered, and returns the rest symbol (empty
// string if the list is proper), whether there is one, and an error if
// the list is malformed or cyclic.
//
// Cyclic formals lists are bounded using Floyd's tortoise-and-hare
// traversal rather than left undetected, per spec.md §9's decision on
// the open question the original leaves as a FIXME.
func formalsWalk(formals sexpr.Datum, visit func(sym sexpr.Symbol) error) (rest sexpr.Symbol, hasRest bool, err error) {
	cur := formals
	var fast *sexpr.Pair
	if p, ok := formals.(*sexpr.Pair); ok {
		fast = p
	}

	for {
		if sexpr.IsEmptyList(cur) {
			return "", false, nil
		}
		if sym, ok := sexpr.IsSymbol(cur); ok {
			return sym, true, nil
		}
		p, ok := cur.(*sexpr.Pair)
		if !ok {
			return "", false, errBadFormalsShape
		}
		sym, ok := sexpr.IsSymbol(p.Car)
		if !ok {
			return "", false, errBadFormalsShape
		}
		if err := visit(sym); err != nil {
			return "", false, err
		}
		cur = p.Cdr

		for step := 0; step < 2 && fast != nil; step++ {
			next, ok := fast.Cdr.(*sexpr.Pair)
			if !ok {
				fast = nil
				break
			}
			fast = next
		}
		if fast == p {
			return "", false, errCircularFormals
		}
	}
}

var errBadFormalsShape = &formalsError{scmerr.MsgBadFormals}
var errCircularFormals = &formalsError{scmerr.MsgBadFormalsCircular}

type formalsError struct{ msg string }

func (e *formalsError) Error() string { return e.msg }

// hasDuplicateSymbols reports whether names contains the same string
// twice (ordinary membership check, used for both formals and
// binding-list duplicate detection per spec.md §4.3).
func hasDuplicateSymbols(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n, true
		}
		seen[n] = true
	}
	return "", false
}
