// Package sexpr is the Go data model for the output of the external
// reader: S-expressions built from cons pairs, symbols, and
// self-evaluating atoms, with optional source-location envelopes
// attached to pairs.
//
// The memoizer never constructs a reader; it only walks values of
// this shape. A minimal reader good enough to drive the CLI and tests
// lives in this package too (see reader.go), but a production host is
// expected to supply its own.
package sexpr

import "fmt"

// Datum is any Scheme value that can appear in source position: a
// Pair, a Symbol, a bool, an int64, a float64, a string, a rune
// (character), or the Unspecified/EmptyList/EOF sentinels.
type Datum = any

// Symbol is an interned Scheme identifier. Two symbols with the same
// name compare equal with ==, matching the evaluator's expectation
// that symbols are atoms.
type Symbol string

// Keyword is a Scheme keyword argument tag, e.g. #:optional. It is
// kept distinct from Symbol so the memoizer can recognise lambda*'s
// keyword markers without risking collision with an identifier of the
// same spelling used as an ordinary symbol.
type Keyword string

// Unspecified is the datum produced by forms whose value is
// deliberately left unspecified (an `if` with no else-branch, a
// `begin` with no forms reached at runtime, etc).
type unspecifiedType struct{}

func (unspecifiedType) String() string { return "#<unspecified>" }

// TheUnspecified is the single Unspecified value.
var TheUnspecified Datum = unspecifiedType{}

// IsUnspecified reports whether d is the Unspecified value.
func IsUnspecified(d Datum) bool {
	_, ok := d.(unspecifiedType)
	return ok
}

// EmptyList is the empty list '().
type emptyListType struct{}

func (emptyListType) String() string { return "()" }

// TheEmptyList is the single EmptyList value.
var TheEmptyList Datum = emptyListType{}

// IsEmptyList reports whether d is the empty list.
func IsEmptyList(d Datum) bool {
	_, ok := d.(emptyListType)
	return ok
}

// Pos is a source-location envelope: a filename and a 1-based line
// number. It is attached to Pair values by the reader and consulted
// only for error-message formatting; it never enters the memoized IR.
type Pos struct {
	Filename string
	Line     int
}

// IsZero reports whether the position carries no information.
func (p Pos) IsZero() bool { return p.Filename == "" && p.Line == 0 }

func (p Pos) String() string {
	if p.IsZero() {
		return "<unknown>"
	}
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// Pair is a cons cell. A proper list is a right-leaning chain of
// Pairs terminated by TheEmptyList; an improper list (dotted pair) is
// terminated by some other, non-Pair datum.
type Pair struct {
	Car, Cdr Datum
	pos      Pos
}

// NewPair builds an unannotated cons cell.
func NewPair(car, cdr Datum) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// NewPairAt builds a cons cell carrying a source-location envelope.
func NewPairAt(car, cdr Datum, pos Pos) *Pair {
	return &Pair{Car: car, Cdr: cdr, pos: pos}
}

// Pos returns the pair's source location, or the zero Pos if none was
// attached by the reader.
func (p *Pair) Pos() Pos {
	if p == nil {
		return Pos{}
	}
	return p.pos
}

// List builds a proper list from its elements.
func List(items ...Datum) Datum {
	result := TheEmptyList
	for i := len(items) - 1; i >= 0; i-- {
		result = NewPair(items[i], result)
	}
	return result
}

// ListAt is List, with every synthesized pair carrying pos — used by
// lowerings that synthesize new source forms (e.g. lambda-sugar
// expansion of `(define (name . formals) body...)`).
func ListAt(pos Pos, items ...Datum) Datum {
	result := TheEmptyList
	for i := len(items) - 1; i >= 0; i-- {
		result = NewPairAt(items[i], result, pos)
	}
	return result
}

// ToSlice converts a proper list to a Go slice. ok is false if d is
// not a proper list (either not a list at all, or improperly
// terminated).
func ToSlice(d Datum) (items []Datum, ok bool) {
	for {
		if IsEmptyList(d) {
			return items, true
		}
		p, isPair := d.(*Pair)
		if !isPair {
			return nil, false
		}
		items = append(items, p.Car)
		d = p.Cdr
	}
}

// ProperListLength reports the length of d if it is a proper list,
// and false otherwise. Used by the memoizer's shape validation
// (`proper-list-length` in the spec).
func ProperListLength(d Datum) (n int, ok bool) {
	for {
		if IsEmptyList(d) {
			return n, true
		}
		p, isPair := d.(*Pair)
		if !isPair {
			return 0, false
		}
		n++
		d = p.Cdr
	}
}

// IsSymbol reports whether d is a Symbol.
func IsSymbol(d Datum) (Symbol, bool) {
	s, ok := d.(Symbol)
	return s, ok
}

// IsPair reports whether d is a Pair.
func IsPair(d Datum) (*Pair, bool) {
	p, ok := d.(*Pair)
	return p, ok
}
