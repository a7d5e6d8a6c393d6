// Package scmerr is the memoizer's error catalog and structured error
// types, in the shape of the teacher's
// internal/interp/errors.InterpreterError + catalog.go: a fixed set of
// message constants grouped by category, plus small constructors that
// attach source position and the offending form.
//
// spec.md §7 recognises exactly two categories raised by this module:
// syntax errors (during memoization) and unbound-variable errors
// (during variable-cache resolution). Every other failure — malformed
// IR reaching the un-memoizer, an unknown tag in the variable cache —
// is an invariant violation and panics; see Invariant.
package scmerr

import (
	"fmt"

	"github.com/schemeboot/memoize/pkg/sexpr"
)

// ============================================================================
// Syntax error message catalog
// ============================================================================
//
// Every form the memoizer recognises validates its shape against one
// of these fixed messages before proceeding, matching spec.md §4.3's
// "one of the fixed message constants" rule. Keeping them as named
// constants (rather than ad hoc fmt.Sprintf calls scattered through
// the memoizer) means a test can assert on the exact message a
// malformed form produces.
const (
	MsgBadExpression        = "Bad expression"
	MsgMissingExpressionIn  = "Missing expression in"
	MsgBadBindings          = "Bad bindings"
	MsgDuplicateBinding     = "Duplicate binding"
	MsgDuplicateFormal      = "Duplicate formal"
	MsgMisplacedElseClause  = "Misplaced else clause"
	MsgBadVariable          = "Bad variable"
	MsgBadDefinePlacement   = "Bad define placement"
	MsgBadFormals           = "Bad formals"
	MsgBadFormalsCircular   = "Bad formals: circular list"
	MsgBadLambdaStar        = "Bad lambda* formals"
	MsgBadCaseLambdaClause  = "Bad case-lambda clause"
	MsgBadCondClause        = "Bad cond clause"
	MsgBadWithFluidsBinding = "Bad with-fluids binding"
	MsgBadModuleReference   = "Bad module reference"
	MsgNotAProperList       = "Not a proper list"
)

// Category distinguishes the two kinds of error spec.md §7 names.
type Category string

const (
	CategorySyntax  Category = "syntax-error"
	CategoryUnbound Category = "unbound-variable"
)

// SyntaxError is raised during memoization when a form's shape fails
// validation. Payload mirrors spec.md §4.3: message, the offending
// form, the enclosing expression (for position fallback), and the
// source position, when known.
type SyntaxError struct {
	Pos         sexpr.Pos
	Message     string
	Form        sexpr.Datum
	Enclosing   sexpr.Datum
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("%s: %s: %s", CategorySyntax, e.Message, sexpr.Write(e.Form))
	}
	return fmt.Sprintf("%s at %s: %s: %s", CategorySyntax, e.Pos, e.Message, sexpr.Write(e.Form))
}

// NewSyntax builds a SyntaxError. pos is taken from form when form is
// a *sexpr.Pair carrying a non-zero position; otherwise it falls back
// to enclosing's position, per spec.md §4.3 ("filename and line are
// taken from the form's source properties, falling back to the
// enclosing expression's").
func NewSyntax(message string, form, enclosing sexpr.Datum) *SyntaxError {
	return &SyntaxError{
		Pos:       positionOf(form, enclosing),
		Message:   message,
		Form:      form,
		Enclosing: enclosing,
	}
}

// NewSyntaxf is NewSyntax with a printf-style message.
func NewSyntaxf(format string, form, enclosing sexpr.Datum, args ...any) *SyntaxError {
	return NewSyntax(fmt.Sprintf(format, args...), form, enclosing)
}

func positionOf(form, enclosing sexpr.Datum) sexpr.Pos {
	if p, ok := form.(*sexpr.Pair); ok && !p.Pos().IsZero() {
		return p.Pos()
	}
	if p, ok := enclosing.(*sexpr.Pair); ok {
		return p.Pos()
	}
	return sexpr.Pos{}
}

// UnboundVariableError is raised during variable-cache resolution
// when a toplevel or module reference does not name a bound variable.
type UnboundVariableError struct {
	Symbol sexpr.Symbol
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("%s: %s", CategoryUnbound, e.Symbol)
}

// NewUnbound builds an UnboundVariableError for sym.
func NewUnbound(sym sexpr.Symbol) *UnboundVariableError {
	return &UnboundVariableError{Symbol: sym}
}

// Invariant panics with a message identifying msg as an invariant
// violation: something that must be impossible to trigger from
// Scheme source (a malformed IR node reaching the un-memoizer, an
// unrecognised tag in the variable cache). Per spec.md §7 these abort
// the process rather than being reported as ordinary errors.
func Invariant(msg string, args ...any) {
	panic(fmt.Sprintf("memoizer invariant violation: "+msg, args...))
}
