package module

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// SyntaxTransformer rewrites surface syntax before recursive
// memoization: given the whole `(head . tail)` form and the
// environment it appears in, it returns a replacement form to
// memoize instead.
type SyntaxTransformer func(expr sexpr.Datum, e env.Env) (sexpr.Datum, error)

// MemoizerPrimitive takes children already memoized by the caller and
// emits a specific IR node — the shape of the five internal forms
// `@apply`, `@call-with-current-continuation`, `@call-with-values`,
// `@dynamic-wind`, and `@prompt` (spec.md §4.3).
type MemoizerPrimitive func(children []ir.Node) (ir.Node, error)

// Binding is a macro-registry value: exactly one of Transformer or
// Primitive is set, matching spec.md §1's "values that are either
// syntax transformers ... or memoizer primitives".
type Binding struct {
	Transformer SyntaxTransformer
	Primitive   MemoizerPrimitive
}

// IsTransformer reports whether b is a syntax transformer.
func (b Binding) IsTransformer() bool { return b.Transformer != nil }

// IsPrimitive reports whether b is a memoizer primitive.
func (b Binding) IsPrimitive() bool { return b.Primitive != nil }

// TransformerBinding wraps a syntax transformer as a Binding.
func TransformerBinding(t SyntaxTransformer) Binding { return Binding{Transformer: t} }

// PrimitiveBinding wraps a memoizer primitive as a Binding.
func PrimitiveBinding(p MemoizerPrimitive) Binding { return Binding{Primitive: p} }
