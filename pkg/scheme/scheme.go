// Package scheme is the public facade over the bootstrap memoizer: it
// re-exports the operations spec.md §6 names so a caller never needs
// to import internal/memoize, internal/module, internal/unmemoize, or
// internal/varcache directly.
package scheme

import (
	"github.com/schemeboot/memoize/internal/env"
	"github.com/schemeboot/memoize/internal/memoize"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/internal/unmemoize"
	"github.com/schemeboot/memoize/internal/varcache"
	"github.com/schemeboot/memoize/pkg/ir"
	"github.com/schemeboot/memoize/pkg/sexpr"
)

// Memoizer lowers S-expressions to IR against a module registry and
// resolves variable references against it. It is the one stateful
// object a caller needs to hold onto.
type Memoizer struct {
	reg   *module.Registry
	m     *memoize.Memoizer
	cache *varcache.Cache
}

// Options configures a Memoizer. The zero value matches spec.md's
// defaults.
type Options struct {
	AllowOtherKeysDefault bool
	GensymPrefix          string

	// ModuleSearchPath lists module names, e.g. "(scheme base)", that
	// should be resolvable in the registry from the start (spec.md
	// §4.7 / config.Config.ModuleSearchPath).
	ModuleSearchPath []string
}

// NewMemoizer constructs a Memoizer with a fresh module registry
// seeded with the base module, its primitive special forms, and
// opts.ModuleSearchPath.
func NewMemoizer(opts Options) (*Memoizer, error) {
	prefix := opts.GensymPrefix
	if prefix == "" {
		prefix = "g"
	}
	reg := module.NewRegistry(prefix)
	if err := reg.SeedSearchPath(opts.ModuleSearchPath); err != nil {
		return nil, err
	}
	return &Memoizer{
		reg:   reg,
		m:     memoize.New(reg, memoize.Options{AllowOtherKeysDefault: opts.AllowOtherKeysDefault}),
		cache: varcache.New(reg),
	}, nil
}

// IsMemoizer reports whether v is a *Memoizer, mirroring the
// original's predicate for a first-class memoizer object.
func IsMemoizer(v any) bool {
	_, ok := v.(*Memoizer)
	return ok
}

// Registry exposes the module registry backing m, for callers that
// need to define toplevel bindings before memoizing code that
// references them.
func (m *Memoizer) Registry() *module.Registry { return m.reg }

// MemoizeExpression lowers a top-level S-expression into an IR node.
func (m *Memoizer) MemoizeExpression(expr sexpr.Datum) (ir.Node, error) {
	return m.m.Memoize(expr, env.Empty)
}

// Macroexpand is an alias for MemoizeExpression: in this system
// macro-expansion and memoization are the same pass (spec.md §4.3).
func (m *Memoizer) Macroexpand(expr sexpr.Datum) (ir.Node, error) {
	return m.MemoizeExpression(expr)
}

// UnmemoizeExpression converts an IR node back into a printable,
// lossy S-expression (spec.md §4.4).
func (m *Memoizer) UnmemoizeExpression(n ir.Node) sexpr.Datum {
	return unmemoize.Unmemoize(n)
}

// Memoized reports whether v is an IR node produced by this package.
func Memoized(v any) bool {
	_, ok := v.(ir.Node)
	return ok
}

// MemoizedExpressionTypecode returns n's tag.
func MemoizedExpressionTypecode(n ir.Node) ir.Kind {
	return ir.Typecode(n)
}

// MemoizedExpressionData returns n's raw payload for callers that
// want to type-switch on it directly.
func MemoizedExpressionData(n ir.Node) any {
	return ir.Data(n)
}

// MemoizedTypecode returns the Kind whose tag name is name, and true,
// or false if name is not one of the nineteen tag names.
func MemoizedTypecode(name sexpr.Symbol) (ir.Kind, bool) {
	return ir.TagFor(string(name))
}

// MemoizeVariableAccess resolves a reference/assignment node's
// variable cell against the registry, exactly as the evaluator would
// on first visiting it.
func (m *Memoizer) MemoizeVariableAccess(n ir.Node) (*module.Variable, error) {
	switch v := n.(type) {
	case *ir.ToplevelRef:
		return m.cache.Resolve(v)
	case *ir.ToplevelSet:
		return m.cache.Resolve(v)
	case *ir.ModuleRef:
		return m.cache.Resolve(v)
	case *ir.ModuleSet:
		return m.cache.Resolve(v)
	default:
		return nil, nil
	}
}
