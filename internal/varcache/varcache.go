// Package varcache implements the evaluator's variable cache: the
// lazy, idempotent resolution of ToplevelRef/ToplevelSet/ModuleRef/
// ModuleSet nodes against a module registry on first visit (spec.md
// §4.5 and §5's concurrency model).
//
// Correctness rests entirely on ir.Binding's atomic CompareAndSwap:
// two goroutines racing to resolve the same node either both compute
// the same Variable and one simply loses the CAS harmlessly, or one
// observes the other's already-published Binding and skips the lookup
// altogether. golang.org/x/sync/singleflight sits on top purely to
// keep the registry's lock off the hot path when many evaluator
// goroutines hit the same unresolved node at once — it is a throughput
// optimization, not a correctness requirement.
package varcache

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/schemeboot/memoize/internal/logging"
	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/internal/scmerr"
	"github.com/schemeboot/memoize/pkg/ir"
)

// resolvableNode is satisfied by *ir.ToplevelRef, *ir.ToplevelSet,
// *ir.ModuleRef, and *ir.ModuleSet via their embedded resolvable.
type resolvableNode interface {
	Kind() ir.Kind
	Load() *ir.Binding
	CompareAndSwap(old, new *ir.Binding) bool
}

// Cache resolves reference/assignment nodes against a module registry,
// publishing the result back into the node itself so later visits
// skip straight to the resolved Cell.
type Cache struct {
	reg   *module.Registry
	group singleflight.Group
}

// New creates a Cache backed by reg.
func New(reg *module.Registry) *Cache {
	return &Cache{reg: reg}
}

// Resolve returns the *module.Variable a reference/assignment node
// names, resolving and publishing it into the node on first use.
func (c *Cache) Resolve(node resolvableNode) (*module.Variable, error) {
	if b := node.Load(); b.Resolved() {
		return b.Cell.(*module.Variable), nil
	}

	key := fmt.Sprintf("%p", node)
	v, err, _ := c.group.Do(key, func() (any, error) {
		if b := node.Load(); b.Resolved() {
			return b.Cell.(*module.Variable), nil
		}
		b := node.Load()
		logging.Debug("varcache: resolving", "sym", b.Sym, "module", b.ModuleName, "public", b.Public)
		variable, lookupErr := c.lookup(b, node.Kind() == ir.KindModuleSet)
		if lookupErr != nil {
			logging.Warn("varcache: resolution failed", "sym", b.Sym, "error", lookupErr)
			return nil, lookupErr
		}
		published := &ir.Binding{Sym: b.Sym, ModuleName: b.ModuleName, Public: b.Public, Cell: variable}
		for {
			cur := node.Load()
			if cur.Resolved() {
				return cur.Cell.(*module.Variable), nil
			}
			if node.CompareAndSwap(cur, published) {
				return variable, nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return v.(*module.Variable), nil
}

// lookup resolves b against the registry. defineOnMiss is set for
// ModuleSet nodes only: spec.md §4.5 requires no bound-ness check
// there since "the set itself defines" — a miss installs a fresh,
// unbound variable in the target module instead of raising
// unbound-variable.
func (c *Cache) lookup(b *ir.Binding, defineOnMiss bool) (*module.Variable, error) {
	var (
		mod    *module.Module
		public bool
	)
	if len(b.ModuleName) > 0 {
		mod = c.reg.ResolveModule(b.ModuleName)
		public = b.Public
	} else {
		mod = c.reg.CurrentModule()
	}

	var (
		variable *module.Variable
		ok       bool
	)
	if public {
		variable, ok = c.reg.ModulePublicInterface(mod).Lookup(b.Sym)
	} else {
		variable, ok = c.reg.ModuleLookup(mod, b.Sym)
	}
	if !ok {
		if defineOnMiss {
			variable = module.NewUnboundVariable()
			mod.Define(b.Sym, variable, public)
			return variable, nil
		}
		return nil, scmerr.NewUnbound(b.Sym)
	}
	return variable, nil
}
