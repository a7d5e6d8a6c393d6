package varcache

import (
	"testing"

	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/pkg/ir"
)

// spec.md §4.5: ModuleSet requires no bound-ness check, since the set
// itself defines the variable.
func TestResolveModuleSetDefinesOnMiss(t *testing.T) {
	reg := module.NewRegistry("g")
	cache := New(reg)

	node := ir.NewModuleSet([]string{"scheme", "base"}, "frotz", true, &ir.Quote{Datum: 1})
	v, err := cache.Resolve(node)
	if err != nil {
		t.Fatalf("resolving a module-set to an undefined variable: %v", err)
	}
	if v.Bound() {
		t.Error("expected the freshly defined variable to start unbound")
	}

	mod := reg.ResolveModule([]string{"scheme", "base"})
	got, ok := mod.Lookup("frotz")
	if !ok {
		t.Fatal("expected module-set to install the variable in the target module")
	}
	if got != v {
		t.Error("expected the installed variable to be the one Resolve returned")
	}
}

// ModuleRef, unlike ModuleSet, still raises unbound-variable on a
// miss.
func TestResolveModuleRefUndefinedIsUnbound(t *testing.T) {
	reg := module.NewRegistry("g")
	cache := New(reg)
	node := ir.NewModuleRef([]string{"scheme", "base"}, "frotz", true)
	if _, err := cache.Resolve(node); err == nil {
		t.Fatal("expected a module-ref to an undefined variable to error")
	}
}
