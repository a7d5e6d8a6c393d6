package scheme

import (
	"testing"

	"github.com/schemeboot/memoize/internal/module"
	"github.com/schemeboot/memoize/pkg/ir"
)

// config.ModuleSearchPath (spec.md §4.7) must actually seed the
// registry a Memoizer resolves references against, not just get
// logged and dropped.
func TestNewMemoizerSeedsModuleSearchPath(t *testing.T) {
	m, err := NewMemoizer(Options{ModuleSearchPath: []string{"(scheme repl)"}})
	if err != nil {
		t.Fatalf("NewMemoizer: %v", err)
	}

	mod := m.Registry().ResolveModule([]string{"scheme", "repl"})
	mod.Define("greeting", module.NewVariable("hi"), true)

	node := ir.NewModuleRef([]string{"scheme", "repl"}, "greeting", true)
	v, err := m.MemoizeVariableAccess(node)
	if err != nil {
		t.Fatalf("resolving seeded module variable: %v", err)
	}
	val, bound := v.Ref()
	if !bound || val != "hi" {
		t.Errorf("expected (hi, true), got (%v, %v)", val, bound)
	}
}

func TestNewMemoizerRejectsMalformedModuleSearchPath(t *testing.T) {
	if _, err := NewMemoizer(Options{ModuleSearchPath: []string{"not a list"}}); err == nil {
		t.Fatal("expected an error for a malformed module search path entry")
	}
}
